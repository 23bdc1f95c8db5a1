package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReadOptionalJSON(t *testing.T) {
	type options struct {
		Seed *int64 `json:"seed"`
	}

	t.Run("decodes a chunked body with unknown length", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"seed": 42}`))
		// A chunked transfer encoding reports no length up front.
		req.ContentLength = -1

		var opts options
		if err := readOptionalJSON(httptest.NewRecorder(), req, &opts); err != nil {
			t.Fatalf("readOptionalJSON returned error: %v", err)
		}
		if opts.Seed == nil || *opts.Seed != 42 {
			t.Fatalf("expected seed 42, got %v", opts.Seed)
		}
	})

	t.Run("treats an empty body as defaults", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", nil)

		var opts options
		if err := readOptionalJSON(httptest.NewRecorder(), req, &opts); err != nil {
			t.Fatalf("readOptionalJSON returned error: %v", err)
		}
		if opts.Seed != nil {
			t.Fatalf("expected zero-value options, got seed %v", *opts.Seed)
		}
	})

	t.Run("still rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"seed":`))
		req.ContentLength = -1

		var opts options
		if err := readOptionalJSON(httptest.NewRecorder(), req, &opts); err == nil {
			t.Fatal("expected an error for malformed JSON")
		}
	})
}
