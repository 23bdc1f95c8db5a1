package handlers

import (
	"net/http"

	"github.com/Danthemainman1/debate-scheduler/middleware"
	"github.com/Danthemainman1/debate-scheduler/services"
)

type VenueHandler struct {
	venueService services.VenueService
}

func NewVenueHandler(vs services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: vs}
}

// List handles GET /tournaments/{tournamentID}/venues.
func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	venues, err := h.venueService.List(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"venues": venues})
}

// Add handles POST /tournaments/{tournamentID}/venues.
func (h *VenueHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.VenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	venue, err := h.venueService.Add(r.Context(), userID, tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, jsonResponse{"venue": venue})
}

// Update handles PATCH /tournaments/{tournamentID}/venues/{venueID}.
func (h *VenueHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	venueID, err := urlIntParam(r, "venueID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	var input services.VenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	venue, err := h.venueService.Update(r.Context(), userID, tournamentID, venueID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jsonResponse{"venue": venue})
}

// Remove handles DELETE /tournaments/{tournamentID}/venues/{venueID}.
func (h *VenueHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, "authentication required")
		return
	}

	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	venueID, err := urlIntParam(r, "venueID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.venueService.Remove(r.Context(), userID, tournamentID, venueID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
