package scheduling

import (
	"testing"

	"github.com/Danthemainman1/debate-scheduler/models"
)

func TestAssignStartTimes(t *testing.T) {
	rounds := []models.Round{
		roundWithMatches(1, 2),
		roundWithMatches(2, 2),
		roundWithMatches(3, 2),
	}
	preset := models.FormatPreset{RoundDurationSeconds: 3600, BreakDurationSeconds: 600}

	if err := AssignStartTimes(rounds, "09:00", preset); err != nil {
		t.Fatalf("AssignStartTimes: %v", err)
	}

	want := []string{"09:00", "10:10", "11:20"}
	for i, round := range rounds {
		if round.StartTime == nil || *round.StartTime != want[i] {
			t.Errorf("round %d start = %v, want %s", round.Number, round.StartTime, want[i])
		}
		for _, m := range round.Matches {
			if m.TimeSlot == nil || *m.TimeSlot != want[i] {
				t.Errorf("round %d match %d slot = %v, want %s", round.Number, m.Number, m.TimeSlot, want[i])
			}
		}
	}
}

func TestAssignStartTimesWrapsMidnight(t *testing.T) {
	rounds := []models.Round{roundWithMatches(1, 1), roundWithMatches(2, 1)}
	preset := models.FormatPreset{RoundDurationSeconds: 3600, BreakDurationSeconds: 0}

	if err := AssignStartTimes(rounds, "23:30", preset); err != nil {
		t.Fatalf("AssignStartTimes: %v", err)
	}
	if *rounds[1].StartTime != "00:30" {
		t.Errorf("round 2 start = %s, want 00:30", *rounds[1].StartTime)
	}
}

func TestAssignStartTimesRejectsBadBase(t *testing.T) {
	rounds := []models.Round{roundWithMatches(1, 1)}
	if err := AssignStartTimes(rounds, "9 o'clock", models.DefaultFormat()); err == nil {
		t.Error("expected error for malformed base time")
	}
	if rounds[0].StartTime != nil {
		t.Error("round mutated on failed assignment")
	}
}
