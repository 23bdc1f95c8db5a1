package scheduling

import (
	"fmt"
	"time"

	"github.com/Danthemainman1/debate-scheduler/models"
)

// clockLayout is the wall-clock time-of-day format used for round start
// times and match slots.
const clockLayout = "15:04"

// AssignStartTimes walks forward from base, spacing each round by the
// preset's round duration plus break, and stamps every match in the round
// with its round's slot. This is the only operation that propagates a round
// start time into match time slots.
func AssignStartTimes(rounds []models.Round, base string, preset models.FormatPreset) error {
	start, err := time.Parse(clockLayout, base)
	if err != nil {
		return fmt.Errorf("invalid base time %q: %w", base, err)
	}

	step := time.Duration(preset.RoundDurationSeconds+preset.BreakDurationSeconds) * time.Second
	for i := range rounds {
		slot := start.Add(time.Duration(i) * step).Format(clockLayout)
		rounds[i].StartTime = &slot
		for j := range rounds[i].Matches {
			matchSlot := slot
			rounds[i].Matches[j].TimeSlot = &matchSlot
		}
	}
	return nil
}
