package scheduling

import (
	"fmt"

	"github.com/Danthemainman1/debate-scheduler/models"
)

// DetectConflicts scans the schedule for structural problems. It is a pure
// read: nothing is mutated and nothing is stored. Conflicts come back in
// round order, then check order (team double-booking, venue double-booking,
// insufficient venues) within a round.
func DetectConflicts(rounds []models.Round, teams []models.Team, venues []models.Venue) []models.Conflict {
	teamNames := make(map[int]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}
	venueNames := make(map[int]string, len(venues))
	availableCount := 0
	for _, v := range venues {
		venueNames[v.ID] = v.Name
		if v.Available {
			availableCount++
		}
	}

	var conflicts []models.Conflict
	for _, round := range rounds {
		conflicts = append(conflicts, teamDoubleBookings(round, teamNames)...)
		if round.StartTime != nil {
			conflicts = append(conflicts, venueDoubleBookings(round, venueNames)...)
		}
		// With zero venues defined the shortfall check is meaningless, since
		// venues are optional to begin with.
		if len(venues) > 0 && len(round.Matches) > availableCount {
			conflicts = append(conflicts, models.Conflict{
				Type:     models.ConflictInsufficientVenues,
				Severity: models.SeverityWarning,
				Round:    round.Number,
				Message: fmt.Sprintf("round %d has %d matches but only %d available venue(s)",
					round.Number, len(round.Matches), availableCount),
			})
		}
	}
	return conflicts
}

func teamDoubleBookings(round models.Round, teamNames map[int]string) []models.Conflict {
	appearances := make(map[int]int)
	for _, m := range round.Matches {
		appearances[m.TeamAID]++
		appearances[m.TeamBID]++
	}

	var conflicts []models.Conflict
	flagged := make(map[int]bool)
	for _, m := range round.Matches {
		for _, teamID := range []int{m.TeamAID, m.TeamBID} {
			if appearances[teamID] < 2 || flagged[teamID] {
				continue
			}
			flagged[teamID] = true
			name := teamNames[teamID]
			if name == "" {
				name = fmt.Sprintf("team %d", teamID)
			}
			conflicts = append(conflicts, models.Conflict{
				Type:     models.ConflictTeamDoubleBooked,
				Severity: models.SeverityError,
				Round:    round.Number,
				Message: fmt.Sprintf("%s is scheduled %d times in round %d",
					name, appearances[teamID], round.Number),
			})
		}
	}
	return conflicts
}

func venueDoubleBookings(round models.Round, venueNames map[int]string) []models.Conflict {
	type slotKey struct {
		venueID int
		slot    string
	}

	counts := make(map[slotKey]int)
	var order []slotKey
	for _, m := range round.Matches {
		if m.VenueID == nil || m.TimeSlot == nil {
			continue
		}
		key := slotKey{*m.VenueID, *m.TimeSlot}
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	var conflicts []models.Conflict
	for _, key := range order {
		if counts[key] < 2 {
			continue
		}
		name := venueNames[key.venueID]
		if name == "" {
			name = fmt.Sprintf("venue %d", key.venueID)
		}
		conflicts = append(conflicts, models.Conflict{
			Type:     models.ConflictVenueDoubleBooked,
			Severity: models.SeverityError,
			Round:    round.Number,
			Message: fmt.Sprintf("%s is booked for %d matches at %s in round %d",
				name, counts[key], key.slot, round.Number),
		})
	}
	return conflicts
}
