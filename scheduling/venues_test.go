package scheduling

import (
	"testing"

	"github.com/Danthemainman1/debate-scheduler/models"
)

func roundWithMatches(number, matchCount int) models.Round {
	round := models.Round{Number: number, Status: models.RoundStatusPending}
	for i := 0; i < matchCount; i++ {
		round.Matches = append(round.Matches, models.Match{
			Number:  i + 1,
			TeamAID: 2*i + 1,
			TeamBID: 2*i + 2,
			Status:  models.MatchStatusScheduled,
		})
	}
	return round
}

func TestAssignVenuesCyclicWraparound(t *testing.T) {
	rounds := []models.Round{roundWithMatches(1, 3)}
	venues := []models.Venue{
		{ID: 10, Name: "Room 101", Available: true},
		{ID: 20, Name: "Room 102", Available: true},
	}

	AssignVenues(rounds, venues)

	want := []int{10, 20, 10}
	for i, m := range rounds[0].Matches {
		if m.VenueID == nil {
			t.Fatalf("match %d has no venue", m.Number)
		}
		if *m.VenueID != want[i] {
			t.Errorf("match %d venue = %d, want %d", m.Number, *m.VenueID, want[i])
		}
	}
}

func TestAssignVenuesSkipsUnavailable(t *testing.T) {
	rounds := []models.Round{roundWithMatches(1, 2)}
	venues := []models.Venue{
		{ID: 10, Name: "Room 101", Available: false},
		{ID: 20, Name: "Room 102", Available: true},
	}

	AssignVenues(rounds, venues)

	for _, m := range rounds[0].Matches {
		if m.VenueID == nil || *m.VenueID != 20 {
			t.Errorf("match %d venue = %v, want 20", m.Number, m.VenueID)
		}
	}
}

func TestAssignVenuesNoneAvailable(t *testing.T) {
	rounds := []models.Round{roundWithMatches(1, 2)}
	venues := []models.Venue{{ID: 10, Name: "Room 101", Available: false}}

	AssignVenues(rounds, venues)

	for _, m := range rounds[0].Matches {
		if m.VenueID != nil {
			t.Errorf("match %d got venue %d, want none", m.Number, *m.VenueID)
		}
	}
}

func TestAssignVenuesRestartsEachRound(t *testing.T) {
	rounds := []models.Round{roundWithMatches(1, 2), roundWithMatches(2, 2)}
	venues := []models.Venue{
		{ID: 10, Name: "Room 101", Available: true},
		{ID: 20, Name: "Room 102", Available: true},
		{ID: 30, Name: "Room 103", Available: true},
	}

	AssignVenues(rounds, venues)

	for _, round := range rounds {
		if *round.Matches[0].VenueID != 10 || *round.Matches[1].VenueID != 20 {
			t.Errorf("round %d venues = %d,%d, want 10,20",
				round.Number, *round.Matches[0].VenueID, *round.Matches[1].VenueID)
		}
	}
}
