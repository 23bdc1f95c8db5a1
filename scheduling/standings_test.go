package scheduling

import (
	"testing"

	"github.com/Danthemainman1/debate-scheduler/models"
)

func completedMatch(number, teamA, teamB, winner int) models.Match {
	return models.Match{
		Number:   number,
		TeamAID:  teamA,
		TeamBID:  teamB,
		Status:   models.MatchStatusCompleted,
		WinnerID: &winner,
	}
}

func TestCalculateStandingsHandTally(t *testing.T) {
	teams := rosterOf("Alpha", "Beta", "Gamma", "Delta")
	rounds := []models.Round{
		{Number: 1, Matches: []models.Match{
			completedMatch(1, 1, 2, 1), // Alpha beats Beta on side A
			completedMatch(2, 3, 4, 4), // Delta beats Gamma on side B
		}},
		{Number: 2, Matches: []models.Match{
			completedMatch(1, 4, 1, 1), // Alpha beats Delta on side B
			completedMatch(2, 2, 3, 2), // Beta beats Gamma on side A
		}},
		{Number: 3, Matches: []models.Match{
			// Completed without a winner: ignored.
			{Number: 1, TeamAID: 1, TeamBID: 3, Status: models.MatchStatusCompleted},
			// Not completed: ignored even with a winner recorded.
			{Number: 2, TeamAID: 2, TeamBID: 4, Status: models.MatchStatusInProgress, WinnerID: intPtr(2)},
		}},
	}

	standings := CalculateStandings(rounds, teams, nil)
	if len(standings) != 4 {
		t.Fatalf("standings = %d rows, want 4", len(standings))
	}

	byTeam := make(map[int]models.Standing)
	for _, s := range standings {
		byTeam[s.TeamID] = s
	}

	checks := []struct {
		teamID                     int
		wins, losses, aWins, bWins int
		played                     int
	}{
		{1, 2, 0, 1, 1, 2}, // Alpha
		{2, 1, 1, 1, 0, 2}, // Beta
		{3, 0, 2, 0, 0, 2}, // Gamma
		{4, 1, 1, 0, 1, 2}, // Delta
	}
	for _, c := range checks {
		s := byTeam[c.teamID]
		if s.Wins != c.wins || s.Losses != c.losses || s.SideAWins != c.aWins || s.SideBWins != c.bWins || s.Played != c.played {
			t.Errorf("team %d: got W%d L%d A%d B%d P%d, want W%d L%d A%d B%d P%d",
				c.teamID, s.Wins, s.Losses, s.SideAWins, s.SideBWins, s.Played,
				c.wins, c.losses, c.aWins, c.bWins, c.played)
		}
	}

	t.Run("ranking order", func(t *testing.T) {
		// Alpha first, then Beta and Delta tied on 1-1 in roster order,
		// Gamma last.
		wantOrder := []int{1, 2, 4, 3}
		for i, teamID := range wantOrder {
			if standings[i].TeamID != teamID {
				t.Errorf("rank %d = team %d, want team %d", i+1, standings[i].TeamID, teamID)
			}
			if standings[i].Rank != i+1 {
				t.Errorf("rank field = %d, want %d", standings[i].Rank, i+1)
			}
		}
	})

	t.Run("losses non-decreasing within win ties", func(t *testing.T) {
		for i := 1; i < len(standings); i++ {
			prev, cur := standings[i-1], standings[i]
			if prev.Wins == cur.Wins && prev.Losses > cur.Losses {
				t.Errorf("rank %d has %d losses after rank %d with %d", i+1, cur.Losses, i, prev.Losses)
			}
		}
	})
}

func TestCalculateStandingsNoCompletedMatches(t *testing.T) {
	teams := rosterOf("Alpha", "Beta")
	rounds := []models.Round{{Number: 1, Matches: []models.Match{
		{Number: 1, TeamAID: 1, TeamBID: 2, Status: models.MatchStatusScheduled},
	}}}

	standings := CalculateStandings(rounds, teams, nil)
	if len(standings) != 2 {
		t.Fatalf("standings = %d rows, want 2", len(standings))
	}
	for i, s := range standings {
		if s.Wins != 0 || s.Losses != 0 || s.Played != 0 {
			t.Errorf("row %d not zeroed: %+v", i, s)
		}
		// Zero records keep roster order.
		if s.TeamID != teams[i].ID {
			t.Errorf("row %d team = %d, want %d", i, s.TeamID, teams[i].ID)
		}
	}
}

func TestCalculateStandingsCustomComparator(t *testing.T) {
	teams := rosterOf("Alpha", "Beta")
	winner := 2
	rounds := []models.Round{{Number: 1, Matches: []models.Match{
		{Number: 1, TeamAID: 1, TeamBID: 2, Status: models.MatchStatusCompleted, WinnerID: &winner},
	}}}

	// Invert the default ordering.
	standings := CalculateStandings(rounds, teams, func(a, b models.Standing) bool {
		return a.Wins < b.Wins
	})
	if standings[0].TeamID != 1 || standings[1].TeamID != 2 {
		t.Errorf("custom comparator ignored: order %d,%d", standings[0].TeamID, standings[1].TeamID)
	}
}
