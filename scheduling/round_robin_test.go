package scheduling

import (
	"errors"
	"testing"

	"github.com/Danthemainman1/debate-scheduler/models"
)

func rosterOf(names ...string) []models.Team {
	teams := make([]models.Team, len(names))
	for i, name := range names {
		teams[i] = models.Team{ID: i + 1, Name: name}
	}
	return teams
}

func countPairings(rounds []models.Round) map[[2]int]int {
	pairs := make(map[[2]int]int)
	for _, round := range rounds {
		for _, m := range round.Matches {
			a, b := m.TeamAID, m.TeamBID
			if a > b {
				a, b = b, a
			}
			pairs[[2]int{a, b}]++
		}
	}
	return pairs
}

func TestRoundRobinEvenRoster(t *testing.T) {
	gen := NewRoundRobinGenerator()
	teams := rosterOf("A", "B", "C", "D")
	rounds, err := gen.Generate(GenerateParams{Teams: teams, Repeats: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	t.Run("round count", func(t *testing.T) {
		if len(rounds) != 3 {
			t.Errorf("rounds = %d, want 3", len(rounds))
		}
	})

	t.Run("matches per round", func(t *testing.T) {
		for _, round := range rounds {
			if len(round.Matches) != 2 {
				t.Errorf("round %d has %d matches, want 2", round.Number, len(round.Matches))
			}
		}
	})

	t.Run("each team plays once per round", func(t *testing.T) {
		for _, round := range rounds {
			seen := make(map[int]int)
			for _, m := range round.Matches {
				seen[m.TeamAID]++
				seen[m.TeamBID]++
			}
			for teamID, count := range seen {
				if count != 1 {
					t.Errorf("round %d: team %d appears %d times", round.Number, teamID, count)
				}
			}
		}
	})

	t.Run("each team plays 3 matches total", func(t *testing.T) {
		counts := make(map[int]int)
		for _, round := range rounds {
			for _, m := range round.Matches {
				counts[m.TeamAID]++
				counts[m.TeamBID]++
			}
		}
		for _, team := range teams {
			if counts[team.ID] != 3 {
				t.Errorf("%s plays %d matches, want 3", team.Name, counts[team.ID])
			}
		}
	})

	t.Run("every pair meets exactly once", func(t *testing.T) {
		pairs := countPairings(rounds)
		if len(pairs) != 6 {
			t.Errorf("distinct pairs = %d, want 6", len(pairs))
		}
		for pair, count := range pairs {
			if count != 1 {
				t.Errorf("pair %v meets %d times, want 1", pair, count)
			}
		}
	})

	t.Run("match numbers and defaults", func(t *testing.T) {
		for _, round := range rounds {
			if round.Status != models.RoundStatusPending {
				t.Errorf("round %d status = %q, want pending", round.Number, round.Status)
			}
			for i, m := range round.Matches {
				if m.Number != i+1 {
					t.Errorf("round %d match number = %d, want %d", round.Number, m.Number, i+1)
				}
				if m.Status != models.MatchStatusScheduled {
					t.Errorf("new match status = %q, want scheduled", m.Status)
				}
				if m.TeamAID == m.TeamBID {
					t.Errorf("match pairs team %d with itself", m.TeamAID)
				}
			}
		}
	})
}

func TestRoundRobinOddRosterUsesBye(t *testing.T) {
	gen := NewRoundRobinGenerator()
	teams := rosterOf("A", "B", "C", "D", "E")
	rounds, err := gen.Generate(GenerateParams{Teams: teams, Repeats: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Padding to 6 slots gives 5 rounds of 2 real matches each.
	if len(rounds) != 5 {
		t.Fatalf("rounds = %d, want 5", len(rounds))
	}

	total := 0
	counts := make(map[int]int)
	for _, round := range rounds {
		if len(round.Matches) != 2 {
			t.Errorf("round %d has %d real matches, want 2", round.Number, len(round.Matches))
		}
		total += len(round.Matches)
		for _, m := range round.Matches {
			for _, id := range []int{m.TeamAID, m.TeamBID} {
				if id < 1 || id > 5 {
					t.Errorf("bye placeholder leaked into round %d as team %d", round.Number, id)
				}
				counts[id]++
			}
		}
	}

	// C(5,2) = 10 matches, every team sits out exactly one round.
	if total != 10 {
		t.Errorf("total matches = %d, want 10", total)
	}
	for _, team := range teams {
		if counts[team.ID] != 4 {
			t.Errorf("%s plays %d matches, want 4", team.Name, counts[team.ID])
		}
	}
}

func TestRoundRobinCompletenessWithRepeats(t *testing.T) {
	gen := NewRoundRobinGenerator()
	for _, repeats := range []int{1, 2, 3} {
		teams := rosterOf("A", "B", "C", "D", "E", "F")
		rounds, err := gen.Generate(GenerateParams{Teams: teams, Repeats: repeats})
		if err != nil {
			t.Fatalf("Generate(repeats=%d): %v", repeats, err)
		}
		if len(rounds) != 5*repeats {
			t.Errorf("repeats=%d: rounds = %d, want %d", repeats, len(rounds), 5*repeats)
		}
		for pair, count := range countPairings(rounds) {
			if count != repeats {
				t.Errorf("repeats=%d: pair %v meets %d times", repeats, pair, count)
			}
		}
	}
}

func TestRoundRobinRejectsSmallRoster(t *testing.T) {
	gen := NewRoundRobinGenerator()
	for _, teams := range [][]models.Team{nil, rosterOf("A")} {
		rounds, err := gen.Generate(GenerateParams{Teams: teams, Repeats: 1})
		if !errors.Is(err, ErrNotEnoughTeams) {
			t.Errorf("err = %v, want ErrNotEnoughTeams", err)
		}
		if rounds != nil {
			t.Errorf("expected no partial schedule, got %d rounds", len(rounds))
		}
	}
}

func TestRoundRobinRepeatsBelowOneTreatedAsOne(t *testing.T) {
	gen := NewRoundRobinGenerator()
	rounds, err := gen.Generate(GenerateParams{Teams: rosterOf("A", "B", "C", "D")})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(rounds) != 3 {
		t.Errorf("rounds = %d, want 3", len(rounds))
	}
}
