package scheduling

import (
	"testing"

	"github.com/Danthemainman1/debate-scheduler/models"
)

func TestRoundParitySides(t *testing.T) {
	s := RoundParitySides()
	first := &models.Team{ID: 1, Name: "First"}
	second := &models.Team{ID: 2, Name: "Second"}

	a, b := s.Assign(0, first, second)
	if a.ID != 1 || b.ID != 2 {
		t.Errorf("even round: got A=%d B=%d, want A=1 B=2", a.ID, b.ID)
	}

	a, b = s.Assign(1, first, second)
	if a.ID != 2 || b.ID != 1 {
		t.Errorf("odd round: got A=%d B=%d, want A=2 B=1", a.ID, b.ID)
	}
}

func TestBalancedSidesPrefersLowerExposure(t *testing.T) {
	s := BalancedSides()
	t1 := &models.Team{ID: 1}
	t2 := &models.Team{ID: 2}
	t3 := &models.Team{ID: 3}

	if a, _ := s.Assign(0, t1, t2); a.ID != 1 {
		t.Errorf("fresh tie: side A = %d, want 1 (pairing order)", a.ID)
	}
	// t1 now holds one side-A slot, so t3 should take A over t1.
	if a, _ := s.Assign(1, t1, t3); a.ID != 3 {
		t.Errorf("side A = %d, want 3", a.ID)
	}
	// t2 has never been A; t1 has.
	if a, _ := s.Assign(2, t1, t2); a.ID != 2 {
		t.Errorf("side A = %d, want 2", a.ID)
	}
}

func TestBalancedSidesRoughlyBalancedOverSchedule(t *testing.T) {
	gen := NewRoundRobinGenerator()
	teams := rosterOf("A", "B", "C", "D", "E", "F")
	rounds, err := gen.Generate(GenerateParams{Teams: teams, Repeats: 2, Sides: BalancedSides()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	sideA := make(map[int]int)
	total := make(map[int]int)
	for _, round := range rounds {
		for _, m := range round.Matches {
			sideA[m.TeamAID]++
			total[m.TeamAID]++
			total[m.TeamBID]++
		}
	}

	for _, team := range teams {
		diff := 2*sideA[team.ID] - total[team.ID] // sideA - sideB
		if diff < -2 || diff > 2 {
			t.Errorf("%s side imbalance: %d side-A of %d matches", team.Name, sideA[team.ID], total[team.ID])
		}
	}
}

func TestSideStrategyByName(t *testing.T) {
	for _, name := range []string{"", "round_parity", "balanced"} {
		if _, err := SideStrategyByName(name); err != nil {
			t.Errorf("SideStrategyByName(%q): %v", name, err)
		}
	}
	if _, err := SideStrategyByName("coin_flip"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
