package scheduling

import (
	"fmt"

	"github.com/Danthemainman1/debate-scheduler/models"
)

// SideStrategy decides which team of a generated pairing argues side A.
type SideStrategy interface {
	Assign(roundIndex int, first, second *models.Team) (sideA, sideB *models.Team)

	Name() string
}

// SideStrategyByName returns a strategy by its wire name. The empty string
// selects the default round-parity alternation.
func SideStrategyByName(name string) (SideStrategy, error) {
	switch name {
	case "", "round_parity":
		return RoundParitySides(), nil
	case "balanced":
		return BalancedSides(), nil
	default:
		return nil, fmt.Errorf("unknown side strategy %q", name)
	}
}

// roundParitySides alternates by round parity: even-indexed rounds keep the
// pairing order, odd-indexed rounds swap it. This is round-global, not
// per-team tracked, so an individual team's side exposure is not guaranteed
// to balance.
type roundParitySides struct{}

func RoundParitySides() SideStrategy {
	return roundParitySides{}
}

func (roundParitySides) Name() string { return "round_parity" }

func (roundParitySides) Assign(roundIndex int, first, second *models.Team) (*models.Team, *models.Team) {
	if roundIndex%2 == 1 {
		return second, first
	}
	return first, second
}

// balancedSides tracks each team's side-A count across the generation run
// and gives side A to the team that has held it less often.
type balancedSides struct {
	aCount map[int]int
}

func BalancedSides() SideStrategy {
	return &balancedSides{aCount: make(map[int]int)}
}

func (s *balancedSides) Name() string { return "balanced" }

func (s *balancedSides) Assign(roundIndex int, first, second *models.Team) (*models.Team, *models.Team) {
	a, b := first, second
	if s.aCount[second.ID] < s.aCount[first.ID] {
		a, b = second, first
	}
	s.aCount[a.ID]++
	return a, b
}
