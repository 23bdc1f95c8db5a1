package scheduling

import (
	"github.com/Danthemainman1/debate-scheduler/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() MatchupGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate produces a full round-robin schedule with the circle method: one
// slot is held fixed while the rest rotate, and slot i is paired with slot
// N-1-i each round. An odd roster is padded with a synthetic bye slot; any
// pairing that involves the bye is dropped, never emitted as a match.
func (g *RoundRobinGenerator) Generate(params GenerateParams) ([]models.Round, error) {
	teams := params.Teams
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}

	repeats := params.Repeats
	if repeats < 1 {
		repeats = 1
	}
	sides := params.Sides
	if sides == nil {
		sides = RoundParitySides()
	}

	working := make([]*models.Team, 0, len(teams)+1)
	for i := range teams {
		working = append(working, &teams[i])
	}
	if len(working)%2 != 0 {
		working = append(working, nil) // bye slot
	}

	n := len(working)
	roundsPerCycle := n - 1
	totalRounds := roundsPerCycle * repeats

	rounds := make([]models.Round, 0, totalRounds)
	for k := 0; k < totalRounds; k++ {
		rotated := rotateFixingFirst(working, k%roundsPerCycle)

		round := models.Round{
			Number: k + 1,
			Status: models.RoundStatusPending,
		}
		for i := 0; i < n/2; i++ {
			first, second := rotated[i], rotated[n-1-i]
			if first == nil || second == nil {
				continue // bye pairing
			}
			teamA, teamB := sides.Assign(k, first, second)
			round.Matches = append(round.Matches, models.Match{
				Number:  len(round.Matches) + 1,
				TeamAID: teamA.ID,
				TeamBID: teamB.ID,
				Status:  models.MatchStatusScheduled,
			})
		}
		rounds = append(rounds, round)
	}

	return rounds, nil
}

// rotateFixingFirst rotates slots 1..n-1 by k positions while slot 0 stays
// put, the classic round-robin rotation.
func rotateFixingFirst(slots []*models.Team, k int) []*models.Team {
	n := len(slots)
	out := make([]*models.Team, n)
	out[0] = slots[0]
	rest := n - 1
	for i := 1; i < n; i++ {
		out[1+((i-1)+k)%rest] = slots[i]
	}
	return out
}
