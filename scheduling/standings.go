package scheduling

import (
	"sort"

	"github.com/Danthemainman1/debate-scheduler/models"
)

// LessFunc orders two standings. It exists so a tiebreak beyond the default
// (wins descending, losses ascending) can be plugged in without reshaping
// the calculator.
type LessFunc func(a, b models.Standing) bool

func defaultStandingLess(a, b models.Standing) bool {
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	return a.Losses < b.Losses
}

// CalculateStandings folds completed matches that carry a winner into one
// row per team. A completed match without a recorded winner contributes
// nothing. The sort is stable, so full ties keep roster order.
func CalculateStandings(rounds []models.Round, teams []models.Team, less LessFunc) []models.Standing {
	if less == nil {
		less = defaultStandingLess
	}

	standings := make([]models.Standing, len(teams))
	index := make(map[int]*models.Standing, len(teams))
	for i := range teams {
		standings[i] = models.Standing{TeamID: teams[i].ID, Team: &teams[i]}
		index[teams[i].ID] = &standings[i]
	}

	for _, round := range rounds {
		for _, m := range round.Matches {
			if m.Status != models.MatchStatusCompleted || m.WinnerID == nil {
				continue
			}
			rowA, rowB := index[m.TeamAID], index[m.TeamBID]
			if rowA == nil || rowB == nil {
				continue
			}
			rowA.Played++
			rowB.Played++
			switch *m.WinnerID {
			case m.TeamAID:
				rowA.Wins++
				rowA.SideAWins++
				rowB.Losses++
			case m.TeamBID:
				rowB.Wins++
				rowB.SideBWins++
				rowA.Losses++
			}
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return less(standings[i], standings[j])
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
