package scheduling

import (
	"errors"

	"github.com/Danthemainman1/debate-scheduler/models"
)

// ErrNotEnoughTeams is returned when generation is asked for fewer than two
// real teams. No partial schedule is produced.
var ErrNotEnoughTeams = errors.New("at least 2 teams are required to generate a schedule")

type GenerateParams struct {
	// Teams in roster order. Order matters: ties in standings keep it, and
	// shuffling the roster is how a caller gets a different draw.
	Teams []models.Team

	// Repeats is how many times each pair meets. Values below 1 are treated
	// as 1.
	Repeats int

	// Sides decides which team of a pairing takes side A. Nil selects
	// round-parity alternation.
	Sides SideStrategy
}

type MatchupGenerator interface {
	Generate(params GenerateParams) ([]models.Round, error)

	Name() string
}
