package models

type RoundStatus string

const (
	RoundStatusPending    RoundStatus = "pending"
	RoundStatusInProgress RoundStatus = "in_progress"
	RoundStatusCompleted  RoundStatus = "completed"
)

func (s RoundStatus) Valid() bool {
	switch s {
	case RoundStatusPending, RoundStatusInProgress, RoundStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a defined transition. Rounds move
// forward manually; completing every match does not complete the round.
func (s RoundStatus) CanTransitionTo(next RoundStatus) bool {
	switch s {
	case RoundStatusPending:
		return next == RoundStatusInProgress
	case RoundStatusInProgress:
		return next == RoundStatusCompleted
	}
	return false
}

// Round is one slice of the round-robin schedule. The match list is fixed
// once generated; only status, start time and per-match fields change
// afterward.
type Round struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"-" db:"tournament_id"`
	Number       int         `json:"number" db:"number"`
	StartTime    *string     `json:"start_time,omitempty" db:"start_time"`
	Status       RoundStatus `json:"status" db:"status"`

	Matches []Match `json:"matches" db:"-"`
}
