package models

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
	MatchStatusCancelled  MatchStatus = "cancelled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusInProgress, MatchStatusCompleted, MatchStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a defined transition.
// completed and cancelled are terminal.
func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	switch s {
	case MatchStatusScheduled:
		return next == MatchStatusInProgress || next == MatchStatusCancelled
	case MatchStatusInProgress:
		return next == MatchStatusCompleted || next == MatchStatusCancelled
	}
	return false
}

// Match pairs two teams inside a round. Team A and Team B carry the two
// debate sides (affirmative/negative); the winner, when set, must be one of
// the two assigned teams.
type Match struct {
	ID       int         `json:"id" db:"id"`
	RoundID  int         `json:"-" db:"round_id"`
	Number   int         `json:"number" db:"number"`
	TeamAID  int         `json:"team_a_id" db:"team_a_id"`
	TeamBID  int         `json:"team_b_id" db:"team_b_id"`
	VenueID  *int        `json:"venue_id,omitempty" db:"venue_id"`
	TimeSlot *string     `json:"time_slot,omitempty" db:"time_slot"`
	Status   MatchStatus `json:"status" db:"status"`
	WinnerID *int        `json:"winner_id,omitempty" db:"winner_id"`
	Notes    string      `json:"notes" db:"notes"`

	// Linked entities, populated by the service layer.
	TeamA *Team  `json:"team_a,omitempty" db:"-"`
	TeamB *Team  `json:"team_b,omitempty" db:"-"`
	Venue *Venue `json:"venue,omitempty" db:"-"`
}

func (m *Match) HasTeam(teamID int) bool {
	return m.TeamAID == teamID || m.TeamBID == teamID
}
