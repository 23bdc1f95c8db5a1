package models

// Standing is a derived per-team row, recomputed on demand from completed
// matches that carry a winner. Never persisted.
type Standing struct {
	TeamID    int   `json:"team_id"`
	Team      *Team `json:"team,omitempty"`
	Wins      int   `json:"wins"`
	Losses    int   `json:"losses"`
	SideAWins int   `json:"side_a_wins"`
	SideBWins int   `json:"side_b_wins"`
	Played    int   `json:"played"`
	Rank      int   `json:"rank"`
}
