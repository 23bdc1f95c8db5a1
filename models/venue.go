package models

// Venue is a room a match can be held in. Availability is consulted at
// assignment and conflict-detection time; it is not enforced retroactively
// on matches that already hold a reference.
type Venue struct {
	ID           int    `json:"id" db:"id"`
	TournamentID int    `json:"-" db:"tournament_id"`
	Name         string `json:"name" db:"name"`
	Available    bool   `json:"available" db:"available"`
}
