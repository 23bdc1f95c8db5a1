package models

type Team struct {
	ID           int     `json:"id" db:"id"`
	TournamentID int     `json:"-" db:"tournament_id"`
	Name         string  `json:"name" db:"name"`
	Affiliation  *string `json:"affiliation,omitempty" db:"affiliation"`
}
