package models

import "time"

// Tournament is the schedule container: the roster, the venue pool, the
// generated rounds, and the format preset used for time assignment.
type Tournament struct {
	ID        int          `json:"id" db:"id"`
	OwnerID   int          `json:"owner_id" db:"owner_id"`
	Name      string       `json:"name" db:"name"`
	Date      *string      `json:"date,omitempty" db:"date"`
	Format    FormatPreset `json:"format"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`

	// Linked entities, populated by the service layer.
	Teams  []Team  `json:"teams,omitempty" db:"-"`
	Venues []Venue `json:"venues,omitempty" db:"-"`
	Rounds []Round `json:"rounds,omitempty" db:"-"`
}
