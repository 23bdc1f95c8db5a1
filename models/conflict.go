package models

type ConflictType string

const (
	ConflictTeamDoubleBooked   ConflictType = "team-double-booked"
	ConflictVenueDoubleBooked  ConflictType = "venue-double-booked"
	ConflictInsufficientVenues ConflictType = "insufficient-venues"
)

type ConflictSeverity string

const (
	SeverityError   ConflictSeverity = "error"
	SeverityWarning ConflictSeverity = "warning"
)

// Conflict is a detection result, not a persisted entity. Conflicts are
// recomputed fresh on every detection call.
type Conflict struct {
	Type     ConflictType     `json:"type"`
	Severity ConflictSeverity `json:"severity"`
	Round    int              `json:"round"`
	Message  string           `json:"message"`
}
