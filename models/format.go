package models

// FormatPreset carries the timing parameters of a debate format. Only the
// auto time assignment consumes it.
type FormatPreset struct {
	Name                 string `json:"name" db:"format_name"`
	RoundDurationSeconds int    `json:"round_duration_seconds" db:"round_duration_seconds"`
	BreakDurationSeconds int    `json:"break_duration_seconds" db:"break_duration_seconds"`
}

// DefaultFormat matches a one-hour round with a ten minute break.
func DefaultFormat() FormatPreset {
	return FormatPreset{
		Name:                 "standard",
		RoundDurationSeconds: 3600,
		BreakDurationSeconds: 600,
	}
}
