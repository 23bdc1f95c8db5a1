package services

import "errors"

// Sentinel errors shared across services, mapped to HTTP statuses in the
// handlers package.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrVenueNameRequired      = errors.New("venue name is required")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrNotEnoughTeams         = errors.New("at least 2 teams are required to generate a schedule")
	ErrTeamInUse              = errors.New("team is referenced by the current schedule; regenerate first")

	// Lifecycle
	ErrInvalidStatus           = errors.New("invalid status value")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrWinnerNotInMatch        = errors.New("winner must be one of the match's two teams")
	ErrWinnerRequiresCompleted = errors.New("winner can only be recorded on a completed match")

	// Import
	ErrImportInvalid = errors.New("import document is malformed")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email address is already in use")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors
	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrVenueNotFound      = errors.New("venue not found")
	ErrRoundNotFound      = errors.New("round not found")
	ErrMatchNotFound      = errors.New("match not found")
)
