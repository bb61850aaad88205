package competitionservice

import "errors"

// Domain errors for the competition service. Handlers map these onto HTTP
// status codes; none of them is fatal to the process.
var (
	// ErrEmptyName indicates a competition name was empty after trimming.
	ErrEmptyName = errors.New("competition name cannot be empty")

	// ErrInvalidTheme indicates an unknown theme tag was supplied.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrCompetitionNotFound indicates the requested competition does not
	// exist or is not owned by the caller.
	ErrCompetitionNotFound = errors.New("competition not found")

	// ErrNoSession indicates an operation ran without an authenticated
	// session attached.
	ErrNoSession = errors.New("no authenticated session")
)
