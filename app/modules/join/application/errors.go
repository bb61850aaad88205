package joinservice

import "errors"

var (
	// ErrSessionNotFound indicates the join token is unknown, expired, or
	// already cancelled.
	ErrSessionNotFound = errors.New("join session not found")

	// ErrInvalidTransition indicates the requested step is not reachable
	// from the session's current state.
	ErrInvalidTransition = errors.New("invalid join workflow transition")

	// ErrEmptyCode indicates the competition code was empty after trimming.
	ErrEmptyCode = errors.New("competition code cannot be empty")
)
