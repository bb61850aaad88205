package entryservice

import "errors"

// Domain errors for the entry service. The join workflow maps the first three
// onto its user-facing failure taxonomy; handlers map the rest onto HTTP
// status codes.
var (
	// ErrCodeNotFound indicates the supplied invite code matches no competition.
	ErrCodeNotFound = errors.New("competition code does not exist")

	// ErrAlreadyJoined indicates the player name already joined the competition.
	ErrAlreadyJoined = errors.New("player already joined this competition")

	// ErrFieldTooLong indicates a value exceeded a storage-layer length limit.
	ErrFieldTooLong = errors.New("field value too long")

	// ErrEmptyPlayerName indicates the player name was empty after trimming.
	ErrEmptyPlayerName = errors.New("player name cannot be empty")

	// ErrInvalidVideoURL indicates the video URL is not an absolute http(s) URL.
	ErrInvalidVideoURL = errors.New("video URL must be an absolute http or https URL")

	// ErrEntryNotFound indicates the entry does not exist or is not visible to
	// the caller.
	ErrEntryNotFound = errors.New("participant entry not found")

	// ErrCompetitionNotFound indicates the competition does not exist or is
	// not owned by the caller.
	ErrCompetitionNotFound = errors.New("competition not found")

	// ErrNoSession indicates an organizer operation ran without a session.
	ErrNoSession = errors.New("no authenticated session")
)
