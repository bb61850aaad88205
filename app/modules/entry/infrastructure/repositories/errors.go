package entrydb

import "errors"

// Sentinel errors for the entry repository layer. The join procedure's error
// messages keep the wording of the original join_competition RPC so callers
// classifying by substring keep working.
var (
	// ErrCodeNotFound indicates no competition matches the supplied invite code.
	ErrCodeNotFound = errors.New("Competition code does not exist")

	// ErrAlreadyJoined indicates this player name already joined the competition.
	ErrAlreadyJoined = errors.New("player has already joined this competition")

	// ErrValueTooLong indicates a field exceeded a storage-layer length limit.
	ErrValueTooLong = errors.New("value too long for column")

	// ErrNotFound indicates the requested entry does not exist (or is not
	// visible to the caller).
	ErrNotFound = errors.New("participant entry not found")
)
