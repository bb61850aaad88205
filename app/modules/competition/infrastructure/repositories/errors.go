package competitiondb

import "errors"

// Sentinel errors for the competition repository layer. These indicate
// infrastructure-level outcomes (presence/absence of rows, constraint
// violations), not domain validation failures.
var (
	// ErrNotFound indicates the requested competition does not exist.
	ErrNotFound = errors.New("competition not found")

	// ErrCodeTaken indicates an insert hit the unique constraint on
	// competition_code.
	ErrCodeTaken = errors.New("competition code already taken")
)
