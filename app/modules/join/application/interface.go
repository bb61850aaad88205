package joinservice

import "context"

// Service drives the participant join workflow: a short-lived, token-keyed
// state machine that collects a competition code, then player details, and
// finally submits the join.
type Service interface {
	// Start opens a fresh join session in the enter-code step.
	Start(ctx context.Context) (*JoinSession, error)

	// Get returns the session's current state.
	Get(ctx context.Context, token string) (*JoinSession, error)

	// SubmitCode records the competition code and advances to enter-details.
	SubmitCode(ctx context.Context, token, code string) (*JoinSession, error)

	// Back returns from enter-details to enter-code, discarding the code.
	Back(ctx context.Context, token string) (*JoinSession, error)

	// SubmitDetails performs the join with the stored code. The session ends
	// up in the success or failure state.
	SubmitDetails(ctx context.Context, token, playerName, videoURL string) (*JoinSession, error)

	// Retry leaves the failure state, returning to the step the failure
	// points at.
	Retry(ctx context.Context, token string) (*JoinSession, error)

	// Cancel discards the session and everything it collected.
	Cancel(ctx context.Context, token string) error
}
