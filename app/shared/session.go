package shared

import "context"

// Session is the authenticated organizer context for a request. It is threaded
// explicitly into services rather than read from process-wide state.
type Session struct {
	UserID string
	Role   string
}

type sessionKey struct{}

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext extracts the session placed by the auth middleware.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok
}
