package joinservice

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// State identifies where a join session is in the workflow.
type State string

const (
	StateEnterCode    State = "enter_code"
	StateEnterDetails State = "enter_details"
	StateSubmitting   State = "submitting"
	StateSuccess      State = "success"
	StateFailure      State = "failure"
)

// FailureKind classifies why a join submission was rejected.
type FailureKind string

const (
	FailureCodeNotFound  FailureKind = "code_not_found"
	FailureFieldTooLong  FailureKind = "field_too_long"
	FailureAlreadyJoined FailureKind = "already_joined"
	FailureUnknown       FailureKind = "unknown"
)

// JoinSession is one participant's progress through the join workflow.
type JoinSession struct {
	Token       string      `json:"token"`
	State       State       `json:"state"`
	Code        string      `json:"-"`
	FailureKind FailureKind `json:"failure_kind,omitempty"`
	Message     string      `json:"message,omitempty"`

	// seq increments on every mutation so in-flight work can detect that
	// the session changed underneath it and discard its result.
	seq       uint64
	expiresAt time.Time
}

func (s *JoinSession) clone() *JoinSession {
	copied := *s
	return &copied
}

// sessionStore holds join sessions in memory with a sliding TTL.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*JoinSession
	ttl      time.Duration
	now      func() time.Time
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*JoinSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// create registers a fresh session in the enter-code step.
func (st *sessionStore) create() *JoinSession {
	st.mu.Lock()
	defer st.mu.Unlock()

	session := &JoinSession{
		Token:     uuid.New().String(),
		State:     StateEnterCode,
		expiresAt: st.now().Add(st.ttl),
	}
	st.sessions[session.Token] = session
	return session.clone()
}

// get returns a snapshot of the session, or false if it is gone or expired.
// Each lookup slides the expiry forward so an active participant is not cut
// off mid-flow.
func (st *sessionStore) get(token string) (*JoinSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.lookupLocked(token)
	if !ok {
		return nil, false
	}
	return session.clone(), true
}

// mutate applies fn to the session under the store lock and bumps its
// sequence number. It returns a snapshot of the mutated session.
func (st *sessionStore) mutate(token string, fn func(*JoinSession)) (*JoinSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.lookupLocked(token)
	if !ok {
		return nil, false
	}
	fn(session)
	session.seq++
	session.expiresAt = st.now().Add(st.ttl)
	return session.clone(), true
}

// mutateIfSeq is mutate guarded by an expected sequence number. It reports
// false without mutating when the session is gone or has moved on, which is
// how a stale in-flight submission gets discarded.
func (st *sessionStore) mutateIfSeq(token string, seq uint64, fn func(*JoinSession)) (*JoinSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.lookupLocked(token)
	if !ok || session.seq != seq {
		return nil, false
	}
	fn(session)
	session.seq++
	session.expiresAt = st.now().Add(st.ttl)
	return session.clone(), true
}

// remove deletes the session. It reports whether the token was present.
func (st *sessionStore) remove(token string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.lookupLocked(token); !ok {
		return false
	}
	delete(st.sessions, token)
	return true
}

// lookupLocked fetches a live session, evicting it if expired. Callers must
// hold st.mu.
func (st *sessionStore) lookupLocked(token string) (*JoinSession, bool) {
	session, ok := st.sessions[token]
	if !ok {
		return nil, false
	}
	if st.now().After(session.expiresAt) {
		delete(st.sessions, token)
		return nil, false
	}
	return session, true
}

// sweep evicts all expired sessions. The service runs this periodically so
// abandoned sessions do not accumulate.
func (st *sessionStore) sweep() {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	for token, session := range st.sessions {
		if now.After(session.expiresAt) {
			delete(st.sessions, token)
		}
	}
}
