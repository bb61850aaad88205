package joinservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	entryservice "github.com/leetrboo/leetrboo-api/app/modules/entry/application"
)

// User-facing failure messages. The code-not-found wording mirrors the
// database-side error so both paths read the same to participants.
const (
	msgCodeNotFound  = "Competition code does not exist. Check the code and try again."
	msgFieldTooLong  = "One of the fields is too long. Shorten it and try again."
	msgAlreadyJoined = "A player with that name has already joined this competition."
	msgUnknown       = "Something went wrong. Please try again."
)

// ServiceImpl implements the join workflow on top of the entry service.
type ServiceImpl struct {
	entries entryservice.Service
	store   *sessionStore
	logger  *slog.Logger
}

// NewService creates a join workflow service. Sessions expire after ttl of
// inactivity; a background sweeper runs until ctx is cancelled.
func NewService(ctx context.Context, entries entryservice.Service, ttl time.Duration, logger *slog.Logger) *ServiceImpl {
	s := &ServiceImpl{
		entries: entries,
		store:   newSessionStore(ttl),
		logger:  logger,
	}

	go func() {
		ticker := time.NewTicker(ttl)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.store.sweep()
			}
		}
	}()

	return s
}

func (s *ServiceImpl) Start(ctx context.Context) (*JoinSession, error) {
	session := s.store.create()
	s.logger.InfoContext(ctx, "Join session started", slog.String("token", session.Token))
	return session, nil
}

func (s *ServiceImpl) Get(_ context.Context, token string) (*JoinSession, error) {
	session, ok := s.store.get(token)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *ServiceImpl) SubmitCode(_ context.Context, token, code string) (*JoinSession, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}

	var transitionErr error
	session, ok := s.store.mutate(token, func(js *JoinSession) {
		if js.State != StateEnterCode {
			transitionErr = ErrInvalidTransition
			return
		}
		js.Code = code
		js.State = StateEnterDetails
	})
	if !ok {
		return nil, ErrSessionNotFound
	}
	if transitionErr != nil {
		return nil, transitionErr
	}
	return session, nil
}

func (s *ServiceImpl) Back(_ context.Context, token string) (*JoinSession, error) {
	var transitionErr error
	session, ok := s.store.mutate(token, func(js *JoinSession) {
		if js.State != StateEnterDetails {
			transitionErr = ErrInvalidTransition
			return
		}
		js.Code = ""
		js.State = StateEnterCode
	})
	if !ok {
		return nil, ErrSessionNotFound
	}
	if transitionErr != nil {
		return nil, transitionErr
	}
	return session, nil
}

func (s *ServiceImpl) SubmitDetails(ctx context.Context, token, playerName, videoURL string) (*JoinSession, error) {
	// Validate inputs before touching the state machine so a typo does not
	// burn the enter-details step.
	if strings.TrimSpace(playerName) == "" {
		return nil, entryservice.ErrEmptyPlayerName
	}

	var (
		transitionErr error
		code          string
		seq           uint64
	)
	session, ok := s.store.mutate(token, func(js *JoinSession) {
		if js.State != StateEnterDetails {
			transitionErr = ErrInvalidTransition
			return
		}
		js.State = StateSubmitting
		code = js.Code
	})
	if !ok {
		return nil, ErrSessionNotFound
	}
	if transitionErr != nil {
		return nil, transitionErr
	}
	seq = session.seq

	_, joinErr := s.entries.JoinCompetition(ctx, code, playerName, videoURL)

	// Input validation rejections are the participant's to fix; put the
	// session back on the details step and surface the error directly.
	if errors.Is(joinErr, entryservice.ErrEmptyPlayerName) || errors.Is(joinErr, entryservice.ErrInvalidVideoURL) {
		s.store.mutateIfSeq(token, seq, func(js *JoinSession) {
			js.State = StateEnterDetails
		})
		return nil, joinErr
	}

	// If the session was cancelled or otherwise moved on while the join was
	// in flight, the outcome belongs to nobody. Discard it.
	session, ok = s.store.mutateIfSeq(token, seq, func(js *JoinSession) {
		if joinErr == nil {
			js.State = StateSuccess
			js.FailureKind = ""
			js.Message = ""
			return
		}
		js.State = StateFailure
		js.FailureKind, js.Message = classifyFailure(joinErr)
	})
	if !ok {
		s.logger.InfoContext(ctx, "Join outcome discarded, session gone or superseded",
			slog.String("token", token))
		return nil, ErrSessionNotFound
	}

	if joinErr != nil && session.FailureKind == FailureUnknown {
		s.logger.ErrorContext(ctx, "Join submission failed", slog.Any("error", joinErr))
	}

	// On success the response is the confirmation; the session has nothing
	// left to hold and is dropped immediately.
	if session.State == StateSuccess {
		s.store.remove(token)
	}
	return session, nil
}

func (s *ServiceImpl) Retry(_ context.Context, token string) (*JoinSession, error) {
	var transitionErr error
	session, ok := s.store.mutate(token, func(js *JoinSession) {
		if js.State != StateFailure {
			transitionErr = ErrInvalidTransition
			return
		}
		kind := js.FailureKind
		js.FailureKind = ""
		js.Message = ""
		// A bad code sends the participant back to the code step; everything
		// else keeps the code and re-asks for details.
		if kind == FailureCodeNotFound {
			js.Code = ""
			js.State = StateEnterCode
			return
		}
		js.State = StateEnterDetails
	})
	if !ok {
		return nil, ErrSessionNotFound
	}
	if transitionErr != nil {
		return nil, transitionErr
	}
	return session, nil
}

func (s *ServiceImpl) Cancel(ctx context.Context, token string) error {
	if !s.store.remove(token) {
		return ErrSessionNotFound
	}
	s.logger.InfoContext(ctx, "Join session cancelled", slog.String("token", token))
	return nil
}

// classifyFailure maps entry-service errors onto the workflow's failure
// taxonomy and the message shown to the participant.
func classifyFailure(err error) (FailureKind, string) {
	switch {
	case errors.Is(err, entryservice.ErrCodeNotFound):
		return FailureCodeNotFound, msgCodeNotFound
	case errors.Is(err, entryservice.ErrFieldTooLong):
		return FailureFieldTooLong, msgFieldTooLong
	case errors.Is(err, entryservice.ErrAlreadyJoined):
		return FailureAlreadyJoined, msgAlreadyJoined
	default:
		return FailureUnknown, msgUnknown
	}
}
