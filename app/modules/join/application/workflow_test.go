package joinservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/leetrboo/leetrboo-api/app/shared"

	entryservice "github.com/leetrboo/leetrboo-api/app/modules/entry/application"
	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

// fakeEntryService implements entryservice.Service for workflow tests. Only
// JoinCompetition is exercised here.
type fakeEntryService struct {
	joinCalls int
	joinFunc  func(ctx context.Context, code, playerName, videoURL string) (*entrydb.ParticipantEntry, error)
}

func (f *fakeEntryService) JoinCompetition(ctx context.Context, code, playerName, videoURL string) (*entrydb.ParticipantEntry, error) {
	f.joinCalls++
	if f.joinFunc != nil {
		return f.joinFunc(ctx, code, playerName, videoURL)
	}
	return &entrydb.ParticipantEntry{ID: 1, CompetitionID: 1, PlayerName: playerName, VideoURL: videoURL}, nil
}

func (f *fakeEntryService) VerifyOwnership(context.Context, *shared.Session, int64) error {
	panic("not used in join workflow tests")
}

func (f *fakeEntryService) AddEntry(context.Context, *shared.Session, int64, string, string) (*entrydb.ParticipantEntry, error) {
	panic("not used in join workflow tests")
}

func (f *fakeEntryService) ListEntries(context.Context, *shared.Session, int64) ([]*entrydb.ParticipantEntry, error) {
	panic("not used in join workflow tests")
}

func (f *fakeEntryService) UpdateEntry(context.Context, *shared.Session, int64, *entrydb.EntryUpdate) (*entrydb.ParticipantEntry, error) {
	panic("not used in join workflow tests")
}

func (f *fakeEntryService) DeleteEntry(context.Context, *shared.Session, int64) error {
	panic("not used in join workflow tests")
}

func (f *fakeEntryService) ExportScoreboard(context.Context, *shared.Session, int64) ([]byte, error) {
	panic("not used in join workflow tests")
}

func (f *fakeEntryService) RenderScoreChart(context.Context, *shared.Session, int64) ([]byte, error) {
	panic("not used in join workflow tests")
}

func newTestWorkflow(t *testing.T, entries entryservice.Service) *ServiceImpl {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewService(ctx, entries, time.Minute, logger)
}

func TestJoinWorkflowHappyPath(t *testing.T) {
	ctx := context.Background()
	entries := &fakeEntryService{}
	svc := newTestWorkflow(t, entries)

	session, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if session.State != StateEnterCode {
		t.Errorf("Start() state = %q, want %q", session.State, StateEnterCode)
	}
	if session.Token == "" {
		t.Error("Start() returned empty token")
	}

	session, err = svc.SubmitCode(ctx, session.Token, "  482913  ")
	if err != nil {
		t.Fatalf("SubmitCode() error: %v", err)
	}
	if session.State != StateEnterDetails {
		t.Errorf("SubmitCode() state = %q, want %q", session.State, StateEnterDetails)
	}

	entries.joinFunc = func(_ context.Context, code, playerName, videoURL string) (*entrydb.ParticipantEntry, error) {
		if code != "482913" {
			t.Errorf("JoinCompetition code = %q, want %q (trimmed)", code, "482913")
		}
		return &entrydb.ParticipantEntry{ID: 7, PlayerName: playerName, VideoURL: videoURL}, nil
	}

	session, err = svc.SubmitDetails(ctx, session.Token, "alice", "https://example.com/v")
	if err != nil {
		t.Fatalf("SubmitDetails() error: %v", err)
	}
	if session.State != StateSuccess {
		t.Errorf("SubmitDetails() state = %q, want %q", session.State, StateSuccess)
	}
	if entries.joinCalls != 1 {
		t.Errorf("JoinCompetition called %d times, want 1", entries.joinCalls)
	}

	// A successful join leaves nothing behind; the token is gone.
	if _, err := svc.Get(ctx, session.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after success error = %v, want ErrSessionNotFound", err)
	}
}

func TestJoinWorkflowFailureTaxonomy(t *testing.T) {
	tests := []struct {
		name        string
		joinErr     error
		wantKind    FailureKind
		wantMessage string
	}{
		{
			name:        "code not found",
			joinErr:     entryservice.ErrCodeNotFound,
			wantKind:    FailureCodeNotFound,
			wantMessage: msgCodeNotFound,
		},
		{
			name:        "field too long",
			joinErr:     entryservice.ErrFieldTooLong,
			wantKind:    FailureFieldTooLong,
			wantMessage: msgFieldTooLong,
		},
		{
			name:        "already joined",
			joinErr:     entryservice.ErrAlreadyJoined,
			wantKind:    FailureAlreadyJoined,
			wantMessage: msgAlreadyJoined,
		},
		{
			name:        "unrecognized error",
			joinErr:     errors.New("connection reset"),
			wantKind:    FailureUnknown,
			wantMessage: msgUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			entries := &fakeEntryService{
				joinFunc: func(context.Context, string, string, string) (*entrydb.ParticipantEntry, error) {
					return nil, tt.joinErr
				},
			}
			svc := newTestWorkflow(t, entries)

			session, _ := svc.Start(ctx)
			session, _ = svc.SubmitCode(ctx, session.Token, "123456")

			session, err := svc.SubmitDetails(ctx, session.Token, "alice", "https://example.com/v")
			if err != nil {
				t.Fatalf("SubmitDetails() error: %v", err)
			}
			if session.State != StateFailure {
				t.Fatalf("state = %q, want %q", session.State, StateFailure)
			}
			if session.FailureKind != tt.wantKind {
				t.Errorf("failure kind = %q, want %q", session.FailureKind, tt.wantKind)
			}
			if session.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", session.Message, tt.wantMessage)
			}
		})
	}
}

func TestJoinWorkflowCancelDiscardsState(t *testing.T) {
	ctx := context.Background()
	entries := &fakeEntryService{}
	svc := newTestWorkflow(t, entries)

	session, _ := svc.Start(ctx)
	token := session.Token
	if _, err := svc.SubmitCode(ctx, token, "123456"); err != nil {
		t.Fatalf("SubmitCode() error: %v", err)
	}

	if err := svc.Cancel(ctx, token); err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}

	// Everything about the token is gone.
	if _, err := svc.Get(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after cancel error = %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.SubmitDetails(ctx, token, "alice", "https://example.com/v"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("SubmitDetails() after cancel error = %v, want ErrSessionNotFound", err)
	}
	if entries.joinCalls != 0 {
		t.Errorf("JoinCompetition called %d times after cancel, want 0", entries.joinCalls)
	}
	if err := svc.Cancel(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Cancel() error = %v, want ErrSessionNotFound", err)
	}
}

func TestJoinWorkflowCancelMidSubmitDiscardsOutcome(t *testing.T) {
	ctx := context.Background()

	started := make(chan string)
	release := make(chan struct{})

	entries := &fakeEntryService{}
	entries.joinFunc = func(context.Context, string, string, string) (*entrydb.ParticipantEntry, error) {
		started <- "in-flight"
		<-release
		return &entrydb.ParticipantEntry{ID: 1}, nil
	}
	svc := newTestWorkflow(t, entries)

	session, _ := svc.Start(ctx)
	token := session.Token
	if _, err := svc.SubmitCode(ctx, token, "123456"); err != nil {
		t.Fatalf("SubmitCode() error: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.SubmitDetails(ctx, token, "alice", "https://example.com/v")
		done <- err
	}()

	<-started
	if err := svc.Cancel(ctx, token); err != nil {
		t.Fatalf("Cancel() during submit error: %v", err)
	}
	close(release)

	// The submit completed after the cancel, so its outcome is discarded.
	if err := <-done; !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("SubmitDetails() cancelled mid-flight error = %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.Get(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after mid-flight cancel error = %v, want ErrSessionNotFound", err)
	}
}

func TestJoinWorkflowBack(t *testing.T) {
	ctx := context.Background()
	entries := &fakeEntryService{}
	svc := newTestWorkflow(t, entries)

	session, _ := svc.Start(ctx)
	session, _ = svc.SubmitCode(ctx, session.Token, "123456")

	session, err := svc.Back(ctx, session.Token)
	if err != nil {
		t.Fatalf("Back() error: %v", err)
	}
	if session.State != StateEnterCode {
		t.Errorf("Back() state = %q, want %q", session.State, StateEnterCode)
	}

	// Submitting details from the code step is not a legal transition.
	if _, err := svc.SubmitDetails(ctx, session.Token, "alice", "https://example.com/v"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SubmitDetails() from enter_code error = %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.Back(ctx, session.Token); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Back() from enter_code error = %v, want ErrInvalidTransition", err)
	}
}

func TestJoinWorkflowRetryRouting(t *testing.T) {
	tests := []struct {
		name      string
		joinErr   error
		wantState State
	}{
		{"bad code returns to code step", entryservice.ErrCodeNotFound, StateEnterCode},
		{"long field returns to details step", entryservice.ErrFieldTooLong, StateEnterDetails},
		{"duplicate returns to details step", entryservice.ErrAlreadyJoined, StateEnterDetails},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			entries := &fakeEntryService{
				joinFunc: func(context.Context, string, string, string) (*entrydb.ParticipantEntry, error) {
					return nil, tt.joinErr
				},
			}
			svc := newTestWorkflow(t, entries)

			session, _ := svc.Start(ctx)
			session, _ = svc.SubmitCode(ctx, session.Token, "123456")
			session, _ = svc.SubmitDetails(ctx, session.Token, "alice", "https://example.com/v")

			session, err := svc.Retry(ctx, session.Token)
			if err != nil {
				t.Fatalf("Retry() error: %v", err)
			}
			if session.State != tt.wantState {
				t.Errorf("Retry() state = %q, want %q", session.State, tt.wantState)
			}
			if session.FailureKind != "" || session.Message != "" {
				t.Errorf("Retry() kept failure details: kind=%q message=%q", session.FailureKind, session.Message)
			}
		})
	}
}

func TestJoinWorkflowValidationDoesNotBurnStep(t *testing.T) {
	ctx := context.Background()
	entries := &fakeEntryService{}
	svc := newTestWorkflow(t, entries)

	session, _ := svc.Start(ctx)
	session, _ = svc.SubmitCode(ctx, session.Token, "123456")

	if _, err := svc.SubmitDetails(ctx, session.Token, "   ", "https://example.com/v"); !errors.Is(err, entryservice.ErrEmptyPlayerName) {
		t.Fatalf("SubmitDetails() empty name error = %v, want ErrEmptyPlayerName", err)
	}
	if entries.joinCalls != 0 {
		t.Errorf("JoinCompetition called %d times for empty name, want 0", entries.joinCalls)
	}

	// The session is still on the details step and a valid submission works.
	got, err := svc.Get(ctx, session.Token)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.State != StateEnterDetails {
		t.Errorf("state after validation rejection = %q, want %q", got.State, StateEnterDetails)
	}
	if _, err := svc.SubmitDetails(ctx, session.Token, "alice", "https://example.com/v"); err != nil {
		t.Errorf("SubmitDetails() after rejection error: %v", err)
	}
}

func TestJoinWorkflowSubmitCodeValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestWorkflow(t, &fakeEntryService{})

	session, _ := svc.Start(ctx)
	if _, err := svc.SubmitCode(ctx, session.Token, "   "); !errors.Is(err, ErrEmptyCode) {
		t.Errorf("SubmitCode() blank error = %v, want ErrEmptyCode", err)
	}
	if _, err := svc.SubmitCode(ctx, "no-such-token", "123456"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("SubmitCode() unknown token error = %v, want ErrSessionNotFound", err)
	}
}

func TestJoinSessionExpiry(t *testing.T) {
	ctx := context.Background()
	svc := newTestWorkflow(t, &fakeEntryService{})

	current := time.Unix(1730000000, 0)
	svc.store.now = func() time.Time { return current }

	session := svc.store.create()
	if _, err := svc.SubmitCode(ctx, session.Token, "123456"); err != nil {
		t.Fatalf("SubmitCode() error: %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := svc.Get(ctx, session.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after expiry error = %v, want ErrSessionNotFound", err)
	}
}
