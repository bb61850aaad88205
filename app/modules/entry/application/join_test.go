package entryservice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	entryevents "github.com/leetrboo/leetrboo-api/app/modules/entry/domain/events"
	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

func TestJoinCompetition_Success(t *testing.T) {
	repo := &entrydb.FakeRepository{
		JoinByCodeFunc: func(ctx context.Context, code, playerName, videoURL string) (*entrydb.ParticipantEntry, error) {
			if code != "482913" {
				t.Errorf("expected trimmed code 482913, got %q", code)
			}
			return &entrydb.ParticipantEntry{
				ID:            11,
				CompetitionID: 1,
				PlayerName:    playerName,
				VideoURL:      videoURL,
			}, nil
		},
	}
	bus := &FakeEventBus{}
	svc := newTestService(repo, nil, bus)

	entry, err := svc.JoinCompetition(context.Background(), "  482913  ", " Alex ", " https://youtu.be/xyz ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.CompetitionID != 1 || entry.PlayerName != "Alex" || entry.VideoURL != "https://youtu.be/xyz" {
		t.Errorf("unexpected entry: %+v", entry)
	}

	published := bus.Published()
	if len(published) != 1 || published[0].topic != entryevents.EntryCreated {
		t.Fatalf("expected one %s event, got %+v", entryevents.EntryCreated, published)
	}
	if got := published[0].msg.Metadata.Get(entryevents.MetadataCompetitionID); got != "1" {
		t.Errorf("expected competition_id metadata 1, got %q", got)
	}
	var payload entryevents.EntryPayload
	if err := json.Unmarshal(published[0].msg.Payload, &payload); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	if payload.EntryID != 11 || payload.PlayerName != "Alex" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestJoinCompetition_CodeNotFoundCreatesNothing(t *testing.T) {
	repo := &entrydb.FakeRepository{
		JoinByCodeFunc: func(ctx context.Context, code, playerName, videoURL string) (*entrydb.ParticipantEntry, error) {
			return nil, entrydb.ErrCodeNotFound
		},
	}
	bus := &FakeEventBus{}
	svc := newTestService(repo, nil, bus)

	for i := 0; i < 3; i++ {
		_, err := svc.JoinCompetition(context.Background(), "999999", "Alex", "https://example.com")
		if !errors.Is(err, ErrCodeNotFound) {
			t.Fatalf("attempt %d: expected ErrCodeNotFound, got %v", i, err)
		}
	}
	if len(bus.Published()) != 0 {
		t.Errorf("a rejected join must not publish entry events")
	}
	for _, call := range repo.Trace() {
		if call == "Insert" {
			t.Errorf("a rejected join must not insert")
		}
	}
}

func TestJoinCompetition_FailureTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "code not found", repoErr: entrydb.ErrCodeNotFound, wantErr: ErrCodeNotFound},
		{name: "value too long", repoErr: entrydb.ErrValueTooLong, wantErr: ErrFieldTooLong},
		{name: "already joined", repoErr: entrydb.ErrAlreadyJoined, wantErr: ErrAlreadyJoined},
		{name: "substring match from procedure text", repoErr: errors.New("ERROR: Competition code does not exist (SQLSTATE P0001)"), wantErr: ErrCodeNotFound},
		{name: "unknown", repoErr: errors.New("connection reset"), wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &entrydb.FakeRepository{
				JoinByCodeFunc: func(ctx context.Context, code, playerName, videoURL string) (*entrydb.ParticipantEntry, error) {
					return nil, tt.repoErr
				},
			}
			svc := newTestService(repo, nil, nil)

			_, err := svc.JoinCompetition(context.Background(), "123456", "Alex", "https://example.com")
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil {
				// Unknown errors must stay wrapped, not mapped onto the taxonomy.
				for _, known := range []error{ErrCodeNotFound, ErrFieldTooLong, ErrAlreadyJoined} {
					if errors.Is(err, known) {
						t.Fatalf("unknown error misclassified as %v", known)
					}
				}
			}
		})
	}
}

func TestJoinCompetition_Validation(t *testing.T) {
	repo := &entrydb.FakeRepository{}
	svc := newTestService(repo, nil, nil)

	tests := []struct {
		name       string
		code       string
		playerName string
		videoURL   string
		wantErr    error
	}{
		{name: "empty code", code: "   ", playerName: "Alex", videoURL: "https://example.com", wantErr: ErrCodeNotFound},
		{name: "empty name", code: "123456", playerName: "  ", videoURL: "https://example.com", wantErr: ErrEmptyPlayerName},
		{name: "empty url", code: "123456", playerName: "Alex", videoURL: "", wantErr: ErrInvalidVideoURL},
		{name: "not a url", code: "123456", playerName: "Alex", videoURL: "not a url", wantErr: ErrInvalidVideoURL},
		{name: "ftp scheme", code: "123456", playerName: "Alex", videoURL: "ftp://x.com", wantErr: ErrInvalidVideoURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.JoinCompetition(context.Background(), tt.code, tt.playerName, tt.videoURL)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if len(repo.Trace()) != 0 {
		t.Errorf("validation failures must never reach the repository, trace %v", repo.Trace())
	}
}

func TestValidateVideoURL_Accepted(t *testing.T) {
	for _, raw := range []string{
		"https://youtube.com/watch?v=abc",
		"http://example.com",
		"https://youtu.be/xyz",
	} {
		if err := validateVideoURL(raw); err != nil {
			t.Errorf("%q must be accepted, got %v", raw, err)
		}
	}
}
