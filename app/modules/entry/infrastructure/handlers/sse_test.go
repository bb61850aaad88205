package entryhandlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/leetrboo/leetrboo-api/app/eventbus"
	"github.com/leetrboo/leetrboo-api/app/metrics"
	"github.com/leetrboo/leetrboo-api/app/shared"

	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
	entryservice "github.com/leetrboo/leetrboo-api/app/modules/entry/application"
	entryevents "github.com/leetrboo/leetrboo-api/app/modules/entry/domain/events"
	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

func newStreamFixture(t *testing.T) (*Handlers, shared.EventBus) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	bus, err := eventbus.NewEventBus(ctx, "", logger)
	if err != nil {
		t.Fatalf("NewEventBus() error: %v", err)
	}

	competitionRepo := &competitiondb.FakeRepository{
		GetByIDFunc: func(_ context.Context, id int64) (*competitiondb.Competition, error) {
			if id != 42 {
				return nil, competitiondb.ErrNotFound
			}
			return &competitiondb.Competition{ID: 42, CreatedBy: "owner"}, nil
		},
	}

	service := entryservice.NewService(&entrydb.FakeRepository{}, competitionRepo, bus, logger, metrics.New(prometheus.NewRegistry()))
	return NewHandlers(service, bus, logger), bus
}

func streamRequest(ctx context.Context, userID string, competitionID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("competitionID", competitionID)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	ctx = shared.WithSession(ctx, &shared.Session{UserID: userID})

	return httptest.NewRequest(http.MethodGet, "/api/competitions/"+competitionID+"/events", nil).WithContext(ctx)
}

func TestStreamEventsRejectsNonOwner(t *testing.T) {
	handlers, bus := newStreamFixture(t)

	rec := httptest.NewRecorder()
	handlers.StreamEvents(rec, streamRequest(context.Background(), "intruder", "42"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("non-owner stream status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	// Nothing was streamed; an event published afterwards has no listener
	// from this request.
	msg := message.NewMessage(watermill.NewUUID(), []byte(`{"entry_id":7,"competition_id":42}`))
	msg.Metadata.Set(entryevents.MetadataCompetitionID, "42")
	if err := bus.Publish(entryevents.EntryCreated, msg); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "entry.created") {
		t.Errorf("non-owner response contains event data: %q", rec.Body.String())
	}
}

func TestStreamEventsUnknownCompetition(t *testing.T) {
	handlers, _ := newStreamFixture(t)

	rec := httptest.NewRecorder()
	handlers.StreamEvents(rec, streamRequest(context.Background(), "owner", "99"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown competition stream status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestStreamEventsRelaysOwnerEvents(t *testing.T) {
	handlers, bus := newStreamFixture(t)

	reqCtx, cancel := context.WithCancel(context.Background())
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handlers.StreamEvents(rec, streamRequest(reqCtx, "owner", "42"))
		close(done)
	}()

	// Give the handler time to establish its subscriptions.
	time.Sleep(100 * time.Millisecond)

	matching := message.NewMessage(watermill.NewUUID(), []byte(`{"entry_id":7,"competition_id":42,"player_name":"alice"}`))
	matching.Metadata.Set(entryevents.MetadataCompetitionID, "42")
	if err := bus.Publish(entryevents.EntryCreated, matching); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	other := message.NewMessage(watermill.NewUUID(), []byte(`{"entry_id":8,"competition_id":43}`))
	other.Metadata.Set(entryevents.MetadataCompetitionID, "43")
	if err := bus.Publish(entryevents.EntryCreated, other); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	if !strings.Contains(body, "event: entry.created") {
		t.Errorf("stream missing event frame, body: %q", body)
	}
	if !strings.Contains(body, `"player_name":"alice"`) {
		t.Errorf("stream missing payload, body: %q", body)
	}
	if strings.Contains(body, `"competition_id":43`) {
		t.Errorf("stream leaked another competition's event, body: %q", body)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", got)
	}
}
