package entryservice

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/leetrboo/leetrboo-api/app/metrics"

	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

// ------------------------
// Fake Event Bus
// ------------------------

type publishedMessage struct {
	topic string
	msg   *message.Message
}

// FakeEventBus records published messages.
type FakeEventBus struct {
	mu        sync.Mutex
	published []publishedMessage
}

func (f *FakeEventBus) Publish(topic string, msg *message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, publishedMessage{topic: topic, msg: msg})
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch := make(chan *message.Message)
	close(ch)
	return ch, nil
}

func (f *FakeEventBus) Close() error { return nil }

func (f *FakeEventBus) Published() []publishedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]publishedMessage(nil), f.published...)
}

func newTestService(repo entrydb.Repository, competitionRepo competitiondb.Repository, bus *FakeEventBus) *ServiceImpl {
	if bus == nil {
		bus = &FakeEventBus{}
	}
	if competitionRepo == nil {
		competitionRepo = &competitiondb.FakeRepository{}
	}
	return &ServiceImpl{
		repo:            repo,
		competitionRepo: competitionRepo,
		eventBus:        bus,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:         metrics.New(prometheus.NewRegistry()),
	}
}

func intPtr(v int) *int          { return &v }
func strPtr(v string) *string    { return &v }
