package competitionservice

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/leetrboo/leetrboo-api/app/metrics"

	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
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
	PublishErr error
}

func (f *FakeEventBus) Publish(topic string, msg *message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PublishErr != nil {
		return f.PublishErr
	}
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

// ------------------------
// Deterministic RNG
// ------------------------

// seqIntner returns preprogrammed values, then repeats the last one.
type seqIntner struct {
	values []int
	idx    int
}

func (s *seqIntner) Intn(n int) int {
	if s.idx < len(s.values) {
		v := s.values[s.idx]
		s.idx++
		return v
	}
	if len(s.values) == 0 {
		return 0
	}
	return s.values[len(s.values)-1]
}

func newTestService(repo competitiondb.Repository, bus *FakeEventBus, rngValues ...int) *ServiceImpl {
	if bus == nil {
		bus = &FakeEventBus{}
	}
	return &ServiceImpl{
		repo:     repo,
		eventBus: bus,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:  metrics.New(prometheus.NewRegistry()),
		rng:      &seqIntner{values: rngValues},
		now:      func() time.Time { return time.Unix(1730000042, 0) },
	}
}
