package competitionservice

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/leetrboo/leetrboo-api/app/metrics"
	"github.com/leetrboo/leetrboo-api/app/shared"

	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
)

// ServiceImpl handles competition-related logic.
type ServiceImpl struct {
	repo     competitiondb.Repository
	eventBus shared.EventBus
	logger   *slog.Logger
	metrics  *metrics.Metrics

	// rng and now are swappable for tests.
	rng intner
	now func() time.Time
}

type intner interface {
	Intn(n int) int
}

// NewService creates a new competition Service.
func NewService(repo competitiondb.Repository, eventBus shared.EventBus, logger *slog.Logger, m *metrics.Metrics) Service {
	return &ServiceImpl{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		metrics:  m,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}
