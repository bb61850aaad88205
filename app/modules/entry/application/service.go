package entryservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/leetrboo/leetrboo-api/app/metrics"
	"github.com/leetrboo/leetrboo-api/app/shared"

	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
	entryevents "github.com/leetrboo/leetrboo-api/app/modules/entry/domain/events"
	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

// ServiceImpl handles participant entry logic.
type ServiceImpl struct {
	repo            entrydb.Repository
	competitionRepo competitiondb.Repository
	eventBus        shared.EventBus
	logger          *slog.Logger
	metrics         *metrics.Metrics
}

// NewService creates a new entry Service.
func NewService(
	repo entrydb.Repository,
	competitionRepo competitiondb.Repository,
	eventBus shared.EventBus,
	logger *slog.Logger,
	m *metrics.Metrics,
) Service {
	return &ServiceImpl{
		repo:            repo,
		competitionRepo: competitionRepo,
		eventBus:        eventBus,
		logger:          logger,
		metrics:         m,
	}
}

// publish sends a domain event with the competition ID in metadata so feed
// subscribers can filter cheaply. Publish failures are logged, not surfaced.
func (s *ServiceImpl) publish(ctx context.Context, topic string, competitionID int64, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to marshal event payload",
			slog.String("topic", topic), slog.Any("error", err))
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(entryevents.MetadataCompetitionID, strconv.FormatInt(competitionID, 10))
	if err := s.eventBus.Publish(topic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			slog.String("topic", topic), slog.Any("error", err))
	}
}
