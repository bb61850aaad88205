package competitionservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/leetrboo/leetrboo-api/app/shared"

	competitionevents "github.com/leetrboo/leetrboo-api/app/modules/competition/domain/events"
	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
)

// CreateCompetition issues an invite code and persists a new competition owned
// by the session user. If the insert itself hits the unique constraint on
// competition_code (the pre-check is best-effort, not transactional), it
// retries once with a freshly generated code before surfacing failure.
func (s *ServiceImpl) CreateCompetition(ctx context.Context, session *shared.Session, name string) (*competitiondb.Competition, error) {
	if session == nil {
		return nil, ErrNoSession
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	code, err := s.GenerateUniqueCompetitionCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate competition code: %w", err)
	}

	competition := &competitiondb.Competition{
		Name:            name,
		CreatedBy:       session.UserID,
		CompetitionCode: code,
		Theme:           competitiondb.ThemeClassic,
	}

	err = s.repo.Create(ctx, competition)
	if errors.Is(err, competitiondb.ErrCodeTaken) {
		// Lost the check-then-insert race; one more code, then give up.
		code, err = s.GenerateUniqueCompetitionCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to regenerate competition code: %w", err)
		}
		competition.CompetitionCode = code
		err = s.repo.Create(ctx, competition)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}

	s.metrics.CompetitionsCreated.Inc()
	s.logger.InfoContext(ctx, "Competition created",
		slog.Int64("competition_id", competition.ID),
		slog.String("created_by", session.UserID))

	s.publish(ctx, competitionevents.CompetitionCreated, competitionevents.CompetitionCreatedPayload{
		CompetitionID:   competition.ID,
		Name:            competition.Name,
		CompetitionCode: competition.CompetitionCode,
		CreatedBy:       competition.CreatedBy,
	})

	return competition, nil
}

// ListCompetitions returns the session user's competitions, most recent first.
func (s *ServiceImpl) ListCompetitions(ctx context.Context, session *shared.Session) ([]*competitiondb.Competition, error) {
	if session == nil {
		return nil, ErrNoSession
	}
	return s.repo.ListByCreator(ctx, session.UserID)
}

// UpdateTheme changes the cosmetic theme tag of a competition the session user
// owns.
func (s *ServiceImpl) UpdateTheme(ctx context.Context, session *shared.Session, competitionID int64, theme competitiondb.Theme) error {
	if session == nil {
		return ErrNoSession
	}
	if !theme.IsValid() {
		return ErrInvalidTheme
	}

	err := s.repo.UpdateTheme(ctx, competitionID, session.UserID, theme)
	if errors.Is(err, competitiondb.ErrNotFound) {
		return ErrCompetitionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}

	s.publish(ctx, competitionevents.CompetitionThemeUpdated, competitionevents.CompetitionThemeUpdatedPayload{
		CompetitionID: competitionID,
		Theme:         string(theme),
	})
	return nil
}

// publish sends a domain event. Publish failures are logged, not surfaced: the
// realtime feed is a smoothing layer over authoritative storage, so a missed
// event never fails the operation that already persisted.
func (s *ServiceImpl) publish(ctx context.Context, topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to marshal event payload",
			slog.String("topic", topic), slog.Any("error", err))
		return
	}
	if err := s.eventBus.Publish(topic, message.NewMessage(watermill.NewUUID(), data)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			slog.String("topic", topic), slog.Any("error", err))
	}
}
