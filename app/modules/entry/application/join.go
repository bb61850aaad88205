package entryservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	entryevents "github.com/leetrboo/leetrboo-api/app/modules/entry/domain/events"
	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

// JoinCompetition converts {invite code, player name, video URL} into a new
// participant entry, or a well-defined rejection. The code lookup and the
// insert happen in one repository transaction; nothing is written on any
// failure path.
func (s *ServiceImpl) JoinCompetition(ctx context.Context, code, playerName, videoURL string) (*entrydb.ParticipantEntry, error) {
	code = strings.TrimSpace(code)
	playerName = strings.TrimSpace(playerName)
	videoURL = strings.TrimSpace(videoURL)

	if code == "" {
		s.metrics.JoinAttempts.WithLabelValues("validation_failed").Inc()
		return nil, ErrCodeNotFound
	}
	if playerName == "" {
		s.metrics.JoinAttempts.WithLabelValues("validation_failed").Inc()
		return nil, ErrEmptyPlayerName
	}
	if err := validateVideoURL(videoURL); err != nil {
		s.metrics.JoinAttempts.WithLabelValues("validation_failed").Inc()
		return nil, err
	}

	entry, err := s.repo.JoinByCode(ctx, code, playerName, videoURL)
	if err != nil {
		outcome, domainErr := classifyJoinError(err)
		s.metrics.JoinAttempts.WithLabelValues(outcome).Inc()
		if outcome == "unknown" {
			s.logger.ErrorContext(ctx, "Join procedure failed",
				slog.String("code", code), slog.Any("error", err))
		}
		return nil, domainErr
	}

	s.metrics.JoinAttempts.WithLabelValues("success").Inc()
	s.metrics.EntriesCreated.Inc()
	s.logger.InfoContext(ctx, "Participant joined competition",
		slog.Int64("competition_id", entry.CompetitionID),
		slog.Int64("entry_id", entry.ID))

	s.publish(ctx, entryevents.EntryCreated, entry.CompetitionID, entryPayload(entry))
	return entry, nil
}

// classifyJoinError maps repository errors onto the join failure taxonomy.
// Alongside the sentinel checks it matches the message substrings of the
// original join_competition procedure, so an error that arrives as plain text
// (e.g. from a stored procedure) classifies the same way.
func classifyJoinError(err error) (outcome string, domainErr error) {
	msg := err.Error()
	switch {
	case errors.Is(err, entrydb.ErrCodeNotFound) || strings.Contains(msg, "Competition code does not exist"):
		return "code_not_found", ErrCodeNotFound
	case errors.Is(err, entrydb.ErrValueTooLong) || strings.Contains(msg, "value too long"):
		return "field_too_long", ErrFieldTooLong
	case errors.Is(err, entrydb.ErrAlreadyJoined) || strings.Contains(msg, "already joined"):
		return "already_joined", ErrAlreadyJoined
	default:
		return "unknown", fmt.Errorf("join procedure failed: %w", err)
	}
}

// validateVideoURL requires an absolute URL with an http or https scheme.
func validateVideoURL(raw string) error {
	if raw == "" {
		return ErrInvalidVideoURL
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrInvalidVideoURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidVideoURL
	}
	return nil
}

func entryPayload(entry *entrydb.ParticipantEntry) entryevents.EntryPayload {
	return entryevents.EntryPayload{
		EntryID:       entry.ID,
		CompetitionID: entry.CompetitionID,
		PlayerName:    entry.PlayerName,
		VideoURL:      entry.VideoURL,
		Score:         entry.Score,
		Comments:      entry.Comments,
		CreatedAt:     entry.CreatedAt,
	}
}
