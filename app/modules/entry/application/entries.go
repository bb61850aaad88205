package entryservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leetrboo/leetrboo-api/app/shared"

	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
	entryevents "github.com/leetrboo/leetrboo-api/app/modules/entry/domain/events"
	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

// AddEntry inserts an entry through the organizer's own add-participant form.
// Unlike JoinCompetition it takes a competition ID, so the ownership check
// happens here before the insert.
func (s *ServiceImpl) AddEntry(ctx context.Context, session *shared.Session, competitionID int64, playerName, videoURL string) (*entrydb.ParticipantEntry, error) {
	if session == nil {
		return nil, ErrNoSession
	}
	playerName = strings.TrimSpace(playerName)
	videoURL = strings.TrimSpace(videoURL)
	if playerName == "" {
		return nil, ErrEmptyPlayerName
	}
	if err := validateVideoURL(videoURL); err != nil {
		return nil, err
	}

	if err := s.VerifyOwnership(ctx, session, competitionID); err != nil {
		return nil, err
	}

	entry := &entrydb.ParticipantEntry{
		CompetitionID: competitionID,
		PlayerName:    playerName,
		VideoURL:      videoURL,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		_, domainErr := classifyJoinError(err)
		return nil, domainErr
	}

	s.metrics.EntriesCreated.Inc()
	s.publish(ctx, entryevents.EntryCreated, competitionID, entryPayload(entry))
	return entry, nil
}

// VerifyOwnership confirms the competition exists and belongs to the session
// user. A competition owned by someone else reads as absent.
func (s *ServiceImpl) VerifyOwnership(ctx context.Context, session *shared.Session, competitionID int64) error {
	if session == nil {
		return ErrNoSession
	}
	competition, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, competitiondb.ErrNotFound) {
			return ErrCompetitionNotFound
		}
		return fmt.Errorf("failed to verify competition: %w", err)
	}
	if competition.CreatedBy != session.UserID {
		// Indistinguishable from absence on purpose.
		return ErrCompetitionNotFound
	}
	return nil
}

// ListEntries returns the competition's entries in display order: scored
// entries first (score descending), then unscored entries (newest first).
func (s *ServiceImpl) ListEntries(ctx context.Context, session *shared.Session, competitionID int64) ([]*entrydb.ParticipantEntry, error) {
	if session == nil {
		return nil, ErrNoSession
	}
	entries, err := s.repo.ListByCompetition(ctx, competitionID, session.UserID)
	if err != nil {
		return nil, err
	}
	return SortEntriesForDisplay(entries), nil
}

// UpdateEntry sets score and/or comments on an entry the session user owns.
func (s *ServiceImpl) UpdateEntry(ctx context.Context, session *shared.Session, entryID int64, update *entrydb.EntryUpdate) (*entrydb.ParticipantEntry, error) {
	if session == nil {
		return nil, ErrNoSession
	}
	if update == nil || (update.Score == nil && update.Comments == nil) {
		return nil, fmt.Errorf("nothing to update")
	}

	entry, err := s.repo.Update(ctx, entryID, session.UserID, update)
	if err != nil {
		if errors.Is(err, entrydb.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		if errors.Is(err, entrydb.ErrValueTooLong) {
			return nil, ErrFieldTooLong
		}
		return nil, err
	}

	s.publish(ctx, entryevents.EntryUpdated, entry.CompetitionID, entryPayload(entry))
	return entry, nil
}

// DeleteEntry removes an entry the session user owns.
func (s *ServiceImpl) DeleteEntry(ctx context.Context, session *shared.Session, entryID int64) error {
	if session == nil {
		return ErrNoSession
	}

	competitionID, err := s.repo.Delete(ctx, entryID, session.UserID)
	if err != nil {
		if errors.Is(err, entrydb.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}

	s.publish(ctx, entryevents.EntryDeleted, competitionID, entryevents.EntryDeletedPayload{
		EntryID:       entryID,
		CompetitionID: competitionID,
	})
	return nil
}
