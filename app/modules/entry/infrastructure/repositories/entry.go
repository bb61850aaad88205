package entrydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
)

// RepositoryImpl is an implementation of the Repository interface using bun.
type RepositoryImpl struct {
	DB *bun.DB
}

// JoinByCode performs the join procedure: lookup the competition by invite
// code and insert the entry, as one transaction. This is the only atomicity
// the join workflow relies on; pushing the existence check into the same
// transaction as the insert closes the check-then-act gap a client-side
// lookup would open.
func (db *RepositoryImpl) JoinByCode(ctx context.Context, code, playerName, videoURL string) (*ParticipantEntry, error) {
	entry := &ParticipantEntry{
		PlayerName: playerName,
		VideoURL:   videoURL,
	}

	err := db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		competition := &competitiondb.Competition{}
		err := tx.NewSelect().
			Model(competition).
			Where("competition_code = ?", code).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCodeNotFound
			}
			return fmt.Errorf("failed to look up competition code: %w", err)
		}

		entry.CompetitionID = competition.ID
		if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
			return classifyInsertError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Insert adds an entry directly (organizer's add-participant form). The caller
// is responsible for the ownership check on the competition.
func (db *RepositoryImpl) Insert(ctx context.Context, entry *ParticipantEntry) error {
	if _, err := db.DB.NewInsert().Model(entry).Exec(ctx); err != nil {
		return classifyInsertError(err)
	}
	return nil
}

// ListByCompetition retrieves the entries of a competition owned by ownerID.
func (db *RepositoryImpl) ListByCompetition(ctx context.Context, competitionID int64, ownerID string) ([]*ParticipantEntry, error) {
	var entries []*ParticipantEntry
	err := db.DB.NewSelect().
		Model(&entries).
		Join("JOIN competitions AS c ON c.id = pe.competition_id").
		Where("pe.competition_id = ?", competitionID).
		Where("c.created_by = ?", ownerID).
		Order("pe.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// Update sets score/comments on an entry belonging to a competition owned by
// ownerID and returns the updated row.
func (db *RepositoryImpl) Update(ctx context.Context, id int64, ownerID string, update *EntryUpdate) (*ParticipantEntry, error) {
	q := db.DB.NewUpdate().
		Model((*ParticipantEntry)(nil)).
		Where("pe.id = ?", id).
		Where("pe.competition_id IN (SELECT id FROM competitions WHERE created_by = ?)", ownerID)

	if update.Score != nil {
		q = q.Set("score = ?", *update.Score)
	}
	if update.Comments != nil {
		q = q.Set("comments = ?", *update.Comments)
	}

	result, err := q.Exec(ctx)
	if err != nil {
		return nil, classifyInsertError(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected after update: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	entry := &ParticipantEntry{}
	if err := db.DB.NewSelect().Model(entry).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to reload entry: %w", err)
	}
	return entry, nil
}

// Delete removes an entry belonging to a competition owned by ownerID and
// returns the competition the entry belonged to.
func (db *RepositoryImpl) Delete(ctx context.Context, id int64, ownerID string) (int64, error) {
	var competitionID int64
	err := db.DB.NewRaw(`
		DELETE FROM player_entries
		WHERE id = ? AND competition_id IN (SELECT id FROM competitions WHERE created_by = ?)
		RETURNING competition_id
	`, id, ownerID).Scan(ctx, &competitionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to delete entry: %w", err)
	}
	return competitionID, nil
}

// classifyInsertError maps Postgres error codes onto the repository sentinels:
// 23505 (unique_violation) on the per-competition player name means a
// duplicate join, 22001 (string_data_right_truncation) means an oversized
// field.
func classifyInsertError(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') {
		case "23505":
			return ErrAlreadyJoined
		case "22001":
			return ErrValueTooLong
		}
	}
	return fmt.Errorf("failed to write entry: %w", err)
}
