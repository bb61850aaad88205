package competitiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// RepositoryImpl is an implementation of the Repository interface using bun.
type RepositoryImpl struct {
	DB *bun.DB
}

// Create inserts a new competition. A unique violation on competition_code is
// reported as ErrCodeTaken so the issuer can retry with a fresh code.
func (db *RepositoryImpl) Create(ctx context.Context, competition *Competition) error {
	_, err := db.DB.NewInsert().Model(competition).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCodeTaken
		}
		return fmt.Errorf("failed to create competition: %w", err)
	}
	return nil
}

// GetByID retrieves a competition by its primary key.
func (db *RepositoryImpl) GetByID(ctx context.Context, id int64) (*Competition, error) {
	competition := &Competition{}
	err := db.DB.NewSelect().Model(competition).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch competition: %w", err)
	}
	return competition, nil
}

// GetByCode retrieves a competition by its invite code.
func (db *RepositoryImpl) GetByCode(ctx context.Context, code string) (*Competition, error) {
	competition := &Competition{}
	err := db.DB.NewSelect().Model(competition).Where("competition_code = ?", code).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch competition by code: %w", err)
	}
	return competition, nil
}

// CodeExists performs the point lookup used by the code issuer's pre-check.
func (db *RepositoryImpl) CodeExists(ctx context.Context, code string) (bool, error) {
	exists, err := db.DB.NewSelect().
		Model((*Competition)(nil)).
		Where("competition_code = ?", code).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check competition code: %w", err)
	}
	return exists, nil
}

// ListByCreator retrieves the organizer's competitions, most recent first.
func (db *RepositoryImpl) ListByCreator(ctx context.Context, createdBy string) ([]*Competition, error) {
	var competitions []*Competition
	err := db.DB.NewSelect().
		Model(&competitions).
		Where("created_by = ?", createdBy).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	return competitions, nil
}

// UpdateTheme updates the cosmetic theme tag. The createdBy filter is the
// ownership check.
func (db *RepositoryImpl) UpdateTheme(ctx context.Context, id int64, createdBy string, theme Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("invalid theme: %s", theme)
	}

	result, err := db.DB.NewUpdate().
		Model((*Competition)(nil)).
		Set("theme = ?", theme).
		Where("id = ? AND created_by = ?", id, createdBy).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after update: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}
