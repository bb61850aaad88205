package competitiondb

import "context"

// Repository defines the persistence operations for competitions.
type Repository interface {
	Create(ctx context.Context, competition *Competition) error
	GetByID(ctx context.Context, id int64) (*Competition, error)
	GetByCode(ctx context.Context, code string) (*Competition, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	ListByCreator(ctx context.Context, createdBy string) ([]*Competition, error)
	UpdateTheme(ctx context.Context, id int64, createdBy string, theme Theme) error
}
