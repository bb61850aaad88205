package competitionservice

import (
	"context"

	"github.com/leetrboo/leetrboo-api/app/shared"

	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
)

// Service defines the competition module's application operations. Every
// operation takes the caller's session explicitly.
type Service interface {
	CreateCompetition(ctx context.Context, session *shared.Session, name string) (*competitiondb.Competition, error)
	ListCompetitions(ctx context.Context, session *shared.Session) ([]*competitiondb.Competition, error)
	UpdateTheme(ctx context.Context, session *shared.Session, competitionID int64, theme competitiondb.Theme) error
}
