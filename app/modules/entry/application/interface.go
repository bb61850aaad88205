package entryservice

import (
	"context"

	"github.com/leetrboo/leetrboo-api/app/shared"

	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

// Service defines the entry module's application operations. JoinCompetition
// is the participant-facing join procedure and needs no session; everything
// else is organizer-scoped and takes the session explicitly.
type Service interface {
	JoinCompetition(ctx context.Context, code, playerName, videoURL string) (*entrydb.ParticipantEntry, error)

	VerifyOwnership(ctx context.Context, session *shared.Session, competitionID int64) error
	AddEntry(ctx context.Context, session *shared.Session, competitionID int64, playerName, videoURL string) (*entrydb.ParticipantEntry, error)
	ListEntries(ctx context.Context, session *shared.Session, competitionID int64) ([]*entrydb.ParticipantEntry, error)
	UpdateEntry(ctx context.Context, session *shared.Session, entryID int64, update *entrydb.EntryUpdate) (*entrydb.ParticipantEntry, error)
	DeleteEntry(ctx context.Context, session *shared.Session, entryID int64) error

	ExportScoreboard(ctx context.Context, session *shared.Session, competitionID int64) ([]byte, error)
	RenderScoreChart(ctx context.Context, session *shared.Session, competitionID int64) ([]byte, error)
}
