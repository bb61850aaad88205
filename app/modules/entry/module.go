package entry

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	"github.com/leetrboo/leetrboo-api/app/metrics"
	"github.com/leetrboo/leetrboo-api/app/shared"

	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
	entryservice "github.com/leetrboo/leetrboo-api/app/modules/entry/application"
	entryhandlers "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/handlers"
	entrydb "github.com/leetrboo/leetrboo-api/app/modules/entry/infrastructure/repositories"
)

// Module bundles the entry service, repository, and HTTP handlers.
type Module struct {
	Service  entryservice.Service
	Repo     entrydb.Repository
	handlers *entryhandlers.Handlers
	logger   *slog.Logger
}

// NewModule creates the entry module.
func NewModule(db *bun.DB, competitionRepo competitiondb.Repository, eventBus shared.EventBus, logger *slog.Logger, m *metrics.Metrics) *Module {
	repo := &entrydb.RepositoryImpl{DB: db}
	service := entryservice.NewService(repo, competitionRepo, eventBus, logger, m)
	handlers := entryhandlers.NewHandlers(service, eventBus, logger)

	return &Module{
		Service:  service,
		Repo:     repo,
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes mounts the organizer-facing entry routes. The caller is
// expected to have applied the session middleware.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Get("/competitions/{competitionID}/entries", m.handlers.ListEntries)
	r.Post("/competitions/{competitionID}/entries", m.handlers.AddEntry)
	r.Get("/competitions/{competitionID}/events", m.handlers.StreamEvents)
	r.Get("/competitions/{competitionID}/export", m.handlers.ExportScoreboard)
	r.Get("/competitions/{competitionID}/chart", m.handlers.ScoreChart)
	r.Patch("/entries/{entryID}", m.handlers.UpdateEntry)
	r.Delete("/entries/{entryID}", m.handlers.DeleteEntry)
}
