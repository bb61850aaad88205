package competition

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	"github.com/leetrboo/leetrboo-api/app/metrics"
	"github.com/leetrboo/leetrboo-api/app/shared"

	competitionservice "github.com/leetrboo/leetrboo-api/app/modules/competition/application"
	competitionhandlers "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/handlers"
	competitiondb "github.com/leetrboo/leetrboo-api/app/modules/competition/infrastructure/repositories"
)

// Module bundles the competition service, repository, and HTTP handlers.
type Module struct {
	Service  competitionservice.Service
	Repo     competitiondb.Repository
	handlers *competitionhandlers.Handlers
	logger   *slog.Logger
}

// NewModule creates the competition module.
func NewModule(db *bun.DB, eventBus shared.EventBus, logger *slog.Logger, m *metrics.Metrics) *Module {
	repo := &competitiondb.RepositoryImpl{DB: db}
	service := competitionservice.NewService(repo, eventBus, logger, m)
	handlers := competitionhandlers.NewHandlers(service, logger)

	return &Module{
		Service:  service,
		Repo:     repo,
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes mounts the organizer-facing competition routes. The caller is
// expected to have applied the session middleware.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Get("/competitions", m.handlers.ListCompetitions)
	r.Post("/competitions", m.handlers.CreateCompetition)
	r.Patch("/competitions/{competitionID}/theme", m.handlers.UpdateTheme)
}
