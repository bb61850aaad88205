package join

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	entryservice "github.com/leetrboo/leetrboo-api/app/modules/entry/application"
	joinservice "github.com/leetrboo/leetrboo-api/app/modules/join/application"
	joinhandlers "github.com/leetrboo/leetrboo-api/app/modules/join/infrastructure/handlers"
)

// Module bundles the join workflow service and its HTTP handlers.
type Module struct {
	Service  joinservice.Service
	handlers *joinhandlers.Handlers
	logger   *slog.Logger
}

// NewModule creates the join module. ctx bounds the session sweeper.
func NewModule(ctx context.Context, entries entryservice.Service, sessionTTL time.Duration, logger *slog.Logger) *Module {
	service := joinservice.NewService(ctx, entries, sessionTTL, logger)
	handlers := joinhandlers.NewHandlers(service, logger)

	return &Module{
		Service:  service,
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes mounts the public join routes. The caller is expected to
// have applied rate limiting.
func (m *Module) RegisterRoutes(r chi.Router) {
	r.Post("/join", m.handlers.Start)
	r.Get("/join/{token}", m.handlers.Get)
	r.Post("/join/{token}/code", m.handlers.SubmitCode)
	r.Post("/join/{token}/back", m.handlers.Back)
	r.Post("/join/{token}/details", m.handlers.SubmitDetails)
	r.Post("/join/{token}/retry", m.handlers.Retry)
	r.Delete("/join/{token}", m.handlers.Cancel)
}
