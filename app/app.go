package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"

	"github.com/leetrboo/leetrboo-api/app/eventbus"
	"github.com/leetrboo/leetrboo-api/app/metrics"
	"github.com/leetrboo/leetrboo-api/app/middleware"
	"github.com/leetrboo/leetrboo-api/app/modules/competition"
	"github.com/leetrboo/leetrboo-api/app/modules/entry"
	"github.com/leetrboo/leetrboo-api/app/modules/join"
	"github.com/leetrboo/leetrboo-api/app/shared"
	"github.com/leetrboo/leetrboo-api/config"
	"github.com/leetrboo/leetrboo-api/db/bundb"
	"github.com/leetrboo/leetrboo-api/pkg/jwt"
)

// App wires configuration, storage, the event bus, and the HTTP surface
// together.
type App struct {
	Cfg      *config.Config
	Router   chi.Router
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry

	CompetitionModule *competition.Module
	EntryModule       *entry.Module
	JoinModule        *join.Module

	db       *bun.DB
	eventBus shared.EventBus

	httpServer    *http.Server
	metricsServer *http.Server
}

// NewApp initializes the application with the necessary services and
// configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := newLogger(cfg.AppEnv)

	db, err := bundb.NewBunDB(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	eventBus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL)

	competitionModule := competition.NewModule(db, eventBus, logger, m)
	entryModule := entry.NewModule(db, competitionModule.Repo, eventBus, logger, m)
	joinModule := join.NewModule(ctx, entryModule.Service, cfg.Join.SessionTTL, logger)

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.Join.RateLimit), cfg.Join.RateBurst)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api", func(r chi.Router) {
		// Public participant routes, rate limited per IP.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter))
			joinModule.RegisterRoutes(r)
		})

		// Organizer routes behind the session middleware.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(jwtService))
			competitionModule.RegisterRoutes(r)
			entryModule.RegisterRoutes(r)
		})
	})

	return &App{
		Cfg:               cfg,
		Router:            router,
		Logger:            logger,
		Metrics:           m,
		Registry:          registry,
		CompetitionModule: competitionModule,
		EntryModule:       entryModule,
		JoinModule:        joinModule,
		db:                db,
		eventBus:          eventBus,
	}, nil
}

// Run serves the API and metrics endpoints until ctx is cancelled, then
// shuts both down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.httpServer = &http.Server{
		Addr:              a.Cfg.HTTP.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		a.Logger.Info("HTTP server listening", slog.String("addr", a.Cfg.HTTP.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if a.Cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
		a.metricsServer = &http.Server{
			Addr:              a.Cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			a.Logger.Info("Metrics server listening", slog.String("addr", a.Cfg.Metrics.Addr))
			if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Shutdown drains the HTTP servers and closes the event bus and database.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("http shutdown: %w", err)
		}
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("metrics shutdown: %w", err)
		}
	}
	if err := a.eventBus.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("event bus close: %w", err)
	}
	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("database close: %w", err)
	}
	return firstErr
}

// DB returns the underlying database handle.
func (a *App) DB() *bun.DB {
	return a.db
}

// EventBus returns the application event bus.
func (a *App) EventBus() shared.EventBus {
	return a.eventBus
}

func newLogger(appEnv string) *slog.Logger {
	if appEnv == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
