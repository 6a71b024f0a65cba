// Command api runs the eventpulse mutation service: the HTTP API that
// mutates events and tickets and notifies the broadcast hub of every change.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	ephttp "github.com/eventpulse/eventpulse/internal/adapter/http"
	epotel "github.com/eventpulse/eventpulse/internal/adapter/otel"
	"github.com/eventpulse/eventpulse/internal/adapter/postgres"
	"github.com/eventpulse/eventpulse/internal/adapter/ristretto"
	"github.com/eventpulse/eventpulse/internal/adapter/webhook"
	"github.com/eventpulse/eventpulse/internal/config"
	"github.com/eventpulse/eventpulse/internal/logger"
	"github.com/eventpulse/eventpulse/internal/service"
)

const serviceName = "eventpulse-api"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(config.Logging{Level: cfg.Logging.Level, Service: serviceName})
	slog.SetDefault(log)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"hub_webhook_url", cfg.Hub.WebhookURL,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Telemetry ---
	shutdownTracer, err := epotel.InitTracer(ctx, serviceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	// --- Infrastructure ---
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	readCache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer readCache.Close()

	// --- Services ---
	store := postgres.NewStore(pool)
	notify := webhook.New(cfg.Hub.WebhookURL, cfg.Hub.NotifyTimeout)
	eventSvc := service.NewEventService(store, notify, readCache, cfg.Cache.TTL)
	ticketSvc := service.NewTicketService(store, notify)

	// --- HTTP ---
	handlers := &ephttp.Handlers{
		Events:  eventSvc,
		Tickets: ticketSvc,
	}

	r := chi.NewRouter()
	r.Use(ephttp.CORS(cfg.Server.CORSOrigin))
	r.Use(ephttp.RequestID)
	r.Use(ephttp.Logger)
	r.Use(epotel.HTTPMiddleware(serviceName))
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	ephttp.MountRoutes(r, handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
