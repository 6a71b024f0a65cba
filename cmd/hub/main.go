// Command hub runs the eventpulse broadcast hub: it ingests change events on
// POST /webhook and fans them out to every WebSocket subscriber on GET /ws.
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
	"github.com/eventpulse/eventpulse/internal/adapter/ws"
	"github.com/eventpulse/eventpulse/internal/config"
	"github.com/eventpulse/eventpulse/internal/logger"
)

const serviceName = "eventpulse-hub"

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
		"port", cfg.Hub.Port,
		"write_timeout", cfg.Hub.WriteTimeout,
		"send_buffer", cfg.Hub.SendBuffer,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := epotel.InitTracer(ctx, serviceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	hub := ws.NewHub(cfg.Hub.WriteTimeout, cfg.Hub.SendBuffer)

	r := chi.NewRouter()
	r.Use(ephttp.CORS(cfg.Server.CORSOrigin))
	r.Use(ephttp.RequestID)
	r.Use(ephttp.Logger)
	r.Use(epotel.HTTPMiddleware(serviceName))
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"status":"ok","subscribers":%d}`, hub.ConnectionCount())
	})

	r.Get("/ws", hub.HandleWS)
	r.Post("/webhook", ws.Ingress(hub))

	srv := &http.Server{
		Addr:              ":" + cfg.Hub.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting hub", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down hub")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
