// Command roomtrack runs the RoomTrack property management API server.
//
// Subcommands:
//
//	roomtrack            start the API server (default)
//	roomtrack migrate    apply or roll back database migrations
//	roomtrack admin      administrative commands (create-user, list-users)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	rthttp "github.com/roomtrack/roomtrack/internal/adapter/http"
	rtnats "github.com/roomtrack/roomtrack/internal/adapter/nats"
	"github.com/roomtrack/roomtrack/internal/adapter/postgres"
	"github.com/roomtrack/roomtrack/internal/adapter/ristretto"
	"github.com/roomtrack/roomtrack/internal/config"
	"github.com/roomtrack/roomtrack/internal/logger"
	"github.com/roomtrack/roomtrack/internal/middleware"
	"github.com/roomtrack/roomtrack/internal/port/notifier"
	"github.com/roomtrack/roomtrack/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.Logging))

	var runErr error
	switch {
	case len(os.Args) > 1 && os.Args[1] == "migrate":
		runErr = runMigrate(cfg, os.Args[2:])
	case len(os.Args) > 1 && os.Args[1] == "admin":
		runErr = runAdmin(cfg, os.Args[2:])
	default:
		runErr = run(cfg)
	}
	if runErr != nil {
		slog.Error("fatal", "error", runErr)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

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

	var notifiers []notifier.Notifier
	if cfg.NATS.URL != "" {
		pub, err := rtnats.Connect(ctx, cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer func() { _ = pub.Close() }()
		notifiers = append(notifiers, pub)
	}

	statsCache, err := ristretto.New(cfg.Cache.MaxSizeMB)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer statsCache.Close()

	// --- Services ---

	store := postgres.NewStore(pool)
	emitter := service.NewNotificationService(store, notifiers)
	userSvc := service.NewUserService(store, cfg.Auth.BcryptCost)
	propertySvc := service.NewPropertyService(store)
	leaseSvc := service.NewLeaseService(store, emitter)
	paymentSvc := service.NewPaymentService(store, emitter)
	maintenanceSvc := service.NewMaintenanceService(store, emitter)
	messageSvc := service.NewMessageService(store)
	statsSvc := service.NewStatsService(store, statsCache, cfg.Cache.StatsTTL)

	handlers := rthttp.NewHandlers(
		userSvc, propertySvc, leaseSvc, paymentSvc,
		maintenanceSvc, messageSvc, emitter, statsSvc,
	)

	// --- HTTP ---

	r := chi.NewRouter()
	r.Use(rthttp.CORS(cfg.Server.CORSOrigin))
	r.Use(rthttp.Logger)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.Identity(store))

	rthttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// runMigrate applies or rolls back migrations without starting the server.
func runMigrate(cfg *config.Config, args []string) error {
	ctx := context.Background()

	dir := "up"
	if len(args) > 0 {
		dir = args[0]
	}
	switch dir {
	case "up":
		if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
			return err
		}
		slog.Info("migrations applied")
		return nil
	case "down":
		if err := postgres.RollbackMigrations(ctx, cfg.Postgres.DSN, 1); err != nil {
			return err
		}
		slog.Info("migration rolled back")
		return nil
	default:
		return fmt.Errorf("unknown migrate direction: %s (want up or down)", dir)
	}
}
