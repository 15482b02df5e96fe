// Command taskdesk serves the task manager web client.
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/taskdesk/taskdesk/internal/api"
	"github.com/taskdesk/taskdesk/internal/api/metrics"
	"github.com/taskdesk/taskdesk/internal/api/views"
	"github.com/taskdesk/taskdesk/internal/core/ports"
	"github.com/taskdesk/taskdesk/internal/core/service"
	"github.com/taskdesk/taskdesk/internal/infrastructure/backend"
	"github.com/taskdesk/taskdesk/internal/infrastructure/db/file"
	mongostore "github.com/taskdesk/taskdesk/internal/infrastructure/db/mongo"
	redisstore "github.com/taskdesk/taskdesk/internal/infrastructure/db/redis"
	"github.com/taskdesk/taskdesk/internal/infrastructure/http/handlers"
	"github.com/taskdesk/taskdesk/internal/pkg/config"
	"github.com/taskdesk/taskdesk/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskdesk: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty || cfg.IsDevelopment(),
		Service: "taskdesk",
	})
	log := logger.Get()

	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	client, err := backend.New(backend.Config{BaseURL: cfg.Backend.URL, Timeout: cfg.Backend.Timeout}, logger.Component("backend"))
	if err != nil {
		return err
	}

	flashes := service.NewFlashQueue(0)
	sessions := service.NewSessionStore(client, storage, flashes, logger.Component("session"))

	// The stored session must be in place before the first request.
	restored := sessions.Restore(ctx)
	metrics.SessionTransitionsTotal.WithLabelValues("restore", restoreResult(restored)).Inc()

	renderer, err := views.New(flashes)
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	csrfKey := make([]byte, 32)
	if _, err := rand.Read(csrfKey); err != nil {
		return fmt.Errorf("csrf key: %w", err)
	}

	e := api.NewRouter(api.Deps{
		Log:       logger.Component("http"),
		Sessions:  sessions,
		Tasks:     service.NewTaskService(client, client, logger.Component("tasks")),
		Employees: service.NewEmployeeService(client, logger.Component("employees")),
		Notifier:  flashes,
		Renderer:  renderer,
		Probes: []handlers.Probe{
			{Name: "session_storage", Pinger: storage},
			{Name: "backend", Pinger: client},
		},
		CSRFKey:        csrfKey,
		TrustedOrigins: cfg.TrustedOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Str("backend", client.BaseURL()).
			Str("session_driver", cfg.Session.Driver).
			Bool("session_restored", restored).
			Msg("taskdesk listening")
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openStorage builds the configured session storage driver and returns a
// function releasing its connection.
func openStorage(ctx context.Context, cfg *config.Config) (ports.SessionStorage, func(), error) {
	log := logger.Component("storage")

	switch cfg.Session.Driver {
	case config.DriverRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis session storage ready")
		return redisstore.NewSessionStorage(rdb, cfg.Session.Prefix), func() { closeWith(log, "redis", rdb.Close) }, nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo session storage ready")
		disconnect := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return client.Disconnect(ctx)
		}
		return mongostore.NewSessionStorage(db, cfg.Session.Prefix), func() { closeWith(log, "mongo", disconnect) }, nil

	default:
		log.Info().Str("path", cfg.Session.File).Msg("file session storage ready")
		return file.NewSessionStorage(cfg.Session.File, cfg.Session.Prefix), func() {}, nil
	}
}

func closeWith(log zerolog.Logger, name string, fn func() error) {
	if err := fn(); err != nil {
		log.Error().Err(err).Str("driver", name).Msg("failed to close session storage")
	}
}

func restoreResult(restored bool) string {
	if restored {
		return "ok"
	}
	return "empty"
}
