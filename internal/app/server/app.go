// Package server assembles storage, domain services and the HTTP router into a runnable process.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"artha/internal/app/server/api"
	"artha/internal/app/server/config"
	"artha/internal/domain/feedback"
	"artha/internal/domain/history"
	"artha/internal/domain/token"
	"artha/internal/domain/translate"
	"artha/internal/domain/user"
	"artha/internal/infrastructure/storage/postgres"
	"artha/internal/utils/logger"
)

const readHeaderTimeout = 5 * time.Second

type database interface {
	Close() error
}

type recorder interface {
	Close(ctx context.Context) error
}

type App struct {
	cfg      *config.Config
	log      *slog.Logger
	db       database
	recorder recorder
	users    *user.Service
	handler  http.Handler
}

// Open connects to the database and builds every service. The caller owns the
// returned App and must Close it.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	storage, err := postgres.New(ctx, cfg.DB.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	pool := storage.Pool()

	users := user.NewService(postgres.NewUserRepository(pool, log), user.NewCredentialsValidator(), log)
	tokens := token.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL, log)
	provider := translate.NewGoogleProvider(cfg.Translate.BaseURL, cfg.Translate.Timeout)
	historyService := history.NewService(postgres.NewHistoryRepository(pool, log), log)
	feedbackService := feedback.NewService(postgres.NewFeedbackRepository(pool, log), log)

	rec := history.NewRecorder(historyService, history.RecorderConfig{
		Workers:   cfg.History.Workers,
		QueueSize: cfg.History.QueueSize,
		Timeout:   cfg.History.Timeout,
	}, log)

	router := api.New(api.Services{
		Users:     users,
		Tokens:    tokens,
		Translate: translate.NewService(provider, cfg.Translate.Timeout, log),
		History:   historyService,
		Feedback:  feedbackService,
		Recorder:  rec,
		DB:        storage,
		Provider:  provider.Name(),
	}, api.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimit:   cfg.Translate.Rate,
		RateBurst:   cfg.Translate.Burst,
	}, log)

	return &App{
		cfg:      cfg,
		log:      log.With(slog.String("component", "app")),
		db:       storage,
		recorder: rec,
		users:    users,
		handler:  router,
	}, nil
}

// Users exposes the credential service to the admin commands.
func (a *App) Users() *user.Service {
	return a.users
}

// Run serves HTTP until ctx is cancelled or the listener fails, then shuts the
// server down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	for _, key := range a.cfg.InsecureDefaults() {
		a.log.Warn("insecure default in use, override before exposing the service", slog.String("key", key))
	}

	srv := &http.Server{
		Addr:              a.cfg.Server.RunAddress,
		Handler:           a.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting server", slog.String("address", srv.Addr), slog.String("env", a.cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close drains pending history writes before the pool goes away.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if err := a.recorder.Close(ctx); err != nil {
		a.log.Error("history writer did not drain", logger.Err(err))
		errs = append(errs, fmt.Errorf("close recorder: %w", err))
	}

	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close db: %w", err))
	}

	return errors.Join(errs...)
}
