package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/jeamar123/budget-api/internal/auth"
	"github.com/jeamar123/budget-api/internal/config"
	apphttp "github.com/jeamar123/budget-api/internal/http"
	"github.com/jeamar123/budget-api/internal/log"
	"github.com/jeamar123/budget-api/internal/report"
	"github.com/jeamar123/budget-api/internal/storage"
)

func main() {
	// A missing .env is fine, the environment itself still applies.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("open database", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	authSvc := auth.NewService(repo, cfg.BcryptCost)
	engine := report.NewEngine(repo)

	srv := apphttp.NewServer(":"+cfg.Port, repo, authSvc, engine, cfg.RateLimitPerMinute, logger)
	srv.ReadTimeout = cfg.ReadTimeout
	srv.WriteTimeout = cfg.WriteTimeout
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server",
			log.FieldOperation, log.OpStartup,
			"port", cfg.Port,
			"db_path", cfg.SQLiteDBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown signal received", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
