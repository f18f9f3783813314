// Package server runs the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"galerie/internal/application/settings"
	"galerie/internal/infrastructure/database"
	"galerie/internal/infrastructure/migration"
	"galerie/internal/infrastructure/pubsub"
	"galerie/internal/interfaces/cli/bootstrap"
	apphttp "galerie/internal/interfaces/http"
	"galerie/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP API server",
		RunE:  run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, db, err := bootstrap.Run(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	log := logger.NewLogger()

	// The tenant schema is verified on every boot. All steps are
	// existence-guarded, so a fully migrated database is a no-op.
	result := migration.EnsureTenantSchema(db, log)
	if result.HasErrors() {
		return fmt.Errorf("tenant schema verification failed: %v", result.Errors)
	}

	var invalidator *pubsub.SettingsInvalidator
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		invalidator = pubsub.NewSettingsInvalidator(redisClient, log)
	}

	ttl := time.Duration(cfg.Settings.CacheTTLSeconds) * time.Second
	var settingsService *settings.Service
	if invalidator != nil {
		settingsService = settings.NewService(db, ttl, invalidator, log)
	} else {
		settingsService = settings.NewService(db, ttl, nil, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if invalidator != nil {
		go invalidator.Subscribe(ctx, settingsService.Cache().Invalidate)
	}

	router := apphttp.NewRouter(cfg, db, settingsService, log)
	srv := &nethttp.Server{
		Addr:    cfg.Server.GetAddr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), apphttp.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
