package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SextoAndar/sexto-andar-auth/internal/api"
	"github.com/SextoAndar/sexto-andar-auth/internal/infrastructure/config"
	mongodb "github.com/SextoAndar/sexto-andar-auth/internal/infrastructure/db/mongo"
	redisdb "github.com/SextoAndar/sexto-andar-auth/internal/infrastructure/db/redis"
	"github.com/SextoAndar/sexto-andar-auth/internal/infrastructure/queue"
	"github.com/SextoAndar/sexto-andar-auth/internal/infrastructure/webhook"
	"github.com/SextoAndar/sexto-andar-auth/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the authentication API server",
		Long:  "Start the HTTP server exposing registration, login, token introspection, and admin management.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	notifier := webhook.NewNotifier(webhook.Config{
		URL:    cfg.Webhook.URL,
		Secret: cfg.Webhook.Secret,
	}, log)
	events := queue.NewDispatcher(cfg.Webhook.Workers, notifier, log)
	events.Start(ctx)

	e := api.NewRouter(db, rdb, events, cfg, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
