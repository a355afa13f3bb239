package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexTLDR/bringwhat/internal/database"
	"github.com/AlexTLDR/bringwhat/internal/server"
	"github.com/AlexTLDR/bringwhat/internal/suggest"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	gateway, err := suggest.New(ctx, cfg.AI, logger)
	if err != nil {
		logger.Fatal("Failed to initialize suggestion provider", zap.Error(err))
	}

	srv := server.New(cfg, db, gateway, logger)

	logger.Info("BringWhat server",
		zap.String("port", cfg.Port),
		zap.String("database", string(db.Kind())),
		zap.String("ai_provider", gateway.ProviderName()),
		zap.Bool("api_key_provided", cfg.AI.APIKey != ""),
		zap.String("environment", cfg.Environment))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", zap.String("addr", ":"+cfg.Port))
		return srv.Start(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Server is shutting down...")

		// Give outstanding requests time to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server failed", zap.Error(err))
		return err
	}

	logger.Info("Server exited")
	return nil
}
