package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nulzo/project-tracker-api/cmd"
	"github.com/nulzo/project-tracker-api/internal/config"
	"github.com/nulzo/project-tracker-api/internal/platform/logger"
	"github.com/nulzo/project-tracker-api/internal/platform/otel"
	"github.com/nulzo/project-tracker-api/internal/server"
	"github.com/nulzo/project-tracker-api/internal/store/sqlstore"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Color,
	})
	defer logger.Sync()
	log := logger.With(zap.String("service", cfg.Tracing.ServiceName))

	shutdownTracer, err := otel.InitTracer(cfg.Tracing, log, os.Stdout)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}

	repo, err := sqlstore.Open(cfg.Store, log)
	if err != nil {
		logger.Fatal("Failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer func() {
		_ = repo.Close()
	}()

	if cfg.Server.UpdateRepo != "" {
		go cmd.CheckForUpdates(context.Background(), cfg.Server.UpdateRepo, log)
	}

	srv := server.New(cfg, log, repo, cmd.AppVersion).HTTPServer()

	go func() {
		logger.Info("Starting server",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Server.Env),
			zap.String("version", cmd.AppVersion),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracer(ctx); err != nil {
		logger.Error("Failed to flush traces", zap.Error(err))
	}

	logger.Info("Server exited")
}
