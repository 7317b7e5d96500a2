package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/optionmap/backend/config"
	httpDelivery "github.com/optionmap/backend/internal/delivery/http"
	"github.com/optionmap/backend/internal/infrastructure/elasticpath"
	"github.com/optionmap/backend/internal/infrastructure/logging"
	"github.com/optionmap/backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting option mapping backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("elasticpath_host", cfg.ElasticPath.Host),
	)

	mappingClient := elasticpath.NewClient(elasticpath.Config{
		Host:         cfg.ElasticPath.Host,
		ClientID:     cfg.ElasticPath.ClientID,
		ClientSecret: cfg.ElasticPath.ClientSecret,
		Timeout:      cfg.ElasticPath.Timeout,
	}, logger)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		mappingClient.SetDebug(true)
	}

	mappingService := usecase.NewOptionMappingService(mappingClient, logger)
	handler := httpDelivery.NewHandler(mappingService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-sigCh:
	}

	logger.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
