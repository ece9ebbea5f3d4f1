package cmd

import (
	"fmt"

	"booking-bridge/core/config"
	"booking-bridge/core/database"
	"booking-bridge/core/logger"
	"booking-bridge/core/queue"
	"booking-bridge/core/sink"
	"booking-bridge/core/source"

	"booking-bridge/feature/sync"
	"booking-bridge/feature/sync/models"

	"go.uber.org/zap"
)

// buildSyncService boots the sync engine for the one-shot CLI commands:
// config, logger, mirror database and remote clients, without the HTTP
// server or the payload archive.
func buildSyncService() (*sync.Service, *queue.Worker, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := models.Migrate(db); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to migrate mirror schema: %w", err)
	}

	worker := queue.NewWorker(l)

	feature, err := sync.NewFeature(db, source.NewClient(cfg.Source), sink.NewClient(cfg.Sink), nil, "", worker, l)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build sync feature: %w", err)
	}

	return feature.Service(), worker, l, nil
}
