package sync

import (
	"context"

	"booking-bridge/core/archive"
	"booking-bridge/core/queue"
	"booking-bridge/core/sink"
	"booking-bridge/core/source"
	"booking-bridge/feature/sync/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature wires the full sync engine: repository, reconciler, fault
// ledger, orchestrator, worker-backed service and HTTP handler.
// archiveClient may be nil when payload archiving is disabled.
func NewFeature(db *gorm.DB, src source.Client, sinkClient sink.Client, archiveClient archive.Client, archiveBucket string, worker *queue.Worker, logger *zap.Logger) (*Feature, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}

	repo := NewRepository(db, logger)
	repo.AddPostWriteHook(PostWriteHookFunc(func(ctx context.Context, rec models.Record) error {
		logger.Debug("Local write",
			zap.String("kind", string(rec.Kind())),
			zap.String("record", rec.ExternalKey()),
		)
		return nil
	}))

	reconciler := NewReconciler(sinkClient, repo, registry, logger)
	faults := NewFaultLedger(repo, reconciler, logger)
	orchestrator := NewOrchestrator(src, repo, reconciler, faults, registry, logger)
	svc := NewService(worker, orchestrator, repo, src, archiveClient, archiveBucket, logger)

	return &Feature{service: svc, handler: NewHandler(svc)}, nil
}

// Service exposes the sync service for the CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
