package sync

import (
	"context"
	"time"

	"booking-bridge/core/archive"
	"booking-bridge/core/queue"
	"booking-bridge/core/source"
	"booking-bridge/core/utils"

	"go.uber.org/zap"
)

// Webhook actions recognized by the engine.
const (
	ActionReservationCreated  = "reservation.created"
	ActionReservationModified = "reservation.modified"
	ActionReservationCanceled = "reservation.canceled"
	ActionReservationDeleted  = "reservation.deleted"
	ActionListingCreated      = "listing.created"
	ActionListingModified     = "listing.modified"
)

// StatusReport is the engine's health snapshot.
type StatusReport struct {
	QueueDepth int              `json:"queue_depth"`
	Idle       bool             `json:"idle"`
	Unsynced   map[string]int64 `json:"unsynced"`
}

// Service accepts webhook deliveries and turns them into queued sync jobs.
// Intake is deliberately cheap: archive the raw payload, decode just enough
// to route, enqueue, acknowledge. All remote work happens on the worker.
type Service struct {
	worker        *queue.Worker
	orchestrator  *Orchestrator
	repo          Repository
	source        source.Client
	archiveClient archive.Client
	archiveBucket string
	logger        *zap.Logger
	now           func() time.Time
}

// NewService creates the sync service. archiveClient may be nil when payload
// archiving is disabled.
func NewService(worker *queue.Worker, orchestrator *Orchestrator, repo Repository, src source.Client, archiveClient archive.Client, archiveBucket string, logger *zap.Logger) *Service {
	return &Service{
		worker:        worker,
		orchestrator:  orchestrator,
		repo:          repo,
		source:        src,
		archiveClient: archiveClient,
		archiveBucket: archiveBucket,
		logger:        logger,
		now:           time.Now,
	}
}

// Accept archives the raw delivery and enqueues the matching job. It returns
// false for deliveries the engine does not act on; the webhook endpoint
// still acknowledges those so the platform does not retry them forever.
func (s *Service) Accept(rayID, action string, payload map[string]any, raw []byte) bool {
	s.archivePayload(rayID, raw)

	recordID := eventRecordID(payload)
	if recordID == "" {
		s.logger.Warn("Webhook payload carries no record id",
			zap.String("ray_id", rayID),
			zap.String("action", action),
		)
		return false
	}

	switch action {
	case ActionReservationCreated, ActionReservationModified:
		s.enqueueReservation(rayID, action, ReservationRef{
			ExternalID: recordID,
			Type:       utils.ToString(payload["type"]),
		})
	case ActionReservationCanceled:
		s.enqueueReservation(rayID, action, ReservationRef{
			ExternalID: recordID,
			Type:       utils.ToString(payload["type"]),
			Cancel:     true,
		})
	case ActionReservationDeleted:
		s.enqueueReservation(rayID, action, ReservationRef{
			ExternalID: recordID,
			Type:       utils.ToString(payload["type"]),
			Delete:     true,
		})
	case ActionListingCreated, ActionListingModified:
		s.enqueueListing(rayID, action, recordID)
	default:
		s.logger.Info("Ignoring unrecognized webhook action",
			zap.String("ray_id", rayID),
			zap.String("action", action),
		)
		return false
	}
	return true
}

// Status reports queue depth and per-table unsynced counts.
func (s *Service) Status(ctx context.Context) (*StatusReport, error) {
	counts, err := s.repo.UnsyncedCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &StatusReport{
		QueueDepth: s.worker.Len(),
		Idle:       s.worker.Idle(),
		Unsynced:   counts,
	}, nil
}

// Resync enqueues a refresh for every reservation and block whose mirror is
// behind, and returns how many jobs were queued.
func (s *Service) Resync(ctx context.Context) (int, error) {
	reservationIDs, err := s.repo.UnsyncedReservationIDs(ctx)
	if err != nil {
		return 0, err
	}
	blockIDs, err := s.repo.UnsyncedBlockIDs(ctx)
	if err != nil {
		return 0, err
	}

	for _, id := range reservationIDs {
		s.enqueueReservation("resync", "resync.reservation", ReservationRef{ExternalID: id})
	}
	for _, id := range blockIDs {
		// The block marker routes these straight to the block path.
		s.enqueueReservation("resync", "resync.block", ReservationRef{ExternalID: id, Type: "blocked"})
	}
	return len(reservationIDs) + len(blockIDs), nil
}

// Backfill searches the booking platform for reservations matching the
// query and queues a sync for each, regardless of local state. Used to seed
// a fresh mirror or to recover a window of missed webhooks.
func (s *Service) Backfill(ctx context.Context, q source.SearchQuery) (int, error) {
	items, err := s.source.SearchReservations(ctx, q)
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		s.enqueueReservation("backfill", "backfill.reservation", ReservationRef{
			ExternalID: item.ID,
			Type:       item.Type,
		})
	}
	return len(items), nil
}

// ReconcileOne runs a single reservation synchronously, bypassing the
// queue. Used by the one-off reconcile command.
func (s *Service) ReconcileOne(ctx context.Context, externalID string) error {
	return s.orchestrator.SyncReservation(ctx, ReservationRef{ExternalID: externalID})
}

func (s *Service) enqueueReservation(rayID, action string, ref ReservationRef) {
	s.worker.Enqueue(action+" "+ref.ExternalID, func(ctx context.Context) {
		if err := s.orchestrator.SyncReservation(ctx, ref); err != nil {
			// The job boundary is where sync failures stop: the fault
			// ledger has them, the queue moves on.
			s.logger.Error("Reservation sync failed",
				zap.String("ray_id", rayID),
				zap.String("action", action),
				zap.String("reservation", ref.ExternalID),
				zap.Error(err),
			)
		}
	})
}

func (s *Service) enqueueListing(rayID, action, externalID string) {
	s.worker.Enqueue(action+" "+externalID, func(ctx context.Context) {
		if err := s.orchestrator.SyncListing(ctx, externalID); err != nil {
			s.logger.Error("Listing sync failed",
				zap.String("ray_id", rayID),
				zap.String("action", action),
				zap.String("listing", externalID),
				zap.Error(err),
			)
		}
	})
}

// archivePayload stores the raw delivery for replay and audit. Best effort:
// a storage outage must never reject a webhook.
func (s *Service) archivePayload(rayID string, raw []byte) {
	if s.archiveClient == nil || len(raw) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := archive.ObjectName(s.now(), rayID)
	if err := s.archiveClient.Put(ctx, s.archiveBucket, name, raw); err != nil {
		s.logger.Warn("Failed to archive webhook payload",
			zap.String("ray_id", rayID),
			zap.String("object", name),
			zap.Error(err),
		)
	}
}

// eventRecordID extracts the record id from a webhook payload. Deliveries
// have used both "_id" and "id" over time.
func eventRecordID(payload map[string]any) string {
	if id := utils.ToString(payload["_id"]); id != "" {
		return id
	}
	return utils.ToString(payload["id"])
}
