package sync

import (
	"context"
	"fmt"

	"booking-bridge/core/sink"
	"booking-bridge/core/utils"
	"booking-bridge/feature/sync/models"

	"go.uber.org/zap"
)

// SinkError is a reconciliation failure against the ledger. It carries the
// ledger table and record identity so the fault ledger can file it.
type SinkError struct {
	Table    string
	RecordID string
	Err      error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink table %s, record %s: %v", e.Table, e.RecordID, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// Reconciler mirrors one entity at a time into the ledger using the
// lookup-else-create-else-update protocol. Redelivery of the same external
// id always resolves to the same sink id instead of creating duplicates,
// which is what makes webhook processing idempotent end to end.
type Reconciler struct {
	sink     sink.Client
	repo     Repository
	registry *Registry
	logger   *zap.Logger
}

// NewReconciler creates a reconciler.
func NewReconciler(client sink.Client, repo Repository, registry *Registry, logger *zap.Logger) *Reconciler {
	return &Reconciler{sink: client, repo: repo, registry: registry, logger: logger}
}

// Reconcile resolves the record's sink identity and writes its current
// field set to the ledger:
//
//  1. A cached sink id is used directly.
//  2. Otherwise the ledger is queried by the entity kind's natural key.
//  3. A hit captures the existing sink id and issues an update.
//  4. A miss issues a create; the ledger echoes the minted id column.
//  5. The resolved sink id is persisted locally with synced=true.
//
// Any ledger failure flips the local synced flag off and returns a
// *SinkError for the fault ledger.
func (r *Reconciler) Reconcile(ctx context.Context, rec models.Record) (int64, error) {
	spec := r.registry.Spec(rec.Kind())

	var sinkID *int64
	if cached := rec.SinkRef(); cached != nil {
		sinkID = cached
	} else {
		items, err := r.sink.List(ctx, spec.Table, spec.SinkFilter(rec.NaturalKey()))
		if err != nil {
			return 0, r.fail(ctx, rec, spec, fmt.Errorf("lookup: %w", err))
		}
		if len(items) > 0 {
			id, ok := utils.ToInt64(items[0][spec.IDColumn])
			if !ok {
				return 0, r.fail(ctx, rec, spec,
					fmt.Errorf("lookup response for %s is missing %s", spec.Table, spec.IDColumn))
			}
			sinkID = &id
			r.logger.Debug("Resolved existing ledger record",
				zap.String("table", spec.Table),
				zap.String("record", rec.ExternalKey()),
				zap.Int64("sink_id", id),
			)
		}
	}

	fields := spec.SinkFields(rec.Fields())

	if sinkID != nil {
		fields[spec.IDColumn] = *sinkID
		if err := r.sink.Update(ctx, spec.Table, fields); err != nil {
			return 0, r.fail(ctx, rec, spec, fmt.Errorf("update: %w", err))
		}
	} else {
		created, err := r.sink.Create(ctx, spec.Table, fields)
		if err != nil {
			return 0, r.fail(ctx, rec, spec, fmt.Errorf("create: %w", err))
		}
		id, ok := utils.ToInt64(created[spec.IDColumn])
		if !ok {
			return 0, r.fail(ctx, rec, spec,
				fmt.Errorf("create response for %s did not echo %s", spec.Table, spec.IDColumn))
		}
		sinkID = &id
	}

	if err := r.repo.MarkSynced(ctx, rec, *sinkID); err != nil {
		return 0, err
	}
	return *sinkID, nil
}

// EnsureDirectChannel returns the synthesized channel for direct bookings,
// creating and reconciling it on first use. The ledger's reservation schema
// requires a channel reference, so unattributed bookings never carry null.
func (r *Reconciler) EnsureDirectChannel(ctx context.Context) (*models.Channel, error) {
	ch, err := r.repo.ChannelByExternalID(ctx, models.DirectChannelExternalID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		ch = &models.Channel{
			ExternalID: models.DirectChannelExternalID,
			Name:       "Reserva Direta",
		}
		if err := r.repo.Save(ctx, ch); err != nil {
			return nil, err
		}
	}
	if ch.SinkID == nil || !ch.Synced {
		if _, err := r.Reconcile(ctx, ch); err != nil {
			return nil, err
		}
	}
	return ch, nil
}

// fail flips the local synced flag off and wraps the cause in a SinkError.
func (r *Reconciler) fail(ctx context.Context, rec models.Record, spec TableSpec, cause error) error {
	if err := r.repo.MarkUnsynced(ctx, rec); err != nil {
		r.logger.Error("Failed to flag record as unsynced",
			zap.String("table", spec.Table),
			zap.String("record", rec.ExternalKey()),
			zap.Error(err),
		)
	}
	return &SinkError{Table: spec.Table, RecordID: rec.ExternalKey(), Err: cause}
}
