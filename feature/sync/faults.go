package sync

import (
	"context"
	"time"

	"booking-bridge/feature/sync/models"

	"go.uber.org/zap"
)

// FaultLedger captures reconciliation failures as first-class records and
// mirrors them to the ledger for human triage.
//
// Mirroring is a two-stage pipeline: persist locally, then best-effort
// reconcile the fault row itself. A failure of that second stage only logs
// and flips the fault row's own synced flag; it never files another fault,
// capping the recursion at depth one by construction.
type FaultLedger struct {
	repo       Repository
	reconciler *Reconciler
	logger     *zap.Logger
	now        func() time.Time
}

// NewFaultLedger creates a fault ledger.
func NewFaultLedger(repo Repository, reconciler *Reconciler, logger *zap.Logger) *FaultLedger {
	return &FaultLedger{
		repo:       repo,
		reconciler: reconciler,
		logger:     logger,
		now:        time.Now,
	}
}

// RecordSourceFault files a booking platform failure (failed or
// insufficient detail fetch) for the given table and record.
func (l *FaultLedger) RecordSourceFault(ctx context.Context, table, recordID, message string) {
	date, clock := models.SplitTimestamp(l.now())
	fault := &models.SourceFault{
		Table:        table,
		RecordID:     recordID,
		Message:      message,
		Attempts:     0,
		CapturedDate: date,
		CapturedTime: clock,
		Synced:       false,
	}
	l.file(ctx, fault)
}

// RecordSinkFault files a ledger write failure for the given table and record.
func (l *FaultLedger) RecordSinkFault(ctx context.Context, table, recordID, message string) {
	date, clock := models.SplitTimestamp(l.now())
	fault := &models.SinkFault{
		Table:        table,
		RecordID:     recordID,
		Message:      message,
		Attempts:     0,
		CapturedDate: date,
		CapturedTime: clock,
		Synced:       false,
	}
	l.file(ctx, fault)
}

func (l *FaultLedger) file(ctx context.Context, fault models.Record) {
	if err := l.repo.Save(ctx, fault); err != nil {
		l.logger.Error("Failed to persist fault record",
			zap.String("record", fault.ExternalKey()),
			zap.Error(err),
		)
		return
	}

	if _, err := l.reconciler.Reconcile(ctx, fault); err != nil {
		l.logger.Warn("Fault record could not be mirrored to the ledger",
			zap.String("record", fault.ExternalKey()),
			zap.Error(err),
		)
	}
}
