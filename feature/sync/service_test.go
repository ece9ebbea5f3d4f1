package sync_test

import (
	"context"
	"errors"
	"testing"

	archivemocks "booking-bridge/core/archive/mocks"
	"booking-bridge/core/queue"
	sinkmocks "booking-bridge/core/sink/mocks"
	"booking-bridge/core/source"
	sourcemocks "booking-bridge/core/source/mocks"
	sync "booking-bridge/feature/sync"
	syncmocks "booking-bridge/feature/sync/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type serviceFixture struct {
	service *sync.Service
	worker  *queue.Worker
	source  *sourcemocks.Client
	sink    *sinkmocks.Client
	repo    *syncmocks.Repository
	archive *archivemocks.Client
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		source:  new(sourcemocks.Client),
		sink:    new(sinkmocks.Client),
		repo:    new(syncmocks.Repository),
		archive: new(archivemocks.Client),
	}

	logger := zap.NewNop()
	registry, err := sync.NewRegistry()
	require.NoError(t, err)

	f.worker = queue.NewWorker(logger)
	reconciler := sync.NewReconciler(f.sink, f.repo, registry, logger)
	faults := sync.NewFaultLedger(f.repo, reconciler, logger)
	orchestrator := sync.NewOrchestrator(f.source, f.repo, reconciler, faults, registry, logger)
	f.service = sync.NewService(f.worker, orchestrator, f.repo, f.source, f.archive, "webhook-archive", logger)
	return f
}

func TestAcceptArchivesRawPayload(t *testing.T) {
	f := newServiceFixture(t)

	raw := []byte(`{"action":"reservation.created","payload":{"_id":"r1"}}`)
	f.archive.On("Put", mock.Anything, "webhook-archive", mock.MatchedBy(func(name string) bool {
		return len(name) > 0
	}), raw).Return(nil)

	f.source.On("GetReservation", mock.Anything, "r1").Return(nil, source.ErrNotFound)
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("MarkUnsynced", mock.Anything, mock.Anything).Return(nil)
	f.sink.On("List", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	accepted := f.service.Accept("ray-1", "reservation.created", map[string]any{"_id": "r1"}, raw)

	assert.True(t, accepted)
	f.worker.Wait()
	f.archive.AssertExpectations(t)
}

// A storage outage must never reject a webhook.
func TestAcceptSurvivesArchiveFailure(t *testing.T) {
	f := newServiceFixture(t)

	f.archive.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("bucket gone"))
	f.source.On("GetReservation", mock.Anything, "r1").Return(nil, source.ErrNotFound)
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("MarkUnsynced", mock.Anything, mock.Anything).Return(nil)
	f.sink.On("List", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	accepted := f.service.Accept("ray-1", "reservation.created", map[string]any{"_id": "r1"},
		[]byte(`{}`))

	assert.True(t, accepted)
	f.worker.Wait()
}

func TestAcceptRejectsPayloadWithoutRecordID(t *testing.T) {
	f := newServiceFixture(t)

	f.archive.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	accepted := f.service.Accept("ray-1", "reservation.created", map[string]any{"status": "confirmed"},
		[]byte(`{}`))

	assert.False(t, accepted)
	f.worker.Wait()
	f.source.AssertNotCalled(t, "GetReservation", mock.Anything, mock.Anything)
}

func TestBackfillQueuesEverySearchResult(t *testing.T) {
	f := newServiceFixture(t)

	f.source.On("SearchReservations", mock.Anything, source.SearchQuery{From: "2026-09-01", To: "2026-09-30"}).
		Return([]source.Reservation{
			{ID: "r1", Type: "booking"},
			{ID: "blk1", Type: "blocked"},
		}, nil)

	// Both jobs fail fast at the detail fetch; backfill only queues.
	f.source.On("GetReservation", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	f.repo.On("BlockByExternalID", mock.Anything, "blk1").Return(nil, nil).Maybe()
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("MarkUnsynced", mock.Anything, mock.Anything).Return(nil)
	f.sink.On("List", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	queued, err := f.service.Backfill(context.Background(), source.SearchQuery{From: "2026-09-01", To: "2026-09-30"})

	require.NoError(t, err)
	assert.Equal(t, 2, queued)
	f.worker.Wait()
	f.source.AssertCalled(t, "GetReservation", mock.Anything, "r1")
	f.source.AssertCalled(t, "GetReservation", mock.Anything, "blk1")
}

func TestBackfillPropagatesSearchFailure(t *testing.T) {
	f := newServiceFixture(t)

	f.source.On("SearchReservations", mock.Anything, mock.Anything).
		Return(nil, errors.New("search 503"))

	queued, err := f.service.Backfill(context.Background(), source.SearchQuery{From: "a", To: "b"})

	require.Error(t, err)
	assert.Zero(t, queued)
}
