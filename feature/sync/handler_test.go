package sync_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"booking-bridge/core/middleware/rayid"
	"booking-bridge/core/queue"
	sinkmocks "booking-bridge/core/sink/mocks"
	"booking-bridge/core/source"
	sourcemocks "booking-bridge/core/source/mocks"
	sync "booking-bridge/feature/sync"
	syncmocks "booking-bridge/feature/sync/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type handlerFixture struct {
	app    *fiber.App
	source *sourcemocks.Client
	sink   *sinkmocks.Client
	repo   *syncmocks.Repository
	worker *queue.Worker
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	f := &handlerFixture{
		source: new(sourcemocks.Client),
		sink:   new(sinkmocks.Client),
		repo:   new(syncmocks.Repository),
	}

	logger := zap.NewNop()
	registry, err := sync.NewRegistry()
	require.NoError(t, err)

	f.worker = queue.NewWorker(logger)
	reconciler := sync.NewReconciler(f.sink, f.repo, registry, logger)
	faults := sync.NewFaultLedger(f.repo, reconciler, logger)
	orchestrator := sync.NewOrchestrator(f.source, f.repo, reconciler, faults, registry, logger)
	service := sync.NewService(f.worker, orchestrator, f.repo, f.source, nil, "", logger)

	f.app = fiber.New()
	f.app.Use(rayid.New())
	sync.NewHandler(service).RegisterRoutes(f.app)
	return f
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	f := newHandlerFixture(t)

	status, body := postJSON(t, f.app, "/webhook", "{not json")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "malformed payload", body["error"])
}

func TestWebhookRejectsEnvelopeWithoutActionOrPayload(t *testing.T) {
	f := newHandlerFixture(t)

	for _, body := range []string{`{}`, `{"payload":{"_id":"r1"}}`, `{"action":"reservation.created"}`} {
		status, decoded := postJSON(t, f.app, "/webhook", body)
		assert.Equal(t, fiber.StatusBadRequest, status, body)
		assert.Equal(t, "missing action or payload", decoded["error"], body)
	}

	f.worker.Wait()
	f.source.AssertNotCalled(t, "GetReservation", mock.Anything, mock.Anything)
}

func TestWebhookAcknowledgesUnknownAction(t *testing.T) {
	f := newHandlerFixture(t)

	status, body := postJSON(t, f.app, "/webhook",
		`{"action":"listing.photos_updated","payload":{"_id":"l1"}}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ignored", body["message"])

	f.worker.Wait()
	f.source.AssertNotCalled(t, "GetListing", mock.Anything, mock.Anything)
}

func TestWebhookQueuesRecognizedAction(t *testing.T) {
	f := newHandlerFixture(t)

	// The queued job fails against the source; the endpoint must have
	// acknowledged long before that happens.
	f.source.On("GetReservation", mock.Anything, "r1").Return(nil, errors.New("platform down"))
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("MarkUnsynced", mock.Anything, mock.Anything).Return(nil)
	f.sink.On("List", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("ledger down"))

	status, body := postJSON(t, f.app, "/webhook",
		`{"action":"reservation.created","payload":{"_id":"r1","type":"booking"}}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "queued", body["message"])

	f.worker.Wait()
	f.source.AssertCalled(t, "GetReservation", mock.Anything, "r1")
}

func TestWebhookAcceptsLegacyIDField(t *testing.T) {
	f := newHandlerFixture(t)

	f.source.On("GetReservation", mock.Anything, "r7").Return(nil, source.ErrNotFound).Maybe()
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.sink.On("List", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("down")).Maybe()
	f.repo.On("MarkUnsynced", mock.Anything, mock.Anything).Return(nil).Maybe()

	status, body := postJSON(t, f.app, "/webhook",
		`{"action":"reservation.modified","payload":{"id":"r7"}}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "queued", body["message"])
	f.worker.Wait()
}

func TestStatusReportsQueueAndUnsyncedCounts(t *testing.T) {
	f := newHandlerFixture(t)

	f.repo.On("UnsyncedCounts", mock.Anything).
		Return(map[string]int64{"reservations": 2, "guests": 1}, nil)

	req := httptest.NewRequest("GET", "/sync/status", nil)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report sync.StatusReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.True(t, report.Idle)
	assert.Equal(t, 0, report.QueueDepth)
	assert.Equal(t, int64(2), report.Unsynced["reservations"])
}

func TestResyncQueuesUnsyncedRecords(t *testing.T) {
	f := newHandlerFixture(t)

	f.repo.On("UnsyncedReservationIDs", mock.Anything).Return([]string{"r1"}, nil)
	f.repo.On("UnsyncedBlockIDs", mock.Anything).Return([]string{"blk1"}, nil)

	f.source.On("GetReservation", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("MarkUnsynced", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("BlockByExternalID", mock.Anything, "blk1").Return(nil, nil).Maybe()
	f.sink.On("List", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	status, body := postJSON(t, f.app, "/sync/resync", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(2), body["queued"])
	f.worker.Wait()
}
