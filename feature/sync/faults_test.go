package sync_test

import (
	"context"
	"errors"
	"testing"

	"booking-bridge/core/sink"
	sinkmocks "booking-bridge/core/sink/mocks"
	sync "booking-bridge/feature/sync"
	syncmocks "booking-bridge/feature/sync/mocks"
	"booking-bridge/feature/sync/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLedgerFixture(t *testing.T) (*sinkmocks.Client, *syncmocks.Repository, *sync.FaultLedger) {
	t.Helper()

	sinkClient := new(sinkmocks.Client)
	repo := new(syncmocks.Repository)

	registry, err := sync.NewRegistry()
	require.NoError(t, err)

	reconciler := sync.NewReconciler(sinkClient, repo, registry, zap.NewNop())
	return sinkClient, repo, sync.NewFaultLedger(repo, reconciler, zap.NewNop())
}

func TestRecordSourceFaultPersistsAndMirrors(t *testing.T) {
	sinkClient, repo, ledger := newLedgerFixture(t)

	var captured *models.SourceFault
	repo.On("Save", mock.Anything, mock.MatchedBy(func(r models.Record) bool {
		f, ok := r.(*models.SourceFault)
		if ok {
			captured = f
		}
		return ok
	})).Return(nil)
	sinkClient.On("List", mock.Anything, "erros_origem", mock.Anything).Return([]sink.Record{}, nil)
	sinkClient.On("Create", mock.Anything, "erros_origem", mock.MatchedBy(func(fields sink.Record) bool {
		return fields["tabela"] == "reservas" && fields["registro"] == "r1"
	})).Return(sink.Record{"id_erro_orig": 11}, nil)
	repo.On("MarkSynced", mock.Anything, mock.Anything, int64(11)).Return(nil)

	ledger.RecordSourceFault(context.Background(), "reservas", "r1", "detail fetch failed")

	require.NotNil(t, captured)
	assert.Equal(t, "reservas", captured.Table)
	assert.Equal(t, "r1", captured.RecordID)
	assert.Equal(t, "detail fetch failed", captured.Message)
	assert.NotEmpty(t, captured.CapturedDate)
	assert.NotEmpty(t, captured.CapturedTime)
	repo.AssertCalled(t, "MarkSynced", mock.Anything, mock.Anything, int64(11))
}

func TestRecordSinkFaultPersistsAndMirrors(t *testing.T) {
	sinkClient, repo, ledger := newLedgerFixture(t)

	repo.On("Save", mock.Anything, mock.AnythingOfType("*models.SinkFault")).Return(nil)
	sinkClient.On("List", mock.Anything, "erros_destino", mock.Anything).Return([]sink.Record{}, nil)
	sinkClient.On("Create", mock.Anything, "erros_destino", mock.MatchedBy(func(fields sink.Record) bool {
		return fields["tabela"] == "imoveis" && fields["mensagem"] == "create: 500"
	})).Return(sink.Record{"id_erro_dest": 12}, nil)
	repo.On("MarkSynced", mock.Anything, mock.Anything, int64(12)).Return(nil)

	ledger.RecordSinkFault(context.Background(), "imoveis", "l1", "create: 500")

	repo.AssertExpectations(t)
	sinkClient.AssertExpectations(t)
}

// A fault row that cannot itself be mirrored must not file another fault:
// the recursion stops at depth one.
func TestFaultMirrorFailureDoesNotRecurse(t *testing.T) {
	sinkClient, repo, ledger := newLedgerFixture(t)

	repo.On("Save", mock.Anything, mock.AnythingOfType("*models.SinkFault")).Return(nil)
	sinkClient.On("List", mock.Anything, "erros_destino", mock.Anything).
		Return(nil, errors.New("ledger down"))
	repo.On("MarkUnsynced", mock.Anything, mock.Anything).Return(nil)

	ledger.RecordSinkFault(context.Background(), "reservas", "r1", "update: 500")

	repo.AssertNumberOfCalls(t, "Save", 1)
	sinkClient.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestFaultPersistFailureSkipsMirror(t *testing.T) {
	sinkClient, repo, ledger := newLedgerFixture(t)

	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	ledger.RecordSourceFault(context.Background(), "hospedes", "g1", "timeout")

	sinkClient.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	sinkClient.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}
