package mocks

import (
	"context"

	sync "booking-bridge/feature/sync"
	"booking-bridge/feature/sync/models"

	"github.com/stretchr/testify/mock"
)

// Repository is a mock of the sync repository port.
type Repository struct {
	mock.Mock

	hooks []sync.PostWriteHook
}

func (m *Repository) AddPostWriteHook(h sync.PostWriteHook) {
	m.hooks = append(m.hooks, h)
}

func (m *Repository) Save(ctx context.Context, rec models.Record) error {
	args := m.Called(ctx, rec)
	if args.Error(0) == nil {
		for _, h := range m.hooks {
			_ = h.AfterWrite(ctx, rec)
		}
	}
	return args.Error(0)
}

func (m *Repository) MarkSynced(ctx context.Context, rec models.Record, sinkID int64) error {
	args := m.Called(ctx, rec, sinkID)
	if args.Error(0) == nil {
		rec.SetSinkRef(sinkID)
		rec.SetSynced(true)
	}
	return args.Error(0)
}

func (m *Repository) MarkUnsynced(ctx context.Context, rec models.Record) error {
	args := m.Called(ctx, rec)
	if args.Error(0) == nil {
		rec.SetSynced(false)
	}
	return args.Error(0)
}

func (m *Repository) CondominiumByExternalID(ctx context.Context, externalID string) (*models.Condominium, error) {
	args := m.Called(ctx, externalID)
	rec, _ := args.Get(0).(*models.Condominium)
	return rec, args.Error(1)
}

func (m *Repository) OwnerByExternalID(ctx context.Context, externalID string) (*models.Owner, error) {
	args := m.Called(ctx, externalID)
	rec, _ := args.Get(0).(*models.Owner)
	return rec, args.Error(1)
}

func (m *Repository) PropertyByExternalID(ctx context.Context, externalID string) (*models.Property, error) {
	args := m.Called(ctx, externalID)
	rec, _ := args.Get(0).(*models.Property)
	return rec, args.Error(1)
}

func (m *Repository) AgentByExternalID(ctx context.Context, externalID string) (*models.Agent, error) {
	args := m.Called(ctx, externalID)
	rec, _ := args.Get(0).(*models.Agent)
	return rec, args.Error(1)
}

func (m *Repository) ChannelByExternalID(ctx context.Context, externalID string) (*models.Channel, error) {
	args := m.Called(ctx, externalID)
	rec, _ := args.Get(0).(*models.Channel)
	return rec, args.Error(1)
}

func (m *Repository) ReservationByExternalID(ctx context.Context, externalID string) (*models.Reservation, error) {
	args := m.Called(ctx, externalID)
	rec, _ := args.Get(0).(*models.Reservation)
	return rec, args.Error(1)
}

func (m *Repository) BlockByExternalID(ctx context.Context, externalID string) (*models.Block, error) {
	args := m.Called(ctx, externalID)
	rec, _ := args.Get(0).(*models.Block)
	return rec, args.Error(1)
}

func (m *Repository) GuestByExternalID(ctx context.Context, reservationID uint, externalID string) (*models.Guest, error) {
	args := m.Called(ctx, reservationID, externalID)
	rec, _ := args.Get(0).(*models.Guest)
	return rec, args.Error(1)
}

func (m *Repository) GuestByNamePhone(ctx context.Context, reservationID uint, name, phone string) (*models.Guest, error) {
	args := m.Called(ctx, reservationID, name, phone)
	rec, _ := args.Get(0).(*models.Guest)
	return rec, args.Error(1)
}

func (m *Repository) FeeByReservationAndSKU(ctx context.Context, reservationID uint, sku string) (*models.Fee, error) {
	args := m.Called(ctx, reservationID, sku)
	rec, _ := args.Get(0).(*models.Fee)
	return rec, args.Error(1)
}

func (m *Repository) UnsyncedReservationIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *Repository) UnsyncedBlockIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *Repository) UnsyncedCounts(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}
