package sync

import (
	"context"
	"errors"
	"fmt"

	"booking-bridge/feature/sync/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostWriteHook observes successful local writes. Hooks run after the
// write, in registration order; a hook error is logged and never fails the
// write. Hooks are side channels, not participants.
type PostWriteHook interface {
	AfterWrite(ctx context.Context, rec models.Record) error
}

// PostWriteHookFunc adapts a function to the PostWriteHook interface.
type PostWriteHookFunc func(ctx context.Context, rec models.Record) error

// AfterWrite calls f.
func (f PostWriteHookFunc) AfterWrite(ctx context.Context, rec models.Record) error {
	return f(ctx, rec)
}

// Repository is the local persistence port. All entity tables go through
// it; the sync engine never touches gorm directly.
type Repository interface {
	AddPostWriteHook(h PostWriteHook)
	Save(ctx context.Context, rec models.Record) error
	MarkSynced(ctx context.Context, rec models.Record, sinkID int64) error
	MarkUnsynced(ctx context.Context, rec models.Record) error

	CondominiumByExternalID(ctx context.Context, externalID string) (*models.Condominium, error)
	OwnerByExternalID(ctx context.Context, externalID string) (*models.Owner, error)
	PropertyByExternalID(ctx context.Context, externalID string) (*models.Property, error)
	AgentByExternalID(ctx context.Context, externalID string) (*models.Agent, error)
	ChannelByExternalID(ctx context.Context, externalID string) (*models.Channel, error)
	ReservationByExternalID(ctx context.Context, externalID string) (*models.Reservation, error)
	BlockByExternalID(ctx context.Context, externalID string) (*models.Block, error)
	GuestByExternalID(ctx context.Context, reservationID uint, externalID string) (*models.Guest, error)
	GuestByNamePhone(ctx context.Context, reservationID uint, name, phone string) (*models.Guest, error)
	FeeByReservationAndSKU(ctx context.Context, reservationID uint, sku string) (*models.Fee, error)

	UnsyncedReservationIDs(ctx context.Context) ([]string, error)
	UnsyncedBlockIDs(ctx context.Context) ([]string, error)
	UnsyncedCounts(ctx context.Context) (map[string]int64, error)
}

type gormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	hooks  []PostWriteHook
}

// NewRepository creates a repository on top of the given connection.
func NewRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &gormRepository{db: db, logger: logger}
}

// AddPostWriteHook registers a hook. Hooks run in the order they were added.
func (r *gormRepository) AddPostWriteHook(h PostWriteHook) {
	r.hooks = append(r.hooks, h)
}

// Save persists a record (insert when the local id is zero, update
// otherwise) and then runs the post-write hooks.
func (r *gormRepository) Save(ctx context.Context, rec models.Record) error {
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return fmt.Errorf("repo: save %s %s: %w", rec.Kind(), rec.ExternalKey(), err)
	}

	for _, h := range r.hooks {
		if err := h.AfterWrite(ctx, rec); err != nil {
			r.logger.Warn("Post-write hook failed",
				zap.String("kind", string(rec.Kind())),
				zap.String("record", rec.ExternalKey()),
				zap.Error(err),
			)
		}
	}
	return nil
}

// MarkSynced stores the resolved sink id and flips the synced flag on.
func (r *gormRepository) MarkSynced(ctx context.Context, rec models.Record, sinkID int64) error {
	rec.SetSinkRef(sinkID)
	rec.SetSynced(true)
	err := r.db.WithContext(ctx).Model(rec).
		Updates(map[string]any{"sink_id": sinkID, "synced": true}).Error
	if err != nil {
		return fmt.Errorf("repo: mark synced %s %s: %w", rec.Kind(), rec.ExternalKey(), err)
	}
	return nil
}

// MarkUnsynced flips the synced flag off after a failed ledger write.
func (r *gormRepository) MarkUnsynced(ctx context.Context, rec models.Record) error {
	rec.SetSynced(false)
	err := r.db.WithContext(ctx).Model(rec).Update("synced", false).Error
	if err != nil {
		return fmt.Errorf("repo: mark unsynced %s %s: %w", rec.Kind(), rec.ExternalKey(), err)
	}
	return nil
}

// findOne loads a single record by condition, mapping gorm's not-found
// error to a nil result.
func findOne[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var out T
	err := db.WithContext(ctx).Where(query, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repo: query %T: %w", out, err)
	}
	return &out, nil
}

func (r *gormRepository) CondominiumByExternalID(ctx context.Context, externalID string) (*models.Condominium, error) {
	return findOne[models.Condominium](ctx, r.db, "external_id = ?", externalID)
}

func (r *gormRepository) OwnerByExternalID(ctx context.Context, externalID string) (*models.Owner, error) {
	return findOne[models.Owner](ctx, r.db, "external_id = ?", externalID)
}

func (r *gormRepository) PropertyByExternalID(ctx context.Context, externalID string) (*models.Property, error) {
	return findOne[models.Property](ctx, r.db, "external_id = ?", externalID)
}

func (r *gormRepository) AgentByExternalID(ctx context.Context, externalID string) (*models.Agent, error) {
	return findOne[models.Agent](ctx, r.db, "external_id = ?", externalID)
}

func (r *gormRepository) ChannelByExternalID(ctx context.Context, externalID string) (*models.Channel, error) {
	return findOne[models.Channel](ctx, r.db, "external_id = ?", externalID)
}

func (r *gormRepository) ReservationByExternalID(ctx context.Context, externalID string) (*models.Reservation, error) {
	return findOne[models.Reservation](ctx, r.db, "external_id = ?", externalID)
}

func (r *gormRepository) BlockByExternalID(ctx context.Context, externalID string) (*models.Block, error) {
	return findOne[models.Block](ctx, r.db, "external_id = ?", externalID)
}

// GuestByExternalID resolves the guest of a reservation by platform guest id.
func (r *gormRepository) GuestByExternalID(ctx context.Context, reservationID uint, externalID string) (*models.Guest, error) {
	return findOne[models.Guest](ctx, r.db, "reservation_id = ? AND external_id = ?", reservationID, externalID)
}

// GuestByNamePhone resolves the guest of a reservation by name and phone,
// the fallback identity for guests the platform reports without an id.
func (r *gormRepository) GuestByNamePhone(ctx context.Context, reservationID uint, name, phone string) (*models.Guest, error) {
	return findOne[models.Guest](ctx, r.db, "reservation_id = ? AND name = ? AND phone = ?", reservationID, name, phone)
}

func (r *gormRepository) FeeByReservationAndSKU(ctx context.Context, reservationID uint, sku string) (*models.Fee, error) {
	return findOne[models.Fee](ctx, r.db, "reservation_id = ? AND sku = ?", reservationID, sku)
}

// UnsyncedReservationIDs returns the external ids of reservations whose
// last local state has not been mirrored. Used by the resync command.
func (r *gormRepository) UnsyncedReservationIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("synced = ?", false).Pluck("external_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("repo: unsynced reservations: %w", err)
	}
	return ids, nil
}

// UnsyncedBlockIDs returns the external ids of unsynced blocks.
func (r *gormRepository) UnsyncedBlockIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("synced = ?", false).Pluck("external_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("repo: unsynced blocks: %w", err)
	}
	return ids, nil
}

// UnsyncedCounts reports how many rows per table still await mirroring.
func (r *gormRepository) UnsyncedCounts(ctx context.Context) (map[string]int64, error) {
	tables := map[string]any{
		"condominiums": &models.Condominium{},
		"owners":       &models.Owner{},
		"properties":   &models.Property{},
		"agents":       &models.Agent{},
		"channels":     &models.Channel{},
		"reservations": &models.Reservation{},
		"blocks":       &models.Block{},
		"guests":       &models.Guest{},
		"fees":         &models.Fee{},
	}

	counts := make(map[string]int64, len(tables))
	for name, model := range tables {
		var n int64
		err := r.db.WithContext(ctx).Model(model).Where("synced = ?", false).Count(&n).Error
		if err != nil {
			return nil, fmt.Errorf("repo: count unsynced %s: %w", name, err)
		}
		counts[name] = n
	}
	return counts, nil
}
