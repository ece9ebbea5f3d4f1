package sync

import (
	"context"
	"errors"
	"fmt"

	"booking-bridge/core/source"
	"booking-bridge/feature/sync/models"

	"go.uber.org/zap"
)

// blockTypeMarkers are the source-reported reservation types that route an
// event to the block path instead of the reservation path.
var blockTypeMarkers = map[string]struct{}{
	"blocked":     {},
	"maintenance": {},
	"unavailable": {},
}

func isBlockType(t string) bool {
	_, ok := blockTypeMarkers[t]
	return ok
}

// ReservationRef is the partial reference carried by a webhook event.
type ReservationRef struct {
	ExternalID string
	Type       string
	Cancel     bool
	Delete     bool
}

// Orchestrator sequences reconciliation in dependency order: condominium
// before property, owner before property, agent and channel before the
// reservation, and guest/fee line items only after the reservation write is
// durable. Within one run every remote call is awaited sequentially; the
// event queue guarantees only one run executes at a time.
type Orchestrator struct {
	source     source.Client
	repo       Repository
	reconciler *Reconciler
	faults     *FaultLedger
	registry   *Registry
	logger     *zap.Logger
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(src source.Client, repo Repository, reconciler *Reconciler, faults *FaultLedger, registry *Registry, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		source:     src,
		repo:       repo,
		reconciler: reconciler,
		faults:     faults,
		registry:   registry,
		logger:     logger,
	}
}

// SyncReservation executes one full dependency-ordered run for a
// reservation reference. Block-type markers divert to the block path before
// any fetch or reconcile work begins.
func (o *Orchestrator) SyncReservation(ctx context.Context, ref ReservationRef) error {
	if isBlockType(ref.Type) {
		return o.syncBlockRef(ctx, ref)
	}

	if ref.Cancel || ref.Delete {
		existing, err := o.repo.ReservationByExternalID(ctx, ref.ExternalID)
		if err != nil {
			return err
		}
		if existing != nil {
			// Known record: only status and synced change, then the
			// record re-enters reconciliation.
			existing.Status = transitionStatus(ref)
			existing.SetSynced(false)
			if err := o.repo.Save(ctx, existing); err != nil {
				return err
			}
			return o.reconcileOrLedger(ctx, existing)
		}
		if ref.Delete {
			// Nothing local to delete; not an error.
			o.logger.Info("Deletion for unknown reservation ignored",
				zap.String("reservation", ref.ExternalID))
			return nil
		}
		// Cancel of an unknown reservation: fetch full detail and run the
		// normal creation path with the status already cancelled.
	}

	detail, err := o.source.GetReservation(ctx, ref.ExternalID)
	if err != nil {
		o.faults.RecordSourceFault(ctx, o.registry.Spec(models.KindReservation).Table, ref.ExternalID, err.Error())
		return fmt.Errorf("fetch reservation %s: %w", ref.ExternalID, err)
	}

	force := ""
	if ref.Cancel {
		force = models.StatusCanceled
	}

	if isBlockType(detail.Type) {
		return o.syncBlockDetail(ctx, detail, force)
	}
	return o.syncReservationDetail(ctx, detail, force)
}

// SyncListing handles listing.created/listing.modified events: the property
// chain (condominium, owner, property) without any reservation work.
func (o *Orchestrator) SyncListing(ctx context.Context, externalID string) error {
	listing, err := o.source.GetListing(ctx, externalID)
	if err != nil {
		o.faults.RecordSourceFault(ctx, o.registry.Spec(models.KindProperty).Table, externalID, err.Error())
		return fmt.Errorf("fetch listing %s: %w", externalID, err)
	}
	_, err = o.syncListingDetail(ctx, listing)
	return err
}

func transitionStatus(ref ReservationRef) string {
	if ref.Delete {
		return models.StatusDeleted
	}
	return models.StatusCanceled
}

// syncReservationDetail reconciles everything a reservation depends on,
// then the reservation itself, then its guest and fee line items.
func (o *Orchestrator) syncReservationDetail(ctx context.Context, detail *source.Reservation, forceStatus string) error {
	prop, err := o.syncProperty(ctx, detail.ListingID)
	if err != nil {
		return err
	}

	var agent *models.Agent
	if detail.Agent != nil {
		if agent, err = o.syncAgent(ctx, detail.Agent); err != nil {
			return err
		}
	}

	channel, err := o.syncChannel(ctx, detail.Partner)
	if err != nil {
		return err
	}

	status := detail.Status
	if forceStatus != "" {
		status = forceStatus
	}

	candidate := &models.Reservation{
		ExternalID:  detail.ID,
		CheckIn:     detail.CheckIn,
		CheckOut:    detail.CheckOut,
		Status:      status,
		GuestCount:  detail.GuestCount,
		TotalAmount: detail.TotalPrice,
		Currency:    detail.Currency,
		Notes:       detail.Notes,
	}
	if prop != nil {
		candidate.PropertyID = &prop.ID
		candidate.PropertySinkID = prop.SinkID
	}
	if channel != nil {
		candidate.ChannelID = &channel.ID
		candidate.ChannelSinkID = channel.SinkID
	}
	if agent != nil {
		candidate.AgentID = &agent.ID
		candidate.AgentSinkID = agent.SinkID
	}

	existing, err := o.repo.ReservationByExternalID(ctx, detail.ID)
	if err != nil {
		return err
	}

	target := existing
	needsReconcile := existing == nil || NeedsWrite(existing, candidate)
	if existing != nil {
		if !FieldsEqual(existing.Fields(), candidate.Fields()) {
			existing.CheckIn = candidate.CheckIn
			existing.CheckOut = candidate.CheckOut
			existing.Status = candidate.Status
			existing.GuestCount = candidate.GuestCount
			existing.TotalAmount = candidate.TotalAmount
			existing.Currency = candidate.Currency
			existing.Notes = candidate.Notes
			existing.PropertyID = candidate.PropertyID
			existing.PropertySinkID = candidate.PropertySinkID
			existing.ChannelID = candidate.ChannelID
			existing.ChannelSinkID = candidate.ChannelSinkID
			existing.AgentID = candidate.AgentID
			existing.AgentSinkID = candidate.AgentSinkID
			existing.SetSynced(false)
			if err := o.repo.Save(ctx, existing); err != nil {
				return err
			}
		}
	} else {
		target = candidate
		if err := o.repo.Save(ctx, target); err != nil {
			return err
		}
	}

	if needsReconcile {
		if err := o.reconcileOrLedger(ctx, target); err != nil {
			return err
		}
	}

	// Guest and fee rows embed the reservation's sink id; they only run
	// once the reservation is durably reconciled.
	if target.SinkID == nil {
		return nil
	}
	if err := o.syncGuests(ctx, detail, target); err != nil {
		return err
	}
	return o.syncFees(ctx, detail, target)
}

// syncProperty resolves the property chain for a reservation. A listing
// missing in the source degrades to a nil property: the reservation is
// still mirrored, with null property references.
func (o *Orchestrator) syncProperty(ctx context.Context, listingID string) (*models.Property, error) {
	if listingID == "" {
		return nil, nil
	}
	listing, err := o.source.GetListing(ctx, listingID)
	if err != nil {
		o.degradeFetch(ctx, o.registry.Spec(models.KindProperty).Table, listingID, err)
		return nil, nil
	}
	return o.syncListingDetail(ctx, listing)
}

// syncListingDetail reconciles the condominium and owner first; the
// property write embeds both their sink ids.
func (o *Orchestrator) syncListingDetail(ctx context.Context, listing *source.Listing) (*models.Property, error) {
	var condo *models.Condominium
	if listing.CondominiumID != "" {
		c, err := o.syncCondominium(ctx, listing.CondominiumID)
		if err != nil {
			return nil, err
		}
		condo = c
	}

	var owner *models.Owner
	if listing.Owner != nil {
		ow, err := o.syncOwner(ctx, listing.Owner)
		if err != nil {
			return nil, err
		}
		owner = ow
	}

	candidate := &models.Property{
		ExternalID: listing.ID,
		Name:       listing.Name,
		Code:       listing.InternalCode,
		Address:    listing.Address,
		City:       listing.City,
		Status:     listing.Status,
	}
	if condo != nil {
		candidate.CondominiumID = &condo.ID
		candidate.CondominiumSinkID = condo.SinkID
	}
	if owner != nil {
		candidate.OwnerID = &owner.ID
		candidate.OwnerSinkID = owner.SinkID
	}

	existing, err := o.repo.PropertyByExternalID(ctx, listing.ID)
	if err != nil {
		return nil, err
	}

	target := existing
	needsReconcile := existing == nil || NeedsWrite(existing, candidate)
	if existing != nil {
		if !FieldsEqual(existing.Fields(), candidate.Fields()) {
			existing.Name = candidate.Name
			existing.Code = candidate.Code
			existing.Address = candidate.Address
			existing.City = candidate.City
			existing.Status = candidate.Status
			existing.CondominiumID = candidate.CondominiumID
			existing.CondominiumSinkID = candidate.CondominiumSinkID
			existing.OwnerID = candidate.OwnerID
			existing.OwnerSinkID = candidate.OwnerSinkID
			existing.SetSynced(false)
			if err := o.repo.Save(ctx, existing); err != nil {
				return nil, err
			}
		}
	} else {
		target = candidate
		if err := o.repo.Save(ctx, target); err != nil {
			return nil, err
		}
	}

	if needsReconcile {
		if err := o.reconcileOrLedger(ctx, target); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// syncCondominium fetches and reconciles a building. A fetch failure
// degrades to nil: the property proceeds without a condominium reference.
func (o *Orchestrator) syncCondominium(ctx context.Context, externalID string) (*models.Condominium, error) {
	detail, err := o.source.GetCondominium(ctx, externalID)
	if err != nil {
		o.degradeFetch(ctx, o.registry.Spec(models.KindCondominium).Table, externalID, err)
		return nil, nil
	}

	candidate := &models.Condominium{
		ExternalID: detail.ID,
		Name:       detail.Name,
		Address:    detail.Address,
	}

	existing, err := o.repo.CondominiumByExternalID(ctx, detail.ID)
	if err != nil {
		return nil, err
	}

	target := existing
	needsReconcile := existing == nil || NeedsWrite(existing, candidate)
	if existing != nil {
		if !FieldsEqual(existing.Fields(), candidate.Fields()) {
			existing.Name = candidate.Name
			existing.Address = candidate.Address
			existing.SetSynced(false)
			if err := o.repo.Save(ctx, existing); err != nil {
				return nil, err
			}
		}
	} else {
		target = candidate
		if err := o.repo.Save(ctx, target); err != nil {
			return nil, err
		}
	}

	if needsReconcile {
		if err := o.reconcileOrLedger(ctx, target); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// syncOwner reconciles the owner embedded in a listing detail.
func (o *Orchestrator) syncOwner(ctx context.Context, ref *source.OwnerRef) (*models.Owner, error) {
	candidate := &models.Owner{
		ExternalID: ref.ID,
		Name:       ref.Name,
		Email:      ref.Email,
		Phone:      ref.Phone,
	}

	existing, err := o.repo.OwnerByExternalID(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	target := existing
	needsReconcile := existing == nil || NeedsWrite(existing, candidate)
	if existing != nil {
		if !FieldsEqual(existing.Fields(), candidate.Fields()) {
			existing.Name = candidate.Name
			existing.Email = candidate.Email
			existing.Phone = candidate.Phone
			existing.SetSynced(false)
			if err := o.repo.Save(ctx, existing); err != nil {
				return nil, err
			}
		}
	} else {
		target = candidate
		if err := o.repo.Save(ctx, target); err != nil {
			return nil, err
		}
	}

	if needsReconcile {
		if err := o.reconcileOrLedger(ctx, target); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// syncAgent reconciles the agent embedded in a reservation detail.
func (o *Orchestrator) syncAgent(ctx context.Context, ref *source.AgentRef) (*models.Agent, error) {
	candidate := &models.Agent{
		ExternalID: ref.ID,
		Name:       ref.Name,
		Email:      ref.Email,
	}

	existing, err := o.repo.AgentByExternalID(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	target := existing
	needsReconcile := existing == nil || NeedsWrite(existing, candidate)
	if existing != nil {
		if !FieldsEqual(existing.Fields(), candidate.Fields()) {
			existing.Name = candidate.Name
			existing.Email = candidate.Email
			existing.SetSynced(false)
			if err := o.repo.Save(ctx, existing); err != nil {
				return nil, err
			}
		}
	} else {
		target = candidate
		if err := o.repo.Save(ctx, target); err != nil {
			return nil, err
		}
	}

	if needsReconcile {
		if err := o.reconcileOrLedger(ctx, target); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// syncChannel reconciles the sales channel of a reservation. A reservation
// without a partner gets the synthesized direct channel.
func (o *Orchestrator) syncChannel(ctx context.Context, ref *source.PartnerRef) (*models.Channel, error) {
	if ref == nil || ref.ID == "" {
		return o.reconciler.EnsureDirectChannel(ctx)
	}

	candidate := &models.Channel{
		ExternalID: ref.ID,
		Name:       ref.Name,
	}

	existing, err := o.repo.ChannelByExternalID(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	target := existing
	needsReconcile := existing == nil || NeedsWrite(existing, candidate)
	if existing != nil {
		if !FieldsEqual(existing.Fields(), candidate.Fields()) {
			existing.Name = candidate.Name
			existing.SetSynced(false)
			if err := o.repo.Save(ctx, existing); err != nil {
				return nil, err
			}
		}
	} else {
		target = candidate
		if err := o.repo.Save(ctx, target); err != nil {
			return nil, err
		}
	}

	if needsReconcile {
		if err := o.reconcileOrLedger(ctx, target); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// syncGuests reconciles every guest of a reconciled reservation. A guest
// whose detail cannot be fetched is skipped with a warning; the remaining
// guests still run.
func (o *Orchestrator) syncGuests(ctx context.Context, detail *source.Reservation, res *models.Reservation) error {
	guestTable := o.registry.Spec(models.KindGuest).Table

	for _, guestID := range detail.GuestIDs {
		g, err := o.source.GetGuest(ctx, guestID)
		if err != nil {
			o.degradeFetch(ctx, guestTable, guestID, err)
			continue
		}

		candidate := &models.Guest{
			ExternalID:        g.ID,
			Name:              g.Name,
			Email:             g.Email,
			Phone:             g.Phone,
			Document:          g.Document,
			ReservationID:     res.ID,
			ReservationSinkID: res.SinkID,
		}

		var existing *models.Guest
		if g.ID != "" {
			if existing, err = o.repo.GuestByExternalID(ctx, res.ID, g.ID); err != nil {
				return err
			}
		}
		if existing == nil {
			if existing, err = o.repo.GuestByNamePhone(ctx, res.ID, g.Name, g.Phone); err != nil {
				return err
			}
		}

		target := existing
		needsReconcile := existing == nil || NeedsWrite(existing, candidate)
		if existing != nil {
			if !FieldsEqual(existing.Fields(), candidate.Fields()) {
				existing.ExternalID = candidate.ExternalID
				existing.Name = candidate.Name
				existing.Email = candidate.Email
				existing.Phone = candidate.Phone
				existing.Document = candidate.Document
				existing.ReservationSinkID = candidate.ReservationSinkID
				existing.SetSynced(false)
				if err := o.repo.Save(ctx, existing); err != nil {
					return err
				}
			}
		} else {
			target = candidate
			if err := o.repo.Save(ctx, target); err != nil {
				return err
			}
		}

		if needsReconcile {
			if err := o.reconcileOrLedger(ctx, target); err != nil {
				return err
			}
		}
	}
	return nil
}

// syncFees reconciles the fee line items embedded in a reservation detail.
func (o *Orchestrator) syncFees(ctx context.Context, detail *source.Reservation, res *models.Reservation) error {
	for _, fee := range detail.Fees {
		candidate := &models.Fee{
			ReservationExternalID: detail.ID,
			SKU:                   fee.SKU,
			Description:           fee.Description,
			Amount:                fee.Amount,
			ReservationID:         res.ID,
			ReservationSinkID:     res.SinkID,
		}

		existing, err := o.repo.FeeByReservationAndSKU(ctx, res.ID, fee.SKU)
		if err != nil {
			return err
		}

		target := existing
		needsReconcile := existing == nil || NeedsWrite(existing, candidate)
		if existing != nil {
			if !FieldsEqual(existing.Fields(), candidate.Fields()) {
				existing.Description = candidate.Description
				existing.Amount = candidate.Amount
				existing.ReservationSinkID = candidate.ReservationSinkID
				existing.SetSynced(false)
				if err := o.repo.Save(ctx, existing); err != nil {
					return err
				}
			}
		} else {
			target = candidate
			if err := o.repo.Save(ctx, target); err != nil {
				return err
			}
		}

		if needsReconcile {
			if err := o.reconcileOrLedger(ctx, target); err != nil {
				return err
			}
		}
	}
	return nil
}

// syncBlockRef applies cancel/delete transitions for a block reference, or
// falls through to the full block creation path.
func (o *Orchestrator) syncBlockRef(ctx context.Context, ref ReservationRef) error {
	if ref.Cancel || ref.Delete {
		existing, err := o.repo.BlockByExternalID(ctx, ref.ExternalID)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Status = transitionStatus(ref)
			existing.SetSynced(false)
			if err := o.repo.Save(ctx, existing); err != nil {
				return err
			}
			return o.reconcileOrLedger(ctx, existing)
		}
		if ref.Delete {
			o.logger.Info("Deletion for unknown block ignored",
				zap.String("block", ref.ExternalID))
			return nil
		}
	}

	detail, err := o.source.GetReservation(ctx, ref.ExternalID)
	if err != nil {
		o.faults.RecordSourceFault(ctx, o.registry.Spec(models.KindBlock).Table, ref.ExternalID, err.Error())
		return fmt.Errorf("fetch block %s: %w", ref.ExternalID, err)
	}

	force := ""
	if ref.Cancel {
		force = models.StatusCanceled
	}
	return o.syncBlockDetail(ctx, detail, force)
}

// syncBlockDetail reconciles the property chain, then the block itself.
func (o *Orchestrator) syncBlockDetail(ctx context.Context, detail *source.Reservation, forceStatus string) error {
	prop, err := o.syncProperty(ctx, detail.ListingID)
	if err != nil {
		return err
	}

	status := detail.Status
	if forceStatus != "" {
		status = forceStatus
	}

	reason := detail.Reason
	if reason == "" {
		reason = detail.Notes
	}

	candidate := &models.Block{
		ExternalID: detail.ID,
		StartDate:  detail.CheckIn,
		EndDate:    detail.CheckOut,
		Reason:     reason,
		Status:     status,
	}
	if prop != nil {
		candidate.PropertyID = &prop.ID
		candidate.PropertySinkID = prop.SinkID
	}

	existing, err := o.repo.BlockByExternalID(ctx, detail.ID)
	if err != nil {
		return err
	}

	target := existing
	needsReconcile := existing == nil || NeedsWrite(existing, candidate)
	if existing != nil {
		if !FieldsEqual(existing.Fields(), candidate.Fields()) {
			existing.StartDate = candidate.StartDate
			existing.EndDate = candidate.EndDate
			existing.Reason = candidate.Reason
			existing.Status = candidate.Status
			existing.PropertyID = candidate.PropertyID
			existing.PropertySinkID = candidate.PropertySinkID
			existing.SetSynced(false)
			if err := o.repo.Save(ctx, existing); err != nil {
				return err
			}
		}
	} else {
		target = candidate
		if err := o.repo.Save(ctx, target); err != nil {
			return err
		}
	}

	if needsReconcile {
		return o.reconcileOrLedger(ctx, target)
	}
	return nil
}

// reconcileOrLedger runs one reconcile and files a sink fault on failure.
// The error still propagates: a failed dependency aborts the run, and the
// job boundary in the event queue is where it is finally swallowed.
func (o *Orchestrator) reconcileOrLedger(ctx context.Context, rec models.Record) error {
	if _, err := o.reconciler.Reconcile(ctx, rec); err != nil {
		var sinkErr *SinkError
		if errors.As(err, &sinkErr) {
			o.faults.RecordSinkFault(ctx, sinkErr.Table, sinkErr.RecordID, sinkErr.Err.Error())
		}
		return err
	}
	return nil
}

// degradeFetch logs a source lookup failure and, when it is a real error
// rather than a clean miss, files a source fault. Dependents proceed with
// nulled references either way.
func (o *Orchestrator) degradeFetch(ctx context.Context, table, recordID string, err error) {
	if errors.Is(err, source.ErrNotFound) {
		o.logger.Warn("Entity missing in source; proceeding with partial data",
			zap.String("table", table),
			zap.String("record", recordID),
		)
		return
	}
	o.logger.Warn("Source fetch failed; proceeding with partial data",
		zap.String("table", table),
		zap.String("record", recordID),
		zap.Error(err),
	)
	o.faults.RecordSourceFault(ctx, table, recordID, err.Error())
}
