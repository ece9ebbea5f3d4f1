package models

// Kind identifies one mirrored entity kind. The sync engine keys its table
// registry, repository lookups and fault records by Kind.
type Kind string

const (
	KindCondominium Kind = "condominium"
	KindProperty    Kind = "property"
	KindOwner       Kind = "owner"
	KindAgent       Kind = "agent"
	KindChannel     Kind = "channel"
	KindReservation Kind = "reservation"
	KindBlock       Kind = "block"
	KindGuest       Kind = "guest"
	KindFee         Kind = "fee"
	KindSourceFault Kind = "source_fault"
	KindSinkFault   Kind = "sink_fault"
)

// Reservation and block status values, kept verbatim as the booking
// platform reports them.
const (
	StatusConfirmed = "Confirmada"
	StatusPending   = "Pendente"
	StatusCanceled  = "Cancelada"
	StatusDeleted   = "Excluida"
)

// DirectChannelExternalID is the sentinel external id for direct,
// unattributed bookings. The ledger's reservation schema requires a channel
// reference, so a synthetic "direct" channel stands in when the platform
// reports no partner.
const DirectChannelExternalID = "direct"

// Record is implemented by every mirrored entity. It exposes the three-way
// identity (local id, external key, sink id), the synced flag, and the
// canonical field set written to the ledger.
type Record interface {
	// Kind returns the entity kind.
	Kind() Kind
	// LocalID returns the surrogate key assigned on first local persistence.
	LocalID() uint
	// ExternalKey returns the natural key from the booking platform, used
	// for logging and fault records. Kinds without a stable external id
	// (guests, fees) return their best available discriminator.
	ExternalKey() string
	// SinkRef returns the ledger-assigned id, or nil before first creation.
	SinkRef() *int64
	// SetSinkRef stores the ledger-assigned id.
	SetSinkRef(id int64)
	// SetSynced flips the synced flag.
	SetSynced(ok bool)
	// IsSynced reports whether the last local state is mirrored.
	IsSynced() bool
	// Fields returns the canonical field set for the ledger write, keyed by
	// canonical field name. The table registry maps these onto ledger columns.
	Fields() map[string]any
	// NaturalKey returns the canonical fields identifying this entity in
	// the ledger when no sink id is cached yet.
	NaturalKey() map[string]any
}
