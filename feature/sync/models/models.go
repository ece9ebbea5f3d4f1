package models

import "time"

// Condominium mirrors a building/grouping from the booking platform.
type Condominium struct {
	ID         uint   `gorm:"column:id;primaryKey"`
	ExternalID string `gorm:"column:external_id;size:64;uniqueIndex"`
	Name       string `gorm:"column:name;size:255"`
	Address    string `gorm:"column:address;size:255"`
	SinkID     *int64 `gorm:"column:sink_id"`
	Synced     bool   `gorm:"column:synced"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Condominium) TableName() string { return "condominiums" }

func (c *Condominium) Kind() Kind          { return KindCondominium }
func (c *Condominium) LocalID() uint       { return c.ID }
func (c *Condominium) ExternalKey() string { return c.ExternalID }
func (c *Condominium) SinkRef() *int64     { return c.SinkID }
func (c *Condominium) SetSinkRef(id int64) { c.SinkID = &id }
func (c *Condominium) SetSynced(ok bool)   { c.Synced = ok }
func (c *Condominium) IsSynced() bool      { return c.Synced }

func (c *Condominium) Fields() map[string]any {
	return map[string]any{
		"external_id": c.ExternalID,
		"name":        c.Name,
		"address":     c.Address,
	}
}

func (c *Condominium) NaturalKey() map[string]any {
	return map[string]any{"external_id": c.ExternalID}
}

// Owner mirrors a property owner.
type Owner struct {
	ID         uint   `gorm:"column:id;primaryKey"`
	ExternalID string `gorm:"column:external_id;size:64;uniqueIndex"`
	Name       string `gorm:"column:name;size:255"`
	Email      string `gorm:"column:email;size:255"`
	Phone      string `gorm:"column:phone;size:64"`
	SinkID     *int64 `gorm:"column:sink_id"`
	Synced     bool   `gorm:"column:synced"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Owner) TableName() string { return "owners" }

func (o *Owner) Kind() Kind          { return KindOwner }
func (o *Owner) LocalID() uint       { return o.ID }
func (o *Owner) ExternalKey() string { return o.ExternalID }
func (o *Owner) SinkRef() *int64     { return o.SinkID }
func (o *Owner) SetSinkRef(id int64) { o.SinkID = &id }
func (o *Owner) SetSynced(ok bool)   { o.Synced = ok }
func (o *Owner) IsSynced() bool      { return o.Synced }

func (o *Owner) Fields() map[string]any {
	return map[string]any{
		"external_id": o.ExternalID,
		"name":        o.Name,
		"email":       o.Email,
		"phone":       o.Phone,
	}
}

func (o *Owner) NaturalKey() map[string]any {
	return map[string]any{"external_id": o.ExternalID}
}

// Property mirrors a listing. Its ledger row embeds the sink ids of its
// condominium and owner, so both must be reconciled before the property.
type Property struct {
	ID                uint   `gorm:"column:id;primaryKey"`
	ExternalID        string `gorm:"column:external_id;size:64;uniqueIndex"`
	Name              string `gorm:"column:name;size:255"`
	Code              string `gorm:"column:code;size:64"`
	Address           string `gorm:"column:address;size:255"`
	City              string `gorm:"column:city;size:128"`
	Status            string `gorm:"column:status;size:32"`
	CondominiumID     *uint  `gorm:"column:condominium_id"`
	CondominiumSinkID *int64 `gorm:"column:condominium_sink_id"`
	OwnerID           *uint  `gorm:"column:owner_id"`
	OwnerSinkID       *int64 `gorm:"column:owner_sink_id"`
	SinkID            *int64 `gorm:"column:sink_id"`
	Synced            bool   `gorm:"column:synced"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Property) TableName() string { return "properties" }

func (p *Property) Kind() Kind          { return KindProperty }
func (p *Property) LocalID() uint       { return p.ID }
func (p *Property) ExternalKey() string { return p.ExternalID }
func (p *Property) SinkRef() *int64     { return p.SinkID }
func (p *Property) SetSinkRef(id int64) { p.SinkID = &id }
func (p *Property) SetSynced(ok bool)   { p.Synced = ok }
func (p *Property) IsSynced() bool      { return p.Synced }

func (p *Property) Fields() map[string]any {
	return map[string]any{
		"external_id":    p.ExternalID,
		"name":           p.Name,
		"code":           p.Code,
		"address":        p.Address,
		"city":           p.City,
		"status":         p.Status,
		"condominium_id": int64PtrValue(p.CondominiumSinkID),
		"owner_id":       int64PtrValue(p.OwnerSinkID),
	}
}

func (p *Property) NaturalKey() map[string]any {
	return map[string]any{"external_id": p.ExternalID}
}

// Agent mirrors a booking agent.
type Agent struct {
	ID         uint   `gorm:"column:id;primaryKey"`
	ExternalID string `gorm:"column:external_id;size:64;uniqueIndex"`
	Name       string `gorm:"column:name;size:255"`
	Email      string `gorm:"column:email;size:255"`
	SinkID     *int64 `gorm:"column:sink_id"`
	Synced     bool   `gorm:"column:synced"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Agent) TableName() string { return "agents" }

func (a *Agent) Kind() Kind          { return KindAgent }
func (a *Agent) LocalID() uint       { return a.ID }
func (a *Agent) ExternalKey() string { return a.ExternalID }
func (a *Agent) SinkRef() *int64     { return a.SinkID }
func (a *Agent) SetSinkRef(id int64) { a.SinkID = &id }
func (a *Agent) SetSynced(ok bool)   { a.Synced = ok }
func (a *Agent) IsSynced() bool      { return a.Synced }

func (a *Agent) Fields() map[string]any {
	return map[string]any{
		"external_id": a.ExternalID,
		"name":        a.Name,
		"email":       a.Email,
	}
}

func (a *Agent) NaturalKey() map[string]any {
	return map[string]any{"external_id": a.ExternalID}
}

// Channel mirrors a sales channel. The sentinel external id "direct" marks
// the synthesized channel for unattributed bookings.
type Channel struct {
	ID         uint   `gorm:"column:id;primaryKey"`
	ExternalID string `gorm:"column:external_id;size:64;uniqueIndex"`
	Name       string `gorm:"column:name;size:255"`
	SinkID     *int64 `gorm:"column:sink_id"`
	Synced     bool   `gorm:"column:synced"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Channel) TableName() string { return "channels" }

func (c *Channel) Kind() Kind          { return KindChannel }
func (c *Channel) LocalID() uint       { return c.ID }
func (c *Channel) ExternalKey() string { return c.ExternalID }
func (c *Channel) SinkRef() *int64     { return c.SinkID }
func (c *Channel) SetSinkRef(id int64) { c.SinkID = &id }
func (c *Channel) SetSynced(ok bool)   { c.Synced = ok }
func (c *Channel) IsSynced() bool      { return c.Synced }

func (c *Channel) Fields() map[string]any {
	return map[string]any{
		"external_id": c.ExternalID,
		"name":        c.Name,
	}
}

func (c *Channel) NaturalKey() map[string]any {
	return map[string]any{"external_id": c.ExternalID}
}

// Reservation mirrors a booking. Its ledger row embeds the sink ids of the
// property, channel and agent gathered before the reservation write.
type Reservation struct {
	ID             uint     `gorm:"column:id;primaryKey"`
	ExternalID     string   `gorm:"column:external_id;size:64;uniqueIndex"`
	CheckIn        string   `gorm:"column:check_in;size:10"`
	CheckOut       string   `gorm:"column:check_out;size:10"`
	Status         string   `gorm:"column:status;size:32"`
	GuestCount     int      `gorm:"column:guest_count"`
	TotalAmount    *float64 `gorm:"column:total_amount"`
	Currency       string   `gorm:"column:currency;size:8"`
	Notes          string   `gorm:"column:notes;size:1024"`
	PropertyID     *uint    `gorm:"column:property_id"`
	PropertySinkID *int64   `gorm:"column:property_sink_id"`
	ChannelID      *uint    `gorm:"column:channel_id"`
	ChannelSinkID  *int64   `gorm:"column:channel_sink_id"`
	AgentID        *uint    `gorm:"column:agent_id"`
	AgentSinkID    *int64   `gorm:"column:agent_sink_id"`
	SinkID         *int64   `gorm:"column:sink_id"`
	Synced         bool     `gorm:"column:synced"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Reservation) TableName() string { return "reservations" }

func (r *Reservation) Kind() Kind          { return KindReservation }
func (r *Reservation) LocalID() uint       { return r.ID }
func (r *Reservation) ExternalKey() string { return r.ExternalID }
func (r *Reservation) SinkRef() *int64     { return r.SinkID }
func (r *Reservation) SetSinkRef(id int64) { r.SinkID = &id }
func (r *Reservation) SetSynced(ok bool)   { r.Synced = ok }
func (r *Reservation) IsSynced() bool      { return r.Synced }

func (r *Reservation) Fields() map[string]any {
	return map[string]any{
		"external_id":  r.ExternalID,
		"check_in":     r.CheckIn,
		"check_out":    r.CheckOut,
		"status":       r.Status,
		"guest_count":  r.GuestCount,
		"total_amount": floatPtrValue(r.TotalAmount),
		"currency":     r.Currency,
		"notes":        r.Notes,
		"property_id":  int64PtrValue(r.PropertySinkID),
		"channel_id":   int64PtrValue(r.ChannelSinkID),
		"agent_id":     int64PtrValue(r.AgentSinkID),
	}
}

func (r *Reservation) NaturalKey() map[string]any {
	return map[string]any{"external_id": r.ExternalID}
}

// Block mirrors a calendar block (owner stay, maintenance window).
type Block struct {
	ID             uint   `gorm:"column:id;primaryKey"`
	ExternalID     string `gorm:"column:external_id;size:64;uniqueIndex"`
	StartDate      string `gorm:"column:start_date;size:10"`
	EndDate        string `gorm:"column:end_date;size:10"`
	Reason         string `gorm:"column:reason;size:255"`
	Status         string `gorm:"column:status;size:32"`
	PropertyID     *uint  `gorm:"column:property_id"`
	PropertySinkID *int64 `gorm:"column:property_sink_id"`
	SinkID         *int64 `gorm:"column:sink_id"`
	Synced         bool   `gorm:"column:synced"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Block) TableName() string { return "blocks" }

func (b *Block) Kind() Kind          { return KindBlock }
func (b *Block) LocalID() uint       { return b.ID }
func (b *Block) ExternalKey() string { return b.ExternalID }
func (b *Block) SinkRef() *int64     { return b.SinkID }
func (b *Block) SetSinkRef(id int64) { b.SinkID = &id }
func (b *Block) SetSynced(ok bool)   { b.Synced = ok }
func (b *Block) IsSynced() bool      { return b.Synced }

func (b *Block) Fields() map[string]any {
	return map[string]any{
		"external_id": b.ExternalID,
		"start_date":  b.StartDate,
		"end_date":    b.EndDate,
		"reason":      b.Reason,
		"status":      b.Status,
		"property_id": int64PtrValue(b.PropertySinkID),
	}
}

func (b *Block) NaturalKey() map[string]any {
	return map[string]any{"external_id": b.ExternalID}
}

// Guest mirrors a guest attached to a reservation. The booking platform
// assigns guest ids, but the ledger has no column for them historically, so
// ledger identity resolves by name+phone.
type Guest struct {
	ID                uint   `gorm:"column:id;primaryKey"`
	ExternalID        string `gorm:"column:external_id;size:64;index"`
	Name              string `gorm:"column:name;size:255"`
	Email             string `gorm:"column:email;size:255"`
	Phone             string `gorm:"column:phone;size:64"`
	Document          string `gorm:"column:document;size:64"`
	ReservationID     uint   `gorm:"column:reservation_id;index"`
	ReservationSinkID *int64 `gorm:"column:reservation_sink_id"`
	SinkID            *int64 `gorm:"column:sink_id"`
	Synced            bool   `gorm:"column:synced"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Guest) TableName() string { return "guests" }

func (g *Guest) Kind() Kind    { return KindGuest }
func (g *Guest) LocalID() uint { return g.ID }

func (g *Guest) ExternalKey() string {
	if g.ExternalID != "" {
		return g.ExternalID
	}
	return g.Name + "/" + g.Phone
}

func (g *Guest) SinkRef() *int64     { return g.SinkID }
func (g *Guest) SetSinkRef(id int64) { g.SinkID = &id }
func (g *Guest) SetSynced(ok bool)   { g.Synced = ok }
func (g *Guest) IsSynced() bool      { return g.Synced }

func (g *Guest) Fields() map[string]any {
	return map[string]any{
		"name":           g.Name,
		"email":          g.Email,
		"phone":          g.Phone,
		"document":       g.Document,
		"reservation_id": int64PtrValue(g.ReservationSinkID),
	}
}

// NaturalKey resolves guests by name+phone. Ambiguous under renames; kept
// because the ledger predates stable guest ids.
func (g *Guest) NaturalKey() map[string]any {
	return map[string]any{"name": g.Name, "phone": g.Phone}
}

// Fee mirrors a charge line item of a reservation. Fees have no id of their
// own; identity is the owning reservation's external id plus the SKU.
type Fee struct {
	ID                    uint    `gorm:"column:id;primaryKey"`
	ReservationExternalID string  `gorm:"column:reservation_external_id;size:64;index"`
	SKU                   string  `gorm:"column:sku;size:64"`
	Description           string  `gorm:"column:description;size:255"`
	Amount                float64 `gorm:"column:amount"`
	ReservationID         uint    `gorm:"column:reservation_id;index"`
	ReservationSinkID     *int64  `gorm:"column:reservation_sink_id"`
	SinkID                *int64  `gorm:"column:sink_id"`
	Synced                bool    `gorm:"column:synced"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (Fee) TableName() string { return "fees" }

func (f *Fee) Kind() Kind          { return KindFee }
func (f *Fee) LocalID() uint       { return f.ID }
func (f *Fee) ExternalKey() string { return f.ReservationExternalID + "/" + f.SKU }
func (f *Fee) SinkRef() *int64     { return f.SinkID }
func (f *Fee) SetSinkRef(id int64) { f.SinkID = &id }
func (f *Fee) SetSynced(ok bool)   { f.Synced = ok }
func (f *Fee) IsSynced() bool      { return f.Synced }

func (f *Fee) Fields() map[string]any {
	return map[string]any{
		"reservation_external_id": f.ReservationExternalID,
		"sku":                     f.SKU,
		"description":             f.Description,
		"amount":                  f.Amount,
		"reservation_id":          int64PtrValue(f.ReservationSinkID),
	}
}

func (f *Fee) NaturalKey() map[string]any {
	return map[string]any{
		"reservation_external_id": f.ReservationExternalID,
		"sku":                     f.SKU,
	}
}

// int64PtrValue unwraps an optional sink reference for a ledger write,
// keeping nil as nil so absent references stay null in the ledger.
func int64PtrValue(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func floatPtrValue(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
