package source

// Reservation is the full reservation detail as reported by the booking
// platform. Blocks (owner stays, maintenance windows) arrive through the
// same endpoint with a block-type marker in Type.
type Reservation struct {
	ID         string   `json:"_id"`
	Type       string   `json:"type"`
	Status     string   `json:"status"`
	ListingID  string   `json:"listingId"`
	CheckIn    string   `json:"checkInDate"`
	CheckOut   string   `json:"checkOutDate"`
	GuestCount int      `json:"guests"`
	TotalPrice *float64 `json:"totalPrice"`
	Currency   string   `json:"currency"`
	Notes      string   `json:"internalNote"`
	Reason     string   `json:"reason"`
	Agent      *AgentRef   `json:"agent"`
	Partner    *PartnerRef `json:"partner"`
	GuestIDs   []string    `json:"guestIds"`
	Fees       []Fee       `json:"fees"`
}

// AgentRef identifies the agent attached to a reservation.
type AgentRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PartnerRef identifies the sales channel a reservation came through.
// A nil partner on a reservation means a direct booking.
type PartnerRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Fee is a charge line item embedded in the reservation detail. Fees have
// no id of their own on the platform; the SKU is the only discriminator.
type Fee struct {
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Listing is the property detail as reported by the booking platform.
type Listing struct {
	ID            string    `json:"_id"`
	Name          string    `json:"title"`
	InternalCode  string    `json:"internalCode"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Status        string    `json:"status"`
	CondominiumID string    `json:"buildingId"`
	Owner         *OwnerRef `json:"owner"`
}

// OwnerRef identifies the owner attached to a listing.
type OwnerRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Condominium is the building/grouping detail from the booking platform.
type Condominium struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Guest is the guest detail from the booking platform.
type Guest struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Document string `json:"document"`
}

// SearchQuery filters the paged reservation search.
type SearchQuery struct {
	From      string
	To        string
	ListingID string
}

// searchPage is one page of the reservation search response.
type searchPage struct {
	Items []Reservation `json:"items"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
}
