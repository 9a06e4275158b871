package booking

import "time"

// Booking IDs are opaque UUIDs generated at creation time. Deriving them
// from the submitted fields would silently overwrite a double-booked slot,
// so identical submissions produce distinct records instead.
type Booking struct {
	ID         string    `json:"bookingId"`
	Username   string    `json:"username"`
	ProviderID int       `json:"providerId"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Time       string    `json:"time"` // HH:MM
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}
