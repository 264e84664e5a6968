package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Reservation statuses. Transitions are unconstrained: staff can set any
// status at any time from the back-office.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

// Table categories (seating tiers).
const (
	TableGeneral = "general"
	TableVIP     = "vip"
	TableBooth   = "booth"
)

var ValidStatuses = []string{ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Reservation struct {
	bun.BaseModel `bun:"table:reservations"`

	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull" json:"email"`
	Phone     string    `bun:"phone,notnull" json:"phone"`
	Date      string    `bun:"date,notnull" json:"date"` // YYYY-MM-DD, venue-local civil date
	Time      string    `bun:"time,notnull" json:"time"`
	Guests    int       `bun:"guests,notnull" json:"guests"`
	TableType string    `bun:"table_type,notnull" json:"table_type"`
	Notes     string    `bun:"notes,nullzero" json:"notes,omitempty"`
	Status    string    `bun:"status,notnull" json:"status"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

// ReservationRequest is the body of the public booking form endpoint.
type ReservationRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Guests    int    `json:"guests"`
	TableType string `json:"tableType"`
	Notes     string `json:"notes"`
}

// StatusUpdateRequest is the admin body for moving a reservation between statuses.
type StatusUpdateRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
