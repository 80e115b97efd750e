package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking status constants
const (
	BookingStatusPlaced    = "Placed"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
)

// Booking is the reservation record owned by the listings subsystem. The
// payment core only reads it: OrderID keys the payment, Amount/Currency
// seed the immutable payment snapshot, and the guest fields are passed
// through to the gateway checkout form.
type Booking struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    string          `gorm:"uniqueIndex;not null" json:"order_id"`
	PropertyID uint            `json:"property_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency   string          `gorm:"type:varchar(3);not null" json:"currency"`
	GuestName  string          `json:"guest_name"`
	GuestEmail string          `json:"guest_email"`
	GuestPhone string          `json:"guest_phone"`
	Status     string          `json:"status"`
	CheckIn    time.Time       `json:"check_in"`
	CheckOut   time.Time       `json:"check_out"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
