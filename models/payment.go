package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status constants
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusCancelled = "CANCELLED"
	PaymentStatusRefunded  = "REFUNDED"
)

// Payment is the payment record for a booking. Amount and currency are
// snapshotted at initiation and never change afterwards, even if the
// booking is edited later. At most one payment exists per order id.
type Payment struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	OrderID           string           `gorm:"uniqueIndex;not null" json:"order_id"`
	Status            string           `gorm:"not null;default:'PENDING';index" json:"status"`
	Amount            decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency          string           `gorm:"type:varchar(3);not null" json:"currency"`
	GatewayPaymentID  string           `json:"gateway_payment_id,omitempty"`
	GatewayStatusCode string           `json:"gateway_status_code,omitempty"`
	CommissionAmount  *decimal.Decimal `gorm:"type:numeric(12,2)" json:"commission_amount,omitempty"`
	HashVerified      bool             `gorm:"default:false" json:"hash_verified"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// IsTerminal reports whether the payment has left PENDING. COMPLETED is
// terminal for everything except a later refund.
func (p *Payment) IsTerminal() bool {
	return p.Status != PaymentStatusPending
}

// Notification audit outcomes
const (
	NotificationOutcomeReceived = "received"
	NotificationOutcomeApplied  = "applied"
	NotificationOutcomeNoop     = "noop"
	NotificationOutcomeRejected = "rejected"
)

// PaymentNotification is one inbound gateway callback, stored exactly as
// received. One row per delivery, written before validation runs; only the
// outcome columns change afterwards, so forged or malformed messages stay
// on record for forensics.
type PaymentNotification struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       string    `gorm:"index;not null" json:"order_id"`
	MerchantID    string    `json:"merchant_id"`
	PaymentID     string    `json:"payment_id"`
	RawAmount     string    `json:"raw_amount"`
	RawCurrency   string    `json:"raw_currency"`
	StatusCode    string    `json:"status_code"`
	Md5Sig        string    `json:"md5sig"`
	HashVerified  bool      `gorm:"default:false" json:"hash_verified"`
	Outcome       string    `json:"outcome"`
	OutcomeDetail string    `json:"outcome_detail,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (PaymentNotification) TableName() string {
	return "payment_notifications"
}
