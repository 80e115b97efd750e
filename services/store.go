package services

import (
	"github.com/SahanWeer/StayLanka/models"
	"github.com/shopspring/decimal"
)

// PaymentStore is the persistence contract the payment services depend on.
// Implemented by repository.PaymentRepository; service tests use an
// in-memory fake.
type PaymentStore interface {
	// CreatePending inserts a new PENDING payment. Returns
	// ErrDuplicatePayment if a record already exists for the order id.
	CreatePending(payment *models.Payment) error

	// FindByOrderID returns the payment for an order, or ErrUnknownOrder.
	FindByOrderID(orderID string) (*models.Payment, error)

	// FindBookingByOrderID returns the booking for an order, or
	// ErrUnknownOrder. Bookings are read-only from this core.
	FindBookingByOrderID(orderID string) (*models.Booking, error)

	// TransitionStatus moves the payment to newStatus, recording the raw
	// gateway code and payment id, conditional on the row still being in
	// expectedStatus. Returns false when the conditional update matched no
	// row (the record moved underneath us).
	TransitionStatus(orderID, expectedStatus, newStatus, gatewayCode, gatewayPaymentID string) (bool, error)

	// CompletePayment performs the PENDING→COMPLETED transition together
	// with the commission write in a single transaction, conditional on the
	// row still being PENDING.
	CompletePayment(orderID, gatewayCode, gatewayPaymentID string, commission decimal.Decimal) (bool, error)

	// RecordNotification appends one audit row for an inbound callback,
	// before the callback is validated.
	RecordNotification(n *models.PaymentNotification) error

	// UpdateNotificationOutcome records how the callback was resolved on
	// its existing audit row. The raw payload columns never change.
	UpdateNotificationOutcome(n *models.PaymentNotification) error
}
