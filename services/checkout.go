package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SahanWeer/StayLanka/models"
	"github.com/SahanWeer/StayLanka/payhere"
	"github.com/shopspring/decimal"
)

// MerchantConfig holds the PayHere merchant identity and the redirect URLs
// baked into every checkout payload.
type MerchantConfig struct {
	MerchantID     string
	MerchantSecret string
	CheckoutURL    string
	ReturnURL      string
	CancelURL      string
	NotifyURL      string
	MaxAmount      decimal.Decimal
}

// CheckoutService assembles signed checkout payloads for bookings and owns
// creation of the PENDING payment record. It is the only writer that may
// create payment rows; notifications for unknown orders are rejected, never
// materialized.
type CheckoutService struct {
	store    PaymentStore
	merchant MerchantConfig
}

func NewCheckoutService(store PaymentStore, merchant MerchantConfig) *CheckoutService {
	return &CheckoutService{store: store, merchant: merchant}
}

// BuildCheckout validates the booking amount, ensures a PENDING payment
// record exists for the order (creating it if needed, reusing it if the
// user retries checkout), and returns the signed gateway form payload.
// The PENDING row is persisted before the payload is returned, so the
// notification handler can always resolve the order the gateway calls
// back about.
func (s *CheckoutService) BuildCheckout(booking *models.Booking) (*payhere.CheckoutPayload, error) {
	if booking.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount %s must be positive", ErrInvalidAmount, booking.Amount)
	}
	if booking.Amount.GreaterThan(s.merchant.MaxAmount) {
		return nil, fmt.Errorf("%w: amount %s exceeds limit %s", ErrInvalidAmount, booking.Amount, s.merchant.MaxAmount)
	}

	existing, err := s.store.FindByOrderID(booking.OrderID)
	switch {
	case err == nil:
		if existing.IsTerminal() {
			return nil, fmt.Errorf("%w: order %s is %s", ErrDuplicatePayment, booking.OrderID, existing.Status)
		}
		// PENDING record from an abandoned checkout; reuse its snapshot.
	case errors.Is(err, ErrUnknownOrder):
		existing = &models.Payment{
			OrderID:  booking.OrderID,
			Status:   models.PaymentStatusPending,
			Amount:   booking.Amount,
			Currency: booking.Currency,
		}
		if err := s.store.CreatePending(existing); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	firstName, lastName := splitGuestName(booking.GuestName)
	return &payhere.CheckoutPayload{
		MerchantID: s.merchant.MerchantID,
		OrderID:    booking.OrderID,
		Items:      fmt.Sprintf("Booking %s", booking.OrderID),
		Amount:     payhere.FormatAmount(existing.Amount),
		Currency:   existing.Currency,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      booking.GuestEmail,
		Phone:      booking.GuestPhone,
		ReturnURL:  s.merchant.ReturnURL,
		CancelURL:  s.merchant.CancelURL,
		NotifyURL:  s.merchant.NotifyURL,
		Hash:       payhere.RequestHash(s.merchant.MerchantID, booking.OrderID, existing.Amount, existing.Currency, s.merchant.MerchantSecret),
	}, nil
}

func splitGuestName(name string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}
