package services

import (
	"testing"

	"github.com/SahanWeer/StayLanka/models"
	"github.com/SahanWeer/StayLanka/payhere"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMerchant() MerchantConfig {
	return MerchantConfig{
		MerchantID:     "1211149",
		MerchantSecret: "test_merchant_secret",
		CheckoutURL:    "https://sandbox.payhere.lk/pay/checkout",
		ReturnURL:      "https://staylanka.example/payments/return",
		CancelURL:      "https://staylanka.example/payments/cancel",
		NotifyURL:      "https://staylanka.example/v1/payments/payhere/notify",
		MaxAmount:      decimal.NewFromInt(1000000),
	}
}

func testBooking(orderID string, amount int64) *models.Booking {
	return &models.Booking{
		OrderID:    orderID,
		Amount:     decimal.NewFromInt(amount),
		Currency:   "LKR",
		GuestName:  "Nimal Perera",
		GuestEmail: "nimal@example.com",
		GuestPhone: "+94771234567",
		Status:     models.BookingStatusPlaced,
	}
}

func TestBuildCheckoutCreatesPendingRecord(t *testing.T) {
	store := newFakeStore()
	svc := NewCheckoutService(store, testMerchant())
	booking := testBooking("ORD-1001", 2500)
	store.addBooking(booking)

	payload, err := svc.BuildCheckout(booking)
	require.NoError(t, err)

	assert.Equal(t, "1211149", payload.MerchantID)
	assert.Equal(t, "ORD-1001", payload.OrderID)
	assert.Equal(t, "2500.00", payload.Amount)
	assert.Equal(t, "LKR", payload.Currency)
	assert.Equal(t, "Nimal", payload.FirstName)
	assert.Equal(t, "Perera", payload.LastName)
	assert.Equal(t, "https://staylanka.example/v1/payments/payhere/notify", payload.NotifyURL)

	expected := payhere.RequestHash("1211149", "ORD-1001", decimal.NewFromInt(2500), "LKR", "test_merchant_secret")
	assert.Equal(t, expected, payload.Hash)

	// The PENDING record must exist before the user is redirected.
	payment, err := store.FindByOrderID("ORD-1001")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Equal(t, "2500.00", payment.Amount.StringFixed(2))
	assert.Equal(t, "LKR", payment.Currency)
}

func TestBuildCheckoutReusesPendingRecord(t *testing.T) {
	store := newFakeStore()
	svc := NewCheckoutService(store, testMerchant())
	booking := testBooking("ORD-1001", 2500)

	_, err := svc.BuildCheckout(booking)
	require.NoError(t, err)

	// Booking edited after the first attempt; the payment snapshot wins.
	booking.Amount = decimal.NewFromInt(9999)
	payload, err := svc.BuildCheckout(booking)
	require.NoError(t, err)

	assert.Equal(t, 1, store.createCalls, "retrying checkout must not create a second record")
	assert.Equal(t, "2500.00", payload.Amount, "payload must use the snapshot amount, not the edited booking")
}

func TestBuildCheckoutRejectsFinalizedPayment(t *testing.T) {
	store := newFakeStore()
	svc := NewCheckoutService(store, testMerchant())
	booking := testBooking("ORD-1001", 2500)

	_, err := svc.BuildCheckout(booking)
	require.NoError(t, err)
	moved, err := store.TransitionStatus("ORD-1001", models.PaymentStatusPending, models.PaymentStatusCompleted, "2", "PH-1")
	require.NoError(t, err)
	require.True(t, moved)

	_, err = svc.BuildCheckout(booking)
	assert.ErrorIs(t, err, ErrDuplicatePayment)
}

func TestBuildCheckoutRejectsBadAmounts(t *testing.T) {
	store := newFakeStore()
	svc := NewCheckoutService(store, testMerchant())

	_, err := svc.BuildCheckout(testBooking("ORD-1", 0))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.BuildCheckout(testBooking("ORD-2", -500))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.BuildCheckout(testBooking("ORD-3", 2000000))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.Equal(t, 0, store.createCalls, "rejected checkouts must not create records")
}
