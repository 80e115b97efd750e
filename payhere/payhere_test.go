package payhere

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMerchantID = "1211149"
	testSecret     = "test_merchant_secret"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"integer amount", "100", "100.00"},
		{"trailing zeros", "100.00", "100.00"},
		{"one decimal place", "99.5", "99.50"},
		{"already two places", "2500.00", "2500.00"},
		{"sub-unit amount", "0.5", "0.50"},
		{"large amount no grouping", "1234567.89", "1234567.89"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatAmount(amount))
		})
	}
}

func TestRequestHashKnownValue(t *testing.T) {
	amount := decimal.NewFromInt(2500)
	hash := RequestHash(testMerchantID, "ORD-1001", amount, "LKR", testSecret)
	// Independently computed: UPPER(MD5(mid + oid + "2500.00" + "LKR" + UPPER(MD5(secret))))
	assert.Equal(t, "BF8E99A6DFFF85B249EFA70CD95A25CD", hash)
}

func TestRequestHashAmountRepresentationInvariance(t *testing.T) {
	whole := decimal.NewFromInt(100)
	fractional, err := decimal.NewFromString("100.00")
	require.NoError(t, err)

	h1 := RequestHash(testMerchantID, "ORD-42", whole, "LKR", testSecret)
	h2 := RequestHash(testMerchantID, "ORD-42", fractional, "LKR", testSecret)
	assert.Equal(t, h1, h2, "100 and 100.00 must hash identically")
}

func TestNotificationHashRoundTrip(t *testing.T) {
	cases := []struct {
		orderID    string
		rawAmount  string
		currency   string
		statusCode string
	}{
		{"ORD-1001", "2500.00", "LKR", StatusCodeSuccess},
		{"ORD-1002", "99.50", "LKR", StatusCodeFailed},
		{"ORD-1003", "100", "USD", StatusCodeCancelled},
		{"ORD-1004", "0.50", "LKR", StatusCodeAuthorized},
	}
	for _, c := range cases {
		sig := NotificationHash(testMerchantID, c.orderID, c.rawAmount, c.currency, c.statusCode, testSecret)
		assert.True(t, VerifyNotificationHash(sig, testMerchantID, c.orderID, c.rawAmount, c.currency, c.statusCode, testSecret),
			"round trip must verify for order %s", c.orderID)
	}
}

func TestNotificationHashKnownValue(t *testing.T) {
	sig := NotificationHash(testMerchantID, "ORD-1001", "2500.00", "LKR", StatusCodeSuccess, testSecret)
	assert.Equal(t, "FC71DB9DE005DF68B2D66316E1D014E3", sig)
}

func TestVerifyNotificationHashRejectsTampering(t *testing.T) {
	sig := NotificationHash(testMerchantID, "ORD-1001", "2500.00", "LKR", StatusCodeSuccess, testSecret)

	assert.False(t, VerifyNotificationHash(sig, testMerchantID, "ORD-1001", "9999.00", "LKR", StatusCodeSuccess, testSecret),
		"tampered amount must not verify")
	assert.False(t, VerifyNotificationHash(sig, testMerchantID, "ORD-1001", "2500.00", "LKR", StatusCodeFailed, testSecret),
		"tampered status code must not verify")
	assert.False(t, VerifyNotificationHash(sig, testMerchantID, "ORD-1002", "2500.00", "LKR", StatusCodeSuccess, testSecret),
		"different order must not verify")
	assert.False(t, VerifyNotificationHash(sig, testMerchantID, "ORD-1001", "2500.00", "LKR", StatusCodeSuccess, "wrong_secret"),
		"wrong secret must not verify")
}

func TestNotificationHashUsesRawAmountString(t *testing.T) {
	// The gateway hashes its own rendering of the amount; "2500.0" and
	// "2500.00" are different strings and must produce different sigs.
	a := NotificationHash(testMerchantID, "ORD-1001", "2500.0", "LKR", StatusCodeSuccess, testSecret)
	b := NotificationHash(testMerchantID, "ORD-1001", "2500.00", "LKR", StatusCodeSuccess, testSecret)
	assert.NotEqual(t, a, b)
}
