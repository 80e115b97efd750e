// Package payhere implements the PayHere gateway wire contract: the MD5
// hash scheme used to sign outbound checkout requests and verify inbound
// server-to-server notifications, plus the protocol's status code table.
// Everything here is pure; no I/O, no logging.
package payhere

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"
)

// Gateway status codes as delivered in the notify callback.
const (
	StatusCodeSuccess     = "2"
	StatusCodeAuthorized  = "1"
	StatusCodeCancelled   = "0"
	StatusCodeFailed      = "-1"
	StatusCodeChargedBack = "-3"
)

// FormatAmount renders an amount the way the gateway hashes it: exactly
// two fractional digits, '.' separator, no grouping. Locale-independent
// by construction; 100 and 100.00 format identically.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func upperMD5(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// RequestHash computes the signature for an outbound checkout request:
// UPPER(MD5(merchantID + orderID + amount + currency + UPPER(MD5(secret)))).
func RequestHash(merchantID, orderID string, amount decimal.Decimal, currency, merchantSecret string) string {
	return upperMD5(merchantID + orderID + FormatAmount(amount) + currency + upperMD5(merchantSecret))
}

// NotificationHash computes the expected md5sig for an inbound notification.
// rawAmount is the payhere_amount field exactly as received; it must not be
// reformatted, because the gateway hashed its own rendering of it.
func NotificationHash(merchantID, orderID, rawAmount, currency, statusCode, merchantSecret string) string {
	return upperMD5(merchantID + orderID + rawAmount + currency + statusCode + upperMD5(merchantSecret))
}

// VerifyNotificationHash recomputes the notification signature and compares
// it against the received md5sig in constant time.
func VerifyNotificationHash(received, merchantID, orderID, rawAmount, currency, statusCode, merchantSecret string) bool {
	expected := NotificationHash(merchantID, orderID, rawAmount, currency, statusCode, merchantSecret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}

// CheckoutPayload carries the fields of the hosted-checkout form POST.
type CheckoutPayload struct {
	MerchantID string `json:"merchant_id"`
	OrderID    string `json:"order_id"`
	Items      string `json:"items"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	ReturnURL  string `json:"return_url"`
	CancelURL  string `json:"cancel_url"`
	NotifyURL  string `json:"notify_url"`
	Hash       string `json:"hash"`
}
