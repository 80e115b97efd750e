package controllers

import (
	"errors"
	"net/http"

	"github.com/SahanWeer/StayLanka/models"
	"github.com/SahanWeer/StayLanka/payhere"
	"github.com/SahanWeer/StayLanka/services"
	"github.com/SahanWeer/StayLanka/utils"
	"github.com/gin-gonic/gin"
)

// CheckoutBuilder builds signed checkout payloads. Satisfied by
// services.CheckoutService.
type CheckoutBuilder interface {
	BuildCheckout(booking *models.Booking) (*payhere.CheckoutPayload, error)
}

// NotificationApplier applies gateway callbacks. Satisfied by
// services.NotificationService.
type NotificationApplier interface {
	Apply(n services.Notification) (*services.TransitionResult, error)
}

// PaymentReader is the read-only store access the handlers need. Satisfied
// by repository.PaymentRepository.
type PaymentReader interface {
	FindByOrderID(orderID string) (*models.Payment, error)
	FindBookingByOrderID(orderID string) (*models.Booking, error)
}

// PaymentController handles checkout initiation, the gateway's callbacks
// and payment status lookups.
type PaymentController struct {
	checkout      CheckoutBuilder
	notifications NotificationApplier
	repo          PaymentReader
	checkoutURL   string
}

func NewPaymentController(checkout CheckoutBuilder, notifications NotificationApplier, repo PaymentReader, checkoutURL string) *PaymentController {
	return &PaymentController{
		checkout:      checkout,
		notifications: notifications,
		repo:          repo,
		checkoutURL:   checkoutURL,
	}
}

// InitiateCheckout builds the signed gateway form payload for a booking.
// POST /v1/payments/checkout
func (pc *PaymentController) InitiateCheckout(c *gin.Context) {
	utils.LogInfo("InitiateCheckout called")

	var req struct {
		OrderID string `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid checkout request: %v", err)
		utils.BadRequest(c, "Invalid request. order_id is required", err.Error())
		return
	}

	booking, err := pc.repo.FindBookingByOrderID(req.OrderID)
	if err != nil {
		utils.LogError("Booking not found for order %s: %v", req.OrderID, err)
		utils.NotFound(c, "Booking not found")
		return
	}
	utils.LogInfo("Found booking for order %s, amount %s %s", booking.OrderID, booking.Amount, booking.Currency)

	payload, err := pc.checkout.BuildCheckout(booking)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			utils.LogError("Invalid amount for order %s: %v", req.OrderID, err)
			utils.BadRequest(c, "Booking amount is not payable", err.Error())
		case errors.Is(err, services.ErrDuplicatePayment):
			utils.LogError("Duplicate payment attempt for order %s: %v", req.OrderID, err)
			utils.Conflict(c, "Payment for this booking has already been finalized", err.Error())
		default:
			utils.LogError("Failed to build checkout for order %s: %v", req.OrderID, err)
			utils.InternalServerError(c, "Failed to initiate payment", nil)
		}
		return
	}

	utils.LogInfo("Checkout payload ready for order %s", req.OrderID)
	utils.Success(c, "Payment initiated successfully", gin.H{
		"checkout_url": pc.checkoutURL,
		"payload":      payload,
	})
}

// Notify consumes the gateway's server-to-server callback.
// POST /v1/payments/payhere/notify
//
// The gateway retries on non-200, so every processed outcome answers 200
// with an empty body, including rejected notifications; those are logged
// and audited instead. Only a store failure returns 5xx to trigger a
// legitimate retry.
func (pc *PaymentController) Notify(c *gin.Context) {
	utils.LogInfo("PayHere notification received")

	n := services.Notification{
		MerchantID: c.PostForm("merchant_id"),
		OrderID:    c.PostForm("order_id"),
		PaymentID:  c.PostForm("payment_id"),
		Amount:     c.PostForm("payhere_amount"),
		Currency:   c.PostForm("payhere_currency"),
		StatusCode: c.PostForm("status_code"),
		Md5Sig:     c.PostForm("md5sig"),
	}

	result, err := pc.notifications.Apply(n)
	if errors.Is(err, services.ErrPersistenceFailure) {
		utils.LogError("Store failure applying notification for order %s, retrying once: %v", n.OrderID, err)
		result, err = pc.notifications.Apply(n)
	}

	switch {
	case err == nil:
		if result.Applied {
			utils.LogInfo("Order %s transitioned to %s", result.OrderID, result.Status)
		} else {
			utils.LogInfo("Notification for order %s was a no-op, status remains %s", result.OrderID, result.Status)
		}
	case errors.Is(err, services.ErrPersistenceFailure):
		utils.LogError("Store failure applying notification for order %s: %v", n.OrderID, err)
		utils.ServiceUnavailable(c, "Temporarily unable to process notification")
		return
	default:
		// Rejected outcome: audited, never surfaced to the gateway.
		utils.LogError("Rejected notification for order %s (status code %q): %v", n.OrderID, n.StatusCode, err)
	}

	c.Status(http.StatusOK)
}

// Return is the browser landing after a completed checkout. It only reads;
// state changes arrive through Notify.
// GET /v1/payments/payhere/return
func (pc *PaymentController) Return(c *gin.Context) {
	pc.landing(c, "Payment received. Final confirmation may take a moment.")
}

// Cancel is the browser landing after an abandoned checkout.
// GET /v1/payments/payhere/cancel
func (pc *PaymentController) Cancel(c *gin.Context) {
	pc.landing(c, "Checkout was cancelled. The booking has not been charged.")
}

func (pc *PaymentController) landing(c *gin.Context, message string) {
	orderID := c.Query("order_id")
	if orderID == "" {
		utils.BadRequest(c, "order_id is required", nil)
		return
	}

	payment, err := pc.repo.FindByOrderID(orderID)
	if err != nil {
		utils.LogError("Landing lookup failed for order %s: %v", orderID, err)
		utils.NotFound(c, "No payment found for this order")
		return
	}

	utils.Success(c, message, gin.H{
		"order_id": payment.OrderID,
		"status":   payment.Status,
		"amount":   payment.Amount,
		"currency": payment.Currency,
	})
}

// GetPayment returns the current payment record for an order.
// GET /v1/payments/:order_id
func (pc *PaymentController) GetPayment(c *gin.Context) {
	orderID := c.Param("order_id")
	payment, err := pc.repo.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownOrder) {
			utils.NotFound(c, "No payment found for this order")
			return
		}
		utils.LogError("Payment lookup failed for order %s: %v", orderID, err)
		utils.InternalServerError(c, "Failed to fetch payment", nil)
		return
	}

	utils.Success(c, "Payment retrieved successfully", payment)
}
