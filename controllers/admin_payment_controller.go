package controllers

import (
	"github.com/SahanWeer/StayLanka/models"
	"github.com/SahanWeer/StayLanka/utils"
	"github.com/gin-gonic/gin"
)

// PaymentLister is the listing access the review surface needs. Satisfied
// by repository.PaymentRepository.
type PaymentLister interface {
	ListPayments(status string, limit, offset int) ([]models.Payment, int64, error)
	ListNotifications(orderID string) ([]models.PaymentNotification, error)
}

// AdminPaymentController exposes the review surface: payment listings and
// the raw notification history behind each one.
type AdminPaymentController struct {
	repo PaymentLister
}

func NewAdminPaymentController(repo PaymentLister) *AdminPaymentController {
	return &AdminPaymentController{repo: repo}
}

// ListPayments returns a page of payments, optionally filtered by status.
// GET /v1/admin/payments?status=COMPLETED&page=1&limit=20
func (ac *AdminPaymentController) ListPayments(c *gin.Context) {
	utils.LogInfo("Admin payment listing called")

	pagination := utils.NewPagination(c)
	status := c.Query("status")

	payments, total, err := ac.repo.ListPayments(status, pagination.Limit, pagination.Offset)
	if err != nil {
		utils.LogError("Failed to list payments: %v", err)
		utils.InternalServerError(c, "Failed to list payments", nil)
		return
	}
	pagination.SetTotal(total)

	utils.SendPaginatedResponse(c, payments, pagination)
}

// ListNotifications returns the append-only notification audit trail for
// an order, oldest first.
// GET /v1/admin/payments/:order_id/notifications
func (ac *AdminPaymentController) ListNotifications(c *gin.Context) {
	orderID := c.Param("order_id")
	utils.LogInfo("Admin notification history called for order %s", orderID)

	notifications, err := ac.repo.ListNotifications(orderID)
	if err != nil {
		utils.LogError("Failed to list notifications for order %s: %v", orderID, err)
		utils.InternalServerError(c, "Failed to list notifications", nil)
		return
	}

	utils.Success(c, "Notification history retrieved successfully", gin.H{
		"order_id":      orderID,
		"notifications": notifications,
	})
}
