package repository

import (
	"errors"
	"fmt"

	"github.com/SahanWeer/StayLanka/models"
	"github.com/SahanWeer/StayLanka/services"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentRepository is the GORM-backed services.PaymentStore. Every write
// that finalizes a payment is a conditional update keyed on the expected
// prior status, so concurrent deliveries cannot double-apply a transition
// even across processes. All queries are parameterized through GORM.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) CreatePending(payment *models.Payment) error {
	payment.Status = models.PaymentStatusPending
	if err := r.db.Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: order %s", services.ErrDuplicatePayment, payment.OrderID)
		}
		return fmt.Errorf("%w: %v", services.ErrPersistenceFailure, err)
	}
	return nil
}

func (r *PaymentRepository) FindByOrderID(orderID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", services.ErrUnknownOrder, orderID)
		}
		return nil, fmt.Errorf("%w: %v", services.ErrPersistenceFailure, err)
	}
	return &payment, nil
}

func (r *PaymentRepository) FindBookingByOrderID(orderID string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Where("order_id = ?", orderID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", services.ErrUnknownOrder, orderID)
		}
		return nil, fmt.Errorf("%w: %v", services.ErrPersistenceFailure, err)
	}
	return &booking, nil
}

func (r *PaymentRepository) TransitionStatus(orderID, expectedStatus, newStatus, gatewayCode, gatewayPaymentID string) (bool, error) {
	res := r.db.Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", orderID, expectedStatus).
		Updates(map[string]interface{}{
			"status":              newStatus,
			"gateway_status_code": gatewayCode,
			"gateway_payment_id":  gatewayPaymentID,
			"hash_verified":       true,
		})
	if res.Error != nil {
		return false, fmt.Errorf("%w: %v", services.ErrPersistenceFailure, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// CompletePayment moves a PENDING payment to COMPLETED and stores the
// commission in the same transaction. A partial write here would decouple
// the status from the commission, so both go or neither does.
func (r *PaymentRepository) CompletePayment(orderID, gatewayCode, gatewayPaymentID string, commission decimal.Decimal) (bool, error) {
	var moved bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Payment{}).
			Where("order_id = ? AND status = ?", orderID, models.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":              models.PaymentStatusCompleted,
				"gateway_status_code": gatewayCode,
				"gateway_payment_id":  gatewayPaymentID,
				"commission_amount":   commission,
				"hash_verified":       true,
			})
		if res.Error != nil {
			return res.Error
		}
		moved = res.RowsAffected == 1
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", services.ErrPersistenceFailure, err)
	}
	return moved, nil
}

func (r *PaymentRepository) RecordNotification(n *models.PaymentNotification) error {
	if err := r.db.Create(n).Error; err != nil {
		return fmt.Errorf("%w: %v", services.ErrPersistenceFailure, err)
	}
	return nil
}

func (r *PaymentRepository) UpdateNotificationOutcome(n *models.PaymentNotification) error {
	res := r.db.Model(&models.PaymentNotification{}).
		Where("id = ?", n.ID).
		Updates(map[string]interface{}{
			"outcome":        n.Outcome,
			"outcome_detail": n.OutcomeDetail,
			"hash_verified":  n.HashVerified,
		})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", services.ErrPersistenceFailure, res.Error)
	}
	return nil
}

// ListPayments returns a page of payments, newest first, optionally
// filtered by status. Used by the admin review surface.
func (r *PaymentRepository) ListPayments(status string, limit, offset int) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", services.ErrPersistenceFailure, err)
	}

	var payments []models.Payment
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", services.ErrPersistenceFailure, err)
	}
	return payments, total, nil
}

// ListNotifications returns the full audit history for an order, oldest
// first, so the sequence of raw gateway codes can be reconstructed.
func (r *PaymentRepository) ListNotifications(orderID string) ([]models.PaymentNotification, error) {
	var notifications []models.PaymentNotification
	if err := r.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrPersistenceFailure, err)
	}
	return notifications, nil
}
