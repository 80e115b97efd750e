package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/SahanWeer/StayLanka/models"
	"github.com/SahanWeer/StayLanka/payhere"
	"github.com/SahanWeer/StayLanka/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notification is an inbound server-to-server callback from the gateway,
// fields exactly as received. Amount stays a raw string: the verification
// hash covers the gateway's own rendering of it.
type Notification struct {
	MerchantID string
	OrderID    string
	PaymentID  string
	Amount     string
	Currency   string
	StatusCode string
	Md5Sig     string
}

// TransitionResult reports what applying a notification did.
type TransitionResult struct {
	OrderID    string
	Status     string
	Applied    bool
	Commission *decimal.Decimal
}

// ConflictAlerter notifies an operator that a terminal payment received a
// conflicting notification and needs manual review.
type ConflictAlerter interface {
	SendConflictAlert(orderID, recordedStatus, incomingStatus string) error
}

// NotificationService applies gateway notifications to payment records.
// Concurrent deliveries for the same order serialize on a per-order mutex;
// different orders proceed in parallel. The store's conditional updates are
// the backstop: a transition that loses a race degrades to the idempotent
// or conflict path instead of double-applying.
type NotificationService struct {
	store      PaymentStore
	commission *CommissionCalculator
	merchant   MerchantConfig
	alerter    ConflictAlerter

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewNotificationService(store PaymentStore, commission *CommissionCalculator, merchant MerchantConfig, alerter ConflictAlerter) *NotificationService {
	return &NotificationService{
		store:      store,
		commission: commission,
		merchant:   merchant,
		alerter:    alerter,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (s *NotificationService) orderLock(orderID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[orderID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[orderID] = l
	}
	return l
}

// Apply validates and applies one notification. The raw payload is written
// to the audit trail before any validation, whatever the outcome. Callers
// should treat every returned error except ErrPersistenceFailure as a
// processed outcome: the gateway still gets a 200 so a forged or malformed
// message cannot force a retry storm.
func (s *NotificationService) Apply(n Notification) (*TransitionResult, error) {
	audit := &models.PaymentNotification{
		ID:          uuid.New().String(),
		OrderID:     n.OrderID,
		MerchantID:  n.MerchantID,
		PaymentID:   n.PaymentID,
		RawAmount:   n.Amount,
		RawCurrency: n.Currency,
		StatusCode:  n.StatusCode,
		Md5Sig:      n.Md5Sig,
	}

	lock := s.orderLock(n.OrderID)
	lock.Lock()
	defer lock.Unlock()

	// Raw payload goes to the audit trail before any validation; a payload
	// that fails validation later must still be on record.
	audit.Outcome = models.NotificationOutcomeReceived
	if err := s.store.RecordNotification(audit); err != nil {
		return nil, err
	}
	audit.Outcome = models.NotificationOutcomeRejected

	result, err := s.apply(n, audit)
	if auditErr := s.store.UpdateNotificationOutcome(audit); auditErr != nil {
		utils.LogError("Failed to record notification outcome for order %s: %v", n.OrderID, auditErr)
	}
	return result, err
}

func (s *NotificationService) apply(n Notification, audit *models.PaymentNotification) (*TransitionResult, error) {
	payment, err := s.store.FindByOrderID(n.OrderID)
	if err != nil {
		if errors.Is(err, ErrUnknownOrder) {
			// Records are created by checkout initiation only; a
			// notification never materializes one.
			audit.OutcomeDetail = "unknown order"
		}
		return nil, err
	}

	if !payhere.VerifyNotificationHash(n.Md5Sig, n.MerchantID, n.OrderID, n.Amount, n.Currency, n.StatusCode, s.merchant.MerchantSecret) {
		audit.OutcomeDetail = "hash mismatch"
		return nil, fmt.Errorf("%w: order %s", ErrInvalidSignature, n.OrderID)
	}
	audit.HashVerified = true

	target, err := mapStatusCode(n.StatusCode)
	if err != nil {
		audit.OutcomeDetail = fmt.Sprintf("status code %q", n.StatusCode)
		return nil, err
	}

	// Authorized-without-capture leaves the record PENDING; the capture
	// arrives as a later success notification.
	if target == models.PaymentStatusPending {
		audit.Outcome = models.NotificationOutcomeNoop
		return &TransitionResult{OrderID: n.OrderID, Status: payment.Status}, nil
	}

	// Re-delivery of an already recorded terminal outcome is a successful
	// no-op; gateways retry notifications.
	if payment.Status == target {
		audit.Outcome = models.NotificationOutcomeNoop
		return &TransitionResult{OrderID: n.OrderID, Status: payment.Status, Commission: payment.CommissionAmount}, nil
	}

	switch payment.Status {
	case models.PaymentStatusPending:
		if target == models.PaymentStatusRefunded {
			// A refund can only follow a completion.
			audit.OutcomeDetail = "refund for pending payment"
			return nil, fmt.Errorf("%w: order %s is PENDING, got refund", ErrConflictingStatus, n.OrderID)
		}
		return s.finalize(payment, n, target, audit)
	case models.PaymentStatusCompleted:
		if target == models.PaymentStatusRefunded {
			return s.refund(payment, n, audit)
		}
		fallthrough
	default:
		audit.OutcomeDetail = fmt.Sprintf("recorded %s, incoming %s", payment.Status, target)
		s.alertConflict(n.OrderID, payment.Status, target)
		return nil, fmt.Errorf("%w: order %s recorded %s, notification says %s", ErrConflictingStatus, n.OrderID, payment.Status, target)
	}
}

// finalize performs the PENDING→terminal transition. The conditional update
// can miss if a concurrent delivery finalized first; the record is then
// re-read and routed through the no-op or conflict path.
func (s *NotificationService) finalize(payment *models.Payment, n Notification, target string, audit *models.PaymentNotification) (*TransitionResult, error) {
	var (
		moved      bool
		err        error
		commission decimal.Decimal
	)
	if target == models.PaymentStatusCompleted {
		commission, err = s.commission.Calculate(payment.Amount)
		if err != nil {
			return nil, fmt.Errorf("commission for order %s: %w", n.OrderID, err)
		}
		moved, err = s.store.CompletePayment(n.OrderID, n.StatusCode, n.PaymentID, commission)
	} else {
		moved, err = s.store.TransitionStatus(n.OrderID, models.PaymentStatusPending, target, n.StatusCode, n.PaymentID)
	}
	if err != nil {
		return nil, err
	}
	if !moved {
		return s.reapply(n, audit)
	}

	audit.Outcome = models.NotificationOutcomeApplied
	result := &TransitionResult{OrderID: n.OrderID, Status: target, Applied: true}
	if target == models.PaymentStatusCompleted {
		result.Commission = &commission
	}
	return result, nil
}

func (s *NotificationService) refund(payment *models.Payment, n Notification, audit *models.PaymentNotification) (*TransitionResult, error) {
	moved, err := s.store.TransitionStatus(n.OrderID, models.PaymentStatusCompleted, models.PaymentStatusRefunded, n.StatusCode, n.PaymentID)
	if err != nil {
		return nil, err
	}
	if !moved {
		return s.reapply(n, audit)
	}
	audit.Outcome = models.NotificationOutcomeApplied
	// Commission stays as computed at completion.
	return &TransitionResult{OrderID: n.OrderID, Status: models.PaymentStatusRefunded, Applied: true, Commission: payment.CommissionAmount}, nil
}

// reapply re-reads the record after a lost conditional update and resolves
// the delivery as a no-op or a conflict against the fresh state.
func (s *NotificationService) reapply(n Notification, audit *models.PaymentNotification) (*TransitionResult, error) {
	payment, err := s.store.FindByOrderID(n.OrderID)
	if err != nil {
		return nil, err
	}
	target, err := mapStatusCode(n.StatusCode)
	if err != nil {
		return nil, err
	}
	if payment.Status == target {
		audit.Outcome = models.NotificationOutcomeNoop
		return &TransitionResult{OrderID: n.OrderID, Status: payment.Status, Commission: payment.CommissionAmount}, nil
	}
	audit.OutcomeDetail = fmt.Sprintf("recorded %s, incoming %s", payment.Status, target)
	s.alertConflict(n.OrderID, payment.Status, target)
	return nil, fmt.Errorf("%w: order %s recorded %s, notification says %s", ErrConflictingStatus, n.OrderID, payment.Status, target)
}

func (s *NotificationService) alertConflict(orderID, recorded, incoming string) {
	if s.alerter == nil {
		return
	}
	if err := s.alerter.SendConflictAlert(orderID, recorded, incoming); err != nil {
		utils.LogError("Failed to send conflict alert for order %s: %v", orderID, err)
	}
}

// mapStatusCode translates a raw gateway status code into the internal
// payment state it targets. PENDING means the authorized/intermediate code:
// accepted but applied as a no-op.
func mapStatusCode(code string) (string, error) {
	switch code {
	case payhere.StatusCodeSuccess:
		return models.PaymentStatusCompleted, nil
	case payhere.StatusCodeAuthorized:
		return models.PaymentStatusPending, nil
	case payhere.StatusCodeCancelled:
		return models.PaymentStatusCancelled, nil
	case payhere.StatusCodeFailed:
		return models.PaymentStatusFailed, nil
	case payhere.StatusCodeChargedBack:
		return models.PaymentStatusRefunded, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnmappedStatus, code)
	}
}
