package services

import (
	"fmt"
	"sync"

	"github.com/SahanWeer/StayLanka/models"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory PaymentStore mirroring the repository's
// conditional-update semantics, so the services can be tested without a
// database.
type fakeStore struct {
	mu            sync.Mutex
	payments      map[string]*models.Payment
	bookings      map[string]*models.Booking
	notifications []*models.PaymentNotification

	failWrites    bool
	createCalls   int
	completeCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		payments: make(map[string]*models.Payment),
		bookings: make(map[string]*models.Booking),
	}
}

func (f *fakeStore) addBooking(b *models.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[b.OrderID] = b
}

func (f *fakeStore) CreatePending(payment *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return fmt.Errorf("%w: fake store down", ErrPersistenceFailure)
	}
	if _, ok := f.payments[payment.OrderID]; ok {
		return fmt.Errorf("%w: order %s", ErrDuplicatePayment, payment.OrderID)
	}
	f.createCalls++
	payment.Status = models.PaymentStatusPending
	cp := *payment
	f.payments[payment.OrderID] = &cp
	return nil
}

func (f *fakeStore) FindByOrderID(orderID string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOrder, orderID)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) FindBookingByOrderID(orderID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOrder, orderID)
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) TransitionStatus(orderID, expectedStatus, newStatus, gatewayCode, gatewayPaymentID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return false, fmt.Errorf("%w: fake store down", ErrPersistenceFailure)
	}
	p, ok := f.payments[orderID]
	if !ok || p.Status != expectedStatus {
		return false, nil
	}
	p.Status = newStatus
	p.GatewayStatusCode = gatewayCode
	p.GatewayPaymentID = gatewayPaymentID
	p.HashVerified = true
	return true, nil
}

func (f *fakeStore) CompletePayment(orderID, gatewayCode, gatewayPaymentID string, commission decimal.Decimal) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return false, fmt.Errorf("%w: fake store down", ErrPersistenceFailure)
	}
	p, ok := f.payments[orderID]
	if !ok || p.Status != models.PaymentStatusPending {
		return false, nil
	}
	f.completeCalls++
	p.Status = models.PaymentStatusCompleted
	p.GatewayStatusCode = gatewayCode
	p.GatewayPaymentID = gatewayPaymentID
	p.HashVerified = true
	c := commission
	p.CommissionAmount = &c
	return true, nil
}

func (f *fakeStore) RecordNotification(n *models.PaymentNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return fmt.Errorf("%w: fake store down", ErrPersistenceFailure)
	}
	cp := *n
	f.notifications = append(f.notifications, &cp)
	return nil
}

func (f *fakeStore) UpdateNotificationOutcome(n *models.PaymentNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.notifications {
		if existing.ID == n.ID {
			existing.Outcome = n.Outcome
			existing.OutcomeDetail = n.OutcomeDetail
			existing.HashVerified = n.HashVerified
			return nil
		}
	}
	return fmt.Errorf("%w: notification %s not found", ErrPersistenceFailure, n.ID)
}

func (f *fakeStore) notificationsFor(orderID string) []*models.PaymentNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.PaymentNotification
	for _, n := range f.notifications {
		if n.OrderID == orderID {
			out = append(out, n)
		}
	}
	return out
}

// fakeAlerter records conflict alerts instead of sending mail.
type fakeAlerter struct {
	mu    sync.Mutex
	calls []string
}

func (a *fakeAlerter) SendConflictAlert(orderID, recordedStatus, incomingStatus string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, fmt.Sprintf("%s:%s->%s", orderID, recordedStatus, incomingStatus))
	return nil
}
