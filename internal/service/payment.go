package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roomtrack/roomtrack/internal/domain/lease"
	"github.com/roomtrack/roomtrack/internal/domain/notification"
	"github.com/roomtrack/roomtrack/internal/domain/payment"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/database"
)

// paymentDueDays is how long after submission a payment falls due.
const paymentDueDays = 30

// PaymentService drives the rent payment workflow: tenants submit
// payments against their active lease, landlords approve or reject them
// exactly once.
type PaymentService struct {
	store   database.Store
	emitter *NotificationService
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(store database.Store, emitter *NotificationService) *PaymentService {
	return &PaymentService{store: store, emitter: emitter}
}

// Submit records a pending rent payment. The amount is fixed to the
// lease's captured monthly rent, never the unit's current rent. At most
// one pending payment per lease per calendar month; the store rejects a
// concurrent duplicate at write time.
func (s *PaymentService) Submit(ctx context.Context, actor *user.User, req payment.SubmitRequest) (*payment.Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l, err := s.store.GetLease(ctx, req.LeaseID)
	if err != nil {
		return nil, err
	}
	if l.TenantID != actor.ID {
		return nil, forbid("lease %s does not belong to tenant %s", req.LeaseID, actor.ID)
	}
	if l.Status != lease.StatusActive {
		return nil, notFound("no active lease %s", req.LeaseID)
	}

	now := time.Now().UTC()
	p := payment.Payment{
		ID:              uuid.NewString(),
		LeaseID:         l.ID,
		Amount:          l.MonthlyRent,
		PaymentDate:     now,
		DueDate:         now.AddDate(0, 0, paymentDueDays),
		TransactionCode: req.TransactionCode,
		Method:          req.Method,
	}
	if err := s.store.CreatePayment(ctx, &p); err != nil {
		return nil, err
	}

	_, prop, err := propertyOfUnit(ctx, s.store, l.UnitID)
	if err != nil {
		slog.Warn("landlord lookup for payment notification failed", "lease", l.ID, "error", err)
		return &p, nil
	}
	s.emitter.Emit(ctx, notification.Event{
		RecipientID: prop.LandlordID,
		Title:       "Payment Submitted",
		Message:     fmt.Sprintf("A payment of KES %.2f is awaiting your review.", p.Amount),
		Type:        notification.TypePaymentSubmitted,
	})
	return &p, nil
}

// Decide approves or rejects a pending payment. The store's
// compare-and-swap guarantees a payment is decided at most once; the
// loser of a race gets a conflict. Approval marks the receipt generated.
func (s *PaymentService) Decide(ctx context.Context, actor *user.User, paymentID string, decision payment.Decision) (*payment.Payment, error) {
	var target payment.Status
	switch decision {
	case payment.DecisionApprove:
		target = payment.StatusApproved
	case payment.DecisionReject:
		target = payment.StatusRejected
	default:
		return nil, invalid("decision must be approve or reject")
	}

	p, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	l, err := s.store.GetLease(ctx, p.LeaseID)
	if err != nil {
		return nil, err
	}
	_, prop, err := propertyOfUnit(ctx, s.store, l.UnitID)
	if err != nil {
		return nil, err
	}
	if !canManageProperty(actor, prop) {
		return nil, forbid("payment %s is not managed by user %s", paymentID, actor.ID)
	}

	decided, err := s.store.DecidePayment(ctx, paymentID, target, target == payment.StatusApproved)
	if err != nil {
		return nil, err
	}

	ev := notification.Event{
		RecipientID: l.TenantID,
		Title:       "Payment Approved",
		Message:     fmt.Sprintf("Your payment of KES %.2f has been approved.", decided.Amount),
		Type:        notification.TypePaymentApproved,
	}
	if target == payment.StatusRejected {
		ev.Title = "Payment Rejected"
		ev.Message = fmt.Sprintf("Your payment of KES %.2f has been rejected.", decided.Amount)
		ev.Type = notification.TypePaymentRejected
	}
	s.emitter.Emit(ctx, ev)
	return decided, nil
}

// Get returns a payment by ID.
func (s *PaymentService) Get(ctx context.Context, id string) (*payment.Payment, error) {
	return s.store.GetPayment(ctx, id)
}

// ListForLease returns a lease's payments. Tenants see their own lease,
// landlords leases on their properties, admins any.
func (s *PaymentService) ListForLease(ctx context.Context, actor *user.User, leaseID string) ([]payment.Payment, error) {
	l, err := s.store.GetLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if l.TenantID != actor.ID && !actor.IsAdmin() {
		_, prop, err := propertyOfUnit(ctx, s.store, l.UnitID)
		if err != nil {
			return nil, err
		}
		if !canManageProperty(actor, prop) {
			return nil, forbid("lease %s is not visible to user %s", leaseID, actor.ID)
		}
	}
	return s.store.ListPaymentsByLease(ctx, leaseID)
}

// ListForLandlord returns payments across the landlord's portfolio.
func (s *PaymentService) ListForLandlord(ctx context.Context, actor *user.User) ([]payment.Payment, error) {
	if actor.Role != user.RoleLandlord && !actor.IsAdmin() {
		return nil, forbid("payment review requires landlord or admin")
	}
	return s.store.ListPaymentsByLandlord(ctx, actor.ID)
}
