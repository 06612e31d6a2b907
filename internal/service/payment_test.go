package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/notification"
	"github.com/roomtrack/roomtrack/internal/domain/payment"
	"github.com/roomtrack/roomtrack/internal/domain/property"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/database"
)

// unitlessStore fails every unit lookup, simulating a store where the
// landlord behind a lease cannot be resolved.
type unitlessStore struct {
	database.Store
}

func (s *unitlessStore) GetUnit(_ context.Context, id string) (*property.Unit, error) {
	return nil, fmt.Errorf("get unit %s: %w", id, domain.ErrNotFound)
}

func submitReq(leaseID string) payment.SubmitRequest {
	return payment.SubmitRequest{
		LeaseID:         leaseID,
		TransactionCode: "QX12ABC34",
		Method:          payment.MethodMpesa,
	}
}

func TestPaymentService_Submit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := assignFixtureLease(t, f)

	svc := NewPaymentService(f.store, f.emitter)
	p, err := svc.Submit(ctx, f.tenant, submitReq(l.ID))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if p.Amount != l.MonthlyRent {
		t.Errorf("amount = %v, want lease rent %v", p.Amount, l.MonthlyRent)
	}
	if p.Status != payment.StatusPending {
		t.Errorf("status = %s, want pending", p.Status)
	}
	if got := p.DueDate.Sub(p.PaymentDate); got != 30*24*time.Hour {
		t.Errorf("due date offset = %v, want 30 days", got)
	}

	notes, _ := f.store.ListNotificationsForUser(ctx, f.landlord.ID)
	found := false
	for _, n := range notes {
		if n.Type == notification.TypePaymentSubmitted {
			found = true
		}
	}
	if !found {
		t.Error("landlord missing payment_submitted notification")
	}
}

func TestPaymentService_Submit_AmountIgnoresRentChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := assignFixtureLease(t, f)

	// Raising the unit's advertised rent must not affect the lease.
	if err := f.store.UpdateUnitRent(ctx, f.unit.ID, 25000); err != nil {
		t.Fatalf("update rent: %v", err)
	}

	svc := NewPaymentService(f.store, f.emitter)
	p, err := svc.Submit(ctx, f.tenant, submitReq(l.ID))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if p.Amount != 15000 {
		t.Errorf("amount = %v, want captured rent 15000", p.Amount)
	}
}

func TestPaymentService_Submit_EndedLease(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := assignFixtureLease(t, f)

	if _, err := f.store.TerminateLease(ctx, l.ID, time.Now().UTC()); err != nil {
		t.Fatalf("terminate: %v", err)
	}

	svc := NewPaymentService(f.store, f.emitter)
	if _, err := svc.Submit(ctx, f.tenant, submitReq(l.ID)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("submit against ended lease: err = %v, want not found", err)
	}
}

func TestPaymentService_Submit_LandlordLookupFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := assignFixtureLease(t, f)

	svc := NewPaymentService(&unitlessStore{Store: f.store}, f.emitter)
	p, err := svc.Submit(ctx, f.tenant, submitReq(l.ID))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if p.Status != payment.StatusPending {
		t.Errorf("status = %s, want pending", p.Status)
	}

	// The payment stands, but no landlord notification was produced.
	notes, _ := f.store.ListNotificationsForUser(ctx, f.landlord.ID)
	for _, n := range notes {
		if n.Type == notification.TypePaymentSubmitted {
			t.Error("landlord notified despite failed property lookup")
		}
	}
}

func TestPaymentService_Submit_DuplicatePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := assignFixtureLease(t, f)

	svc := NewPaymentService(f.store, f.emitter)
	if _, err := svc.Submit(ctx, f.tenant, submitReq(l.ID)); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(ctx, f.tenant, submitReq(l.ID)); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second pending submit: err = %v, want conflict", err)
	}
}

func TestPaymentService_Submit_ForeignLease(t *testing.T) {
	f := newFixture(t)
	l := assignFixtureLease(t, f)
	other := seedUser(t, f.store, "akinyi", user.RoleTenant)

	svc := NewPaymentService(f.store, f.emitter)
	if _, err := svc.Submit(context.Background(), other, submitReq(l.ID)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("submit on foreign lease: err = %v, want forbidden", err)
	}
}

func TestPaymentService_Decide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := assignFixtureLease(t, f)

	svc := NewPaymentService(f.store, f.emitter)
	p, err := svc.Submit(ctx, f.tenant, submitReq(l.ID))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	decided, err := svc.Decide(ctx, f.landlord, p.ID, payment.DecisionApprove)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if decided.Status != payment.StatusApproved {
		t.Errorf("status = %s, want approved", decided.Status)
	}
	if !decided.ReceiptGenerated {
		t.Error("approved payment should have a receipt")
	}

	// Decisions are terminal: a second ruling conflicts.
	if _, err := svc.Decide(ctx, f.landlord, p.ID, payment.DecisionReject); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("double decide: err = %v, want conflict", err)
	}

	notes, _ := f.store.ListNotificationsForUser(ctx, f.tenant.ID)
	found := false
	for _, n := range notes {
		if n.Type == notification.TypePaymentApproved {
			found = true
		}
	}
	if !found {
		t.Error("tenant missing payment_approved notification")
	}
}

func TestPaymentService_Decide_Reject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := assignFixtureLease(t, f)

	svc := NewPaymentService(f.store, f.emitter)
	p, _ := svc.Submit(ctx, f.tenant, submitReq(l.ID))

	decided, err := svc.Decide(ctx, f.landlord, p.ID, payment.DecisionReject)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if decided.Status != payment.StatusRejected {
		t.Errorf("status = %s, want rejected", decided.Status)
	}
	if decided.ReceiptGenerated {
		t.Error("rejected payment must not have a receipt")
	}
}

func TestPaymentService_Decide_ForeignLandlord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := assignFixtureLease(t, f)
	stranger := seedUser(t, f.store, "kamau", user.RoleLandlord)

	svc := NewPaymentService(f.store, f.emitter)
	p, _ := svc.Submit(ctx, f.tenant, submitReq(l.ID))

	if _, err := svc.Decide(ctx, stranger, p.ID, payment.DecisionApprove); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign landlord decide: err = %v, want forbidden", err)
	}
}

func TestPaymentService_ListForLease_Access(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := assignFixtureLease(t, f)
	other := seedUser(t, f.store, "akinyi", user.RoleTenant)

	svc := NewPaymentService(f.store, f.emitter)
	if _, err := svc.Submit(ctx, f.tenant, submitReq(l.ID)); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.ListForLease(ctx, other, l.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign tenant list: err = %v, want forbidden", err)
	}
	for _, actor := range []*user.User{f.tenant, f.landlord, f.admin} {
		payments, err := svc.ListForLease(ctx, actor, l.ID)
		if err != nil {
			t.Fatalf("list as %s: %v", actor.Role, err)
		}
		if len(payments) != 1 {
			t.Errorf("list as %s = %d payments, want 1", actor.Role, len(payments))
		}
	}
}
