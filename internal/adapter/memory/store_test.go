package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/lease"
	"github.com/roomtrack/roomtrack/internal/domain/payment"
	"github.com/roomtrack/roomtrack/internal/domain/property"
	"github.com/roomtrack/roomtrack/internal/domain/user"
)

func seed(t *testing.T) (*Store, *user.User, *property.Property, *property.Unit) {
	t.Helper()
	s := NewStore()
	ctx := context.Background()

	landlord := &user.User{ID: uuid.NewString(), Username: "landlord", Email: "l@test.com", Role: user.RoleLandlord}
	if err := s.CreateUser(ctx, landlord); err != nil {
		t.Fatal(err)
	}
	tenant := &user.User{ID: uuid.NewString(), Username: "tenant", Email: "t@test.com", Role: user.RoleTenant}
	if err := s.CreateUser(ctx, tenant); err != nil {
		t.Fatal(err)
	}

	p := &property.Property{ID: uuid.NewString(), Name: "Court", Address: "Rd", TotalUnits: 1, LandlordID: landlord.ID}
	if err := s.CreateProperty(ctx, p); err != nil {
		t.Fatal(err)
	}
	u := &property.Unit{ID: uuid.NewString(), PropertyID: p.ID, UnitNumber: "A1", RentAmount: 10000}
	if err := s.CreateUnit(ctx, u); err != nil {
		t.Fatal(err)
	}
	return s, tenant, p, u
}

func TestStore_OccupancySwap(t *testing.T) {
	s, _, p, u := seed(t)
	ctx := context.Background()

	if err := s.MarkUnitOccupied(ctx, u.ID); err != nil {
		t.Fatalf("occupy: %v", err)
	}
	// A second occupation must lose the swap and leave the counter alone.
	if err := s.MarkUnitOccupied(ctx, u.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("double occupy: err = %v, want conflict", err)
	}

	got, _ := s.GetProperty(ctx, p.ID)
	if got.OccupiedUnits != 1 {
		t.Errorf("occupied_units = %d, want 1", got.OccupiedUnits)
	}

	if err := s.MarkUnitVacant(ctx, u.ID); err != nil {
		t.Fatalf("vacate: %v", err)
	}
	if err := s.MarkUnitVacant(ctx, u.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("double vacate: err = %v, want conflict", err)
	}
	got, _ = s.GetProperty(ctx, p.ID)
	if got.OccupiedUnits != 0 {
		t.Errorf("occupied_units = %d, want 0", got.OccupiedUnits)
	}
}

func TestStore_PendingPaymentPerPeriod(t *testing.T) {
	s, tenant, _, u := seed(t)
	ctx := context.Background()

	l := &lease.Lease{
		ID: uuid.NewString(), TenantID: tenant.ID, UnitID: u.ID,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.AssignUnit(ctx, l); err != nil {
		t.Fatalf("assign: %v", err)
	}

	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	first := &payment.Payment{ID: uuid.NewString(), LeaseID: l.ID, Amount: l.MonthlyRent, PaymentDate: jan, DueDate: jan.AddDate(0, 0, 30), TransactionCode: "A", Method: payment.MethodMpesa}
	if err := s.CreatePayment(ctx, first); err != nil {
		t.Fatalf("first payment: %v", err)
	}

	// Same lease, same calendar month: rejected while the first is pending.
	dup := &payment.Payment{ID: uuid.NewString(), LeaseID: l.ID, Amount: l.MonthlyRent, PaymentDate: jan.AddDate(0, 0, 5), DueDate: jan.AddDate(0, 0, 35), TransactionCode: "B", Method: payment.MethodBank}
	if err := s.CreatePayment(ctx, dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate pending: err = %v, want conflict", err)
	}

	// A different month is fine.
	feb := jan.AddDate(0, 1, 0)
	next := &payment.Payment{ID: uuid.NewString(), LeaseID: l.ID, Amount: l.MonthlyRent, PaymentDate: feb, DueDate: feb.AddDate(0, 0, 30), TransactionCode: "C", Method: payment.MethodMpesa}
	if err := s.CreatePayment(ctx, next); err != nil {
		t.Fatalf("next month payment: %v", err)
	}

	// Deciding the first frees its month.
	if _, err := s.DecidePayment(ctx, first.ID, payment.StatusApproved, true); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if err := s.CreatePayment(ctx, dup); err != nil {
		t.Fatalf("resubmit after decision: %v", err)
	}
}

func TestStore_AssignUnit_RentCapture(t *testing.T) {
	s, tenant, _, u := seed(t)
	ctx := context.Background()

	l := &lease.Lease{
		ID: uuid.NewString(), TenantID: tenant.ID, UnitID: u.ID,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.AssignUnit(ctx, l); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if l.MonthlyRent != 10000 {
		t.Errorf("captured rent = %v, want 10000", l.MonthlyRent)
	}

	if err := s.UpdateUnitRent(ctx, u.ID, 12000); err != nil {
		t.Fatalf("update rent: %v", err)
	}
	got, _ := s.GetLease(ctx, l.ID)
	if got.MonthlyRent != 10000 {
		t.Errorf("lease rent after unit change = %v, want 10000", got.MonthlyRent)
	}
}

func TestStore_DeleteTenantCascade(t *testing.T) {
	s, tenant, p, u := seed(t)
	ctx := context.Background()

	l := &lease.Lease{
		ID: uuid.NewString(), TenantID: tenant.ID, UnitID: u.ID,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.AssignUnit(ctx, l); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if err := s.DeleteTenantCascade(ctx, tenant.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("delete with active lease: err = %v, want conflict", err)
	}

	// The refused delete must not touch the lease or the occupancy state.
	if got, err := s.GetLease(ctx, l.ID); err != nil || got.Status != lease.StatusActive {
		t.Fatalf("lease after refused delete = %+v, %v; want active", got, err)
	}
	if gotUnit, _ := s.GetUnit(ctx, u.ID); gotUnit.Status != property.UnitOccupied {
		t.Errorf("unit status after refused delete = %s, want occupied", gotUnit.Status)
	}
	if gotProp, _ := s.GetProperty(ctx, p.ID); gotProp.OccupiedUnits != 1 {
		t.Errorf("occupied_units after refused delete = %d, want 1", gotProp.OccupiedUnits)
	}

	if _, err := s.TerminateLease(ctx, l.ID, time.Now().UTC()); err != nil {
		t.Fatalf("terminate: %v", err)
	}
	if err := s.DeleteTenantCascade(ctx, tenant.ID); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}

	if _, err := s.GetUser(ctx, tenant.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("tenant still exists: err = %v", err)
	}
	if _, err := s.GetLease(ctx, l.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("lease still exists: err = %v", err)
	}
}
