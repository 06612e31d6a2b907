package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roomtrack/roomtrack/internal/adapter/memory"
	"github.com/roomtrack/roomtrack/internal/domain/lease"
	"github.com/roomtrack/roomtrack/internal/domain/notification"
	"github.com/roomtrack/roomtrack/internal/domain/property"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/notifier"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// mockNotifier implements notifier.Notifier for testing.
type mockNotifier struct {
	name       string
	delivered  []notification.Event
	deliverErr error
}

func (m *mockNotifier) Name() string { return m.name }
func (m *mockNotifier) Deliver(_ context.Context, ev notification.Event) error {
	if m.deliverErr != nil {
		return m.deliverErr
	}
	m.delivered = append(m.delivered, ev)
	return nil
}

// fixture wires the services onto a fresh in-memory store with one
// landlord, one tenant, and a two-unit property.
type fixture struct {
	store     *memory.Store
	transport *mockNotifier
	emitter   *NotificationService

	admin    *user.User
	landlord *user.User
	tenant   *user.User
	prop     *property.Property
	unit     *property.Unit
	unit2    *property.Unit
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	transport := &mockNotifier{name: "mock"}

	f := &fixture{
		store:     store,
		transport: transport,
		emitter:   NewNotificationService(store, []notifier.Notifier{transport}),
		admin:     seedUser(t, store, "root", user.RoleAdmin),
		landlord:  seedUser(t, store, "wanjiku", user.RoleLandlord),
		tenant:    seedUser(t, store, "otieno", user.RoleTenant),
	}
	f.prop = seedProperty(t, store, f.landlord.ID, "Green Court", 2)
	f.unit = seedUnit(t, store, f.prop.ID, "A1", 15000)
	f.unit2 = seedUnit(t, store, f.prop.ID, "A2", 18000)
	return f
}

func seedUser(t *testing.T, store *memory.Store, name string, role user.Role) *user.User {
	t.Helper()
	u := user.User{
		ID:       uuid.NewString(),
		Username: name,
		Email:    name + "@test.com",
		Role:     role,
	}
	if err := store.CreateUser(context.Background(), &u); err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return &u
}

func seedProperty(t *testing.T, store *memory.Store, landlordID, name string, totalUnits int) *property.Property {
	t.Helper()
	p := property.Property{
		ID:         uuid.NewString(),
		Name:       name,
		Address:    "Ngong Road",
		TotalUnits: totalUnits,
		LandlordID: landlordID,
	}
	if err := store.CreateProperty(context.Background(), &p); err != nil {
		t.Fatalf("seed property %s: %v", name, err)
	}
	return &p
}

func seedUnit(t *testing.T, store *memory.Store, propertyID, number string, rent float64) *property.Unit {
	t.Helper()
	u := property.Unit{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		UnitNumber: number,
		RentAmount: rent,
		Bedrooms:   1,
		Bathrooms:  1,
	}
	if err := store.CreateUnit(context.Background(), &u); err != nil {
		t.Fatalf("seed unit %s: %v", number, err)
	}
	return &u
}

// assignFixtureLease puts the fixture tenant on the fixture unit.
func assignFixtureLease(t *testing.T, f *fixture) *lease.Lease {
	t.Helper()
	svc := NewLeaseService(f.store, f.emitter)
	l, err := svc.Assign(context.Background(), f.landlord, lease.AssignRequest{
		TenantID:  f.tenant.ID,
		UnitID:    f.unit.ID,
		StartDate: date(2026, 1, 1),
		EndDate:   date(2027, 1, 1),
	})
	if err != nil {
		t.Fatalf("assign lease: %v", err)
	}
	return l
}
