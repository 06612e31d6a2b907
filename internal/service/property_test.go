package service

import (
	"context"
	"errors"
	"testing"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/property"
	"github.com/roomtrack/roomtrack/internal/domain/user"
)

func TestPropertyService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewPropertyService(f.store)

	p, err := svc.Create(ctx, f.landlord, property.CreateRequest{
		Name:       "Hilltop Flats",
		Address:    "Waiyaki Way",
		TotalUnits: 8,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.LandlordID != f.landlord.ID {
		t.Errorf("landlord = %s, want actor %s", p.LandlordID, f.landlord.ID)
	}
	if p.OccupiedUnits != 0 {
		t.Errorf("occupied_units = %d, want 0", p.OccupiedUnits)
	}

	// Tenants may not create properties.
	if _, err := svc.Create(ctx, f.tenant, property.CreateRequest{
		Name: "X", Address: "Y", TotalUnits: 1,
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("tenant create: err = %v, want forbidden", err)
	}

	// Admins may create on behalf of a landlord.
	onBehalf, err := svc.Create(ctx, f.admin, property.CreateRequest{
		Name: "Admin Court", Address: "Moi Ave", TotalUnits: 3,
		LandlordID: f.landlord.ID,
	})
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if onBehalf.LandlordID != f.landlord.ID {
		t.Errorf("on-behalf landlord = %s, want %s", onBehalf.LandlordID, f.landlord.ID)
	}
}

func TestPropertyService_CreateUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewPropertyService(f.store)

	// Duplicate unit number within the property conflicts.
	_, err := svc.CreateUnit(ctx, f.landlord, f.prop.ID, property.CreateUnitRequest{
		UnitNumber: "A1",
		RentAmount: 12000,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate unit number: err = %v, want conflict", err)
	}

	// Foreign landlords may not add units.
	stranger := seedUser(t, f.store, "kamau", user.RoleLandlord)
	_, err = svc.CreateUnit(ctx, stranger, f.prop.ID, property.CreateUnitRequest{
		UnitNumber: "B1",
		RentAmount: 12000,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign landlord unit: err = %v, want forbidden", err)
	}

	u, err := svc.CreateUnit(ctx, f.landlord, f.prop.ID, property.CreateUnitRequest{
		UnitNumber: "B1",
		RentAmount: 12000,
		Bedrooms:   2,
	})
	if err != nil {
		t.Fatalf("create unit: %v", err)
	}
	if u.Status != property.UnitVacant {
		t.Errorf("new unit status = %s, want vacant", u.Status)
	}
}

func TestPropertyService_UpdateUnitRent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewPropertyService(f.store)

	if err := svc.UpdateUnitRent(ctx, f.landlord, f.unit.ID, 0); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("zero rent: err = %v, want validation", err)
	}

	stranger := seedUser(t, f.store, "kamau", user.RoleLandlord)
	if err := svc.UpdateUnitRent(ctx, stranger, f.unit.ID, 17000); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign rent update: err = %v, want forbidden", err)
	}

	if err := svc.UpdateUnitRent(ctx, f.landlord, f.unit.ID, 17000); err != nil {
		t.Fatalf("update rent: %v", err)
	}
	u, _ := f.store.GetUnit(ctx, f.unit.ID)
	if u.RentAmount != 17000 {
		t.Errorf("rent = %v, want 17000", u.RentAmount)
	}
}
