package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/roomtrack/roomtrack/internal/domain/property"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/database"
)

// PropertyService handles property and unit management.
type PropertyService struct {
	store database.Store
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(store database.Store) *PropertyService {
	return &PropertyService{store: store}
}

// Create registers a property under the acting landlord. Admins may
// create on behalf of a landlord by setting req.LandlordID.
func (s *PropertyService) Create(ctx context.Context, actor *user.User, req property.CreateRequest) (*property.Property, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	landlordID := actor.ID
	if actor.IsAdmin() && req.LandlordID != "" {
		landlordID = req.LandlordID
	} else if actor.Role != user.RoleLandlord && !actor.IsAdmin() {
		return nil, forbid("property creation requires landlord or admin")
	}

	p := property.Property{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Address:    req.Address,
		TotalUnits: req.TotalUnits,
		LandlordID: landlordID,
	}
	if err := s.store.CreateProperty(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Get returns a property by ID.
func (s *PropertyService) Get(ctx context.Context, id string) (*property.Property, error) {
	return s.store.GetProperty(ctx, id)
}

// List returns properties scoped to the actor: admins see all, landlords
// their own.
func (s *PropertyService) List(ctx context.Context, actor *user.User) ([]property.Property, error) {
	if actor.IsAdmin() {
		return s.store.ListProperties(ctx)
	}
	return s.store.ListPropertiesByLandlord(ctx, actor.ID)
}

// CreateUnit adds a unit to a property the actor manages.
func (s *PropertyService) CreateUnit(ctx context.Context, actor *user.User, propertyID string, req property.CreateUnitRequest) (*property.Unit, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.store.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !canManageProperty(actor, p) {
		return nil, forbid("property %s is not managed by user %s", propertyID, actor.ID)
	}

	u := property.Unit{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		UnitNumber: req.UnitNumber,
		RentAmount: req.RentAmount,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		SquareFeet: req.SquareFeet,
	}
	if err := s.store.CreateUnit(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUnits returns a property's units.
func (s *PropertyService) ListUnits(ctx context.Context, propertyID string) ([]property.Unit, error) {
	return s.store.ListUnitsByProperty(ctx, propertyID)
}

// UpdateUnitRent changes a unit's advertised rent. Active leases keep
// the rent captured at assignment.
func (s *PropertyService) UpdateUnitRent(ctx context.Context, actor *user.User, unitID string, rent float64) error {
	if rent <= 0 {
		return invalid("rent_amount must be positive")
	}

	_, p, err := propertyOfUnit(ctx, s.store, unitID)
	if err != nil {
		return err
	}
	if !canManageProperty(actor, p) {
		return forbid("unit %s is not managed by user %s", unitID, actor.ID)
	}
	return s.store.UpdateUnitRent(ctx, unitID, rent)
}
