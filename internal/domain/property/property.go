// Package property defines the property and unit domain models.
//
// A Property's OccupiedUnits counter is denormalized write-through state:
// it is mutated only inside the same transaction as the triggering unit
// status change and is the authoritative occupancy figure at read time.
package property

import (
	"fmt"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain"
)

// UnitStatus is the occupancy state of a unit.
type UnitStatus string

const (
	UnitVacant   UnitStatus = "vacant"
	UnitOccupied UnitStatus = "occupied"
)

// Property is a building owned by exactly one landlord.
type Property struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	TotalUnits    int       `json:"total_units"`
	OccupiedUnits int       `json:"occupied_units"`
	LandlordID    string    `json:"landlord_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Unit is a single rentable space within a property. A unit is occupied
// iff it has exactly one active lease; its status is written only by the
// lease lifecycle, never independently.
type Unit struct {
	ID         string     `json:"id"`
	PropertyID string     `json:"property_id"`
	UnitNumber string     `json:"unit_number"`
	RentAmount float64    `json:"rent_amount"`
	Status     UnitStatus `json:"status"`
	Bedrooms   int        `json:"bedrooms"`
	Bathrooms  int        `json:"bathrooms"`
	SquareFeet int        `json:"square_feet,omitempty"`
}

// CreateRequest is the input for registering a new property.
type CreateRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	TotalUnits int    `json:"total_units"`
	LandlordID string `json:"landlord_id,omitempty"` // defaults to the caller for landlords
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: property name is required", domain.ErrValidation)
	}
	if r.Address == "" {
		return fmt.Errorf("%w: address is required", domain.ErrValidation)
	}
	if r.TotalUnits < 1 {
		return fmt.Errorf("%w: total_units must be >= 1", domain.ErrValidation)
	}
	return nil
}

// CreateUnitRequest is the input for adding a unit to a property.
type CreateUnitRequest struct {
	UnitNumber string  `json:"unit_number"`
	RentAmount float64 `json:"rent_amount"`
	Bedrooms   int     `json:"bedrooms"`
	Bathrooms  int     `json:"bathrooms"`
	SquareFeet int     `json:"square_feet,omitempty"`
}

// Validate checks that the CreateUnitRequest has all required fields.
func (r *CreateUnitRequest) Validate() error {
	if r.UnitNumber == "" {
		return fmt.Errorf("%w: unit_number is required", domain.ErrValidation)
	}
	if r.RentAmount <= 0 {
		return fmt.Errorf("%w: rent_amount must be positive", domain.ErrValidation)
	}
	return nil
}
