// Package lease defines the lease domain model.
package lease

import (
	"fmt"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain"
)

// Status is the lifecycle state of a lease.
type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Lease binds one tenant to one unit over [StartDate, EndDate). At most
// one active lease exists per unit and per tenant. MonthlyRent is captured
// from the unit's rent at assignment time and never changes afterward.
type Lease struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenant_id"`
	UnitID          string    `json:"unit_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	MonthlyRent     float64   `json:"monthly_rent"`
	SecurityDeposit float64   `json:"security_deposit"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// AssignRequest is the input for assigning a tenant to a vacant unit.
type AssignRequest struct {
	TenantID        string    `json:"tenant_id"`
	UnitID          string    `json:"unit_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	SecurityDeposit float64   `json:"security_deposit"`
}

// Validate checks that the AssignRequest has all required fields and a
// coherent term.
func (r *AssignRequest) Validate() error {
	if r.TenantID == "" {
		return fmt.Errorf("%w: tenant_id is required", domain.ErrValidation)
	}
	if r.UnitID == "" {
		return fmt.Errorf("%w: unit_id is required", domain.ErrValidation)
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if !r.EndDate.After(r.StartDate) {
		return fmt.Errorf("%w: end_date must be after start_date", domain.ErrValidation)
	}
	if r.SecurityDeposit < 0 {
		return fmt.Errorf("%w: security_deposit must not be negative", domain.ErrValidation)
	}
	return nil
}
