// Package maintenance defines the maintenance request domain model.
package maintenance

import (
	"fmt"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain"
)

// Status is the progress state of a maintenance request.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// statusRank orders statuses for forward-only transitions.
var statusRank = map[Status]int{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusCompleted:  2,
}

// Urgency classifies how pressing a request is.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// ValidUrgencies is the set of accepted urgency levels.
var ValidUrgencies = map[Urgency]bool{
	UrgencyLow:       true,
	UrgencyMedium:    true,
	UrgencyHigh:      true,
	UrgencyEmergency: true,
}

// Request is a tenant-filed maintenance request against a unit.
type Request struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	UnitID      string    `json:"unit_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Urgency     Urgency   `json:"urgency"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CanTransition reports whether a request may move from to the given
// status. Progress is linear; moving backward is not allowed.
func CanTransition(from, to Status) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// CreateRequest is the input for filing a maintenance request.
type CreateRequest struct {
	UnitID      string  `json:"unit_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Urgency     Urgency `json:"urgency"`
}

// Validate checks that the CreateRequest has all required fields. An empty
// urgency defaults to medium.
func (r *CreateRequest) Validate() error {
	if r.UnitID == "" {
		return fmt.Errorf("%w: unit_id is required", domain.ErrValidation)
	}
	if r.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if r.Description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if r.Urgency == "" {
		r.Urgency = UrgencyMedium
	}
	if !ValidUrgencies[r.Urgency] {
		return fmt.Errorf("%w: urgency must be low, medium, high, or emergency", domain.ErrValidation)
	}
	return nil
}
