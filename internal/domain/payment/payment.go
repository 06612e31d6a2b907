// Package payment defines the rent payment domain model.
package payment

import (
	"fmt"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain"
)

// Status is the workflow state of a payment. Transitions are one-way:
// pending moves to approved or rejected exactly once.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Method is the channel a tenant paid through.
type Method string

const (
	MethodMpesa Method = "mpesa"
	MethodBank  Method = "bank"
)

// ValidMethods is the set of accepted payment methods.
var ValidMethods = map[Method]bool{
	MethodMpesa: true,
	MethodBank:  true,
}

// Decision is a landlord's ruling on a pending payment.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Payment is a tenant-submitted rent payment against a lease. Amount is
// fixed at submission to the lease's monthly rent and never recomputed
// from later unit rent changes.
type Payment struct {
	ID               string    `json:"id"`
	LeaseID          string    `json:"lease_id"`
	Amount           float64   `json:"amount"`
	PaymentDate      time.Time `json:"payment_date"`
	DueDate          time.Time `json:"due_date"`
	TransactionCode  string    `json:"transaction_code"`
	Method           Method    `json:"payment_method"`
	Status           Status    `json:"status"`
	ReceiptGenerated bool      `json:"receipt_generated"`
	CreatedAt        time.Time `json:"created_at"`
}

// SubmitRequest is the input for submitting a rent payment.
type SubmitRequest struct {
	LeaseID         string `json:"lease_id"`
	TransactionCode string `json:"transaction_code"`
	Method          Method `json:"payment_method"`
}

// Validate checks that the SubmitRequest has all required fields.
func (r *SubmitRequest) Validate() error {
	if r.LeaseID == "" {
		return fmt.Errorf("%w: lease_id is required", domain.ErrValidation)
	}
	if r.TransactionCode == "" {
		return fmt.Errorf("%w: transaction_code is required", domain.ErrValidation)
	}
	if !ValidMethods[r.Method] {
		return fmt.Errorf("%w: payment_method must be mpesa or bank", domain.ErrValidation)
	}
	return nil
}

// PeriodStart returns the first day of the calendar month containing t,
// the billing-period boundary used to rate-limit submissions per lease.
func PeriodStart(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
