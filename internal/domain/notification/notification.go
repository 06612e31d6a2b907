// Package notification defines the notification record and the post-commit
// events lifecycle operations emit.
package notification

import "time"

// Type classifies a notification for the consuming client.
type Type string

const (
	TypeLeaseAssigned        Type = "lease_assigned"
	TypeLeaseEnded           Type = "lease_ended"
	TypePaymentSubmitted     Type = "payment_submitted"
	TypePaymentApproved      Type = "payment_approved"
	TypePaymentRejected      Type = "payment_rejected"
	TypeMaintenanceFiled     Type = "maintenance_filed"
	TypeMaintenanceUpdated   Type = "maintenance_updated"
	TypeMaintenanceCompleted Type = "maintenance_completed"
)

// Notification is a durable per-user notification record. IsRead flips
// false to true exactly once; repeat marks are idempotent.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is produced by a lifecycle operation after its transaction commits.
// The emitter converts events into Notification records and hands them to
// delivery transports. Keeping events out of the core transaction keeps the
// occupancy and payment invariants independent of delivery.
type Event struct {
	RecipientID string `json:"recipient_id"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Type        Type   `json:"type"`
}
