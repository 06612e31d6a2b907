// Package database defines the persistence port. Implementations must make
// every multi-row operation atomic: a lease transition and its occupancy
// counter update either both apply or neither does.
package database

import (
	"context"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain/lease"
	"github.com/roomtrack/roomtrack/internal/domain/maintenance"
	"github.com/roomtrack/roomtrack/internal/domain/message"
	"github.com/roomtrack/roomtrack/internal/domain/notification"
	"github.com/roomtrack/roomtrack/internal/domain/payment"
	"github.com/roomtrack/roomtrack/internal/domain/property"
	"github.com/roomtrack/roomtrack/internal/domain/stats"
	"github.com/roomtrack/roomtrack/internal/domain/user"
)

// Store is the port interface for durable entity storage.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByUsername(ctx context.Context, username string) (*user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	// DeleteTenantCascade removes the tenant's payments, maintenance
	// requests, leases, messages, notifications, and finally the user
	// record in one transaction. Fails with domain.ErrConflict while the
	// tenant holds an active lease anywhere.
	DeleteTenantCascade(ctx context.Context, tenantID string) error

	// Properties and units
	CreateProperty(ctx context.Context, p *property.Property) error
	GetProperty(ctx context.Context, id string) (*property.Property, error)
	ListProperties(ctx context.Context) ([]property.Property, error)
	ListPropertiesByLandlord(ctx context.Context, landlordID string) ([]property.Property, error)
	CreateUnit(ctx context.Context, u *property.Unit) error
	GetUnit(ctx context.Context, id string) (*property.Unit, error)
	ListUnitsByProperty(ctx context.Context, propertyID string) ([]property.Unit, error)
	// UpdateUnitRent changes the advertised rent of a unit. Existing
	// leases keep their captured monthly rent.
	UpdateUnitRent(ctx context.Context, unitID string, rent float64) error

	// Occupancy. Both operations compare-and-swap the unit status and
	// adjust the owning property's occupied counter in one transaction,
	// failing with domain.ErrConflict when the unit is already in the
	// target state. Lease operations below apply the same logic inside
	// their own transactions.
	MarkUnitOccupied(ctx context.Context, unitID string) error
	MarkUnitVacant(ctx context.Context, unitID string) error

	// Leases. AssignUnit captures MonthlyRent from the unit row inside
	// the transaction, flips the unit to occupied (ErrConflict when not
	// vacant), and bumps the property counter. TerminateLease is the
	// reverse and returns the updated lease.
	AssignUnit(ctx context.Context, l *lease.Lease) error
	GetLease(ctx context.Context, id string) (*lease.Lease, error)
	ActiveLeaseByTenant(ctx context.Context, tenantID string) (*lease.Lease, error)
	ListLeasesByTenant(ctx context.Context, tenantID string) ([]lease.Lease, error)
	TerminateLease(ctx context.Context, id string, endDate time.Time) (*lease.Lease, error)
	// TenantLeasedFromLandlord reports whether the tenant holds or ever
	// held a lease on a unit in one of the landlord's properties.
	TenantLeasedFromLandlord(ctx context.Context, tenantID, landlordID string) (bool, error)

	// Payments. CreatePayment rejects a second pending payment for the
	// same lease within the same calendar month with domain.ErrConflict,
	// enforced at write time. DecidePayment transitions pending to the
	// given terminal status exactly once.
	CreatePayment(ctx context.Context, p *payment.Payment) error
	GetPayment(ctx context.Context, id string) (*payment.Payment, error)
	ListPaymentsByLease(ctx context.Context, leaseID string) ([]payment.Payment, error)
	ListPaymentsByLandlord(ctx context.Context, landlordID string) ([]payment.Payment, error)
	DecidePayment(ctx context.Context, id string, status payment.Status, receiptGenerated bool) (*payment.Payment, error)

	// Maintenance requests
	CreateMaintenanceRequest(ctx context.Context, r *maintenance.Request) error
	GetMaintenanceRequest(ctx context.Context, id string) (*maintenance.Request, error)
	// UpdateMaintenanceStatus compare-and-swaps the status from the
	// expected current value and returns the updated request.
	UpdateMaintenanceStatus(ctx context.Context, id string, from, to maintenance.Status) (*maintenance.Request, error)
	ListMaintenanceByTenant(ctx context.Context, tenantID string) ([]maintenance.Request, error)
	ListMaintenanceByLandlord(ctx context.Context, landlordID string) ([]maintenance.Request, error)

	// Messages
	CreateMessage(ctx context.Context, m *message.Message) error
	GetMessage(ctx context.Context, id string) (*message.Message, error)
	ListMessagesForUser(ctx context.Context, userID string) ([]message.Message, error)
	MarkMessageRead(ctx context.Context, id string) error

	// Notifications
	CreateNotification(ctx context.Context, n *notification.Notification) error
	GetNotification(ctx context.Context, id string) (*notification.Notification, error)
	ListNotificationsForUser(ctx context.Context, userID string) ([]notification.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error

	// Dashboard aggregates
	AdminStats(ctx context.Context) (*stats.AdminOverview, error)
	LandlordStats(ctx context.Context, landlordID string) (*stats.LandlordOverview, error)
}
