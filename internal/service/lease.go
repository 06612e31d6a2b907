package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roomtrack/roomtrack/internal/domain/lease"
	"github.com/roomtrack/roomtrack/internal/domain/notification"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/database"
)

// LeaseService drives the lease lifecycle: assigning tenants to vacant
// units, terminating active leases, and removing tenants. The store makes
// each transition atomic with its occupancy update; this service adds
// authorization and post-commit notifications.
type LeaseService struct {
	store   database.Store
	emitter *NotificationService
}

// NewLeaseService creates a new LeaseService.
func NewLeaseService(store database.Store, emitter *NotificationService) *LeaseService {
	return &LeaseService{store: store, emitter: emitter}
}

// Assign places a tenant on a vacant unit. The actor must manage the
// unit's property. The lease captures the unit's current rent; the unit
// flips to occupied and the property counter is bumped in the same
// transaction as the insert.
func (s *LeaseService) Assign(ctx context.Context, actor *user.User, req lease.AssignRequest) (*lease.Lease, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, p, err := propertyOfUnit(ctx, s.store, req.UnitID)
	if err != nil {
		return nil, err
	}
	if !canManageProperty(actor, p) {
		return nil, forbid("unit %s is not managed by user %s", req.UnitID, actor.ID)
	}

	tenant, err := s.store.GetUser(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant.Role != user.RoleTenant {
		return nil, invalid("user %s is not a tenant", req.TenantID)
	}

	l := lease.Lease{
		ID:              uuid.NewString(),
		TenantID:        req.TenantID,
		UnitID:          req.UnitID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		SecurityDeposit: req.SecurityDeposit,
	}
	if err := s.store.AssignUnit(ctx, &l); err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx,
		notification.Event{
			RecipientID: l.TenantID,
			Title:       "Lease Assigned",
			Message:     fmt.Sprintf("You have been assigned a unit at KES %.2f per month.", l.MonthlyRent),
			Type:        notification.TypeLeaseAssigned,
		},
		notification.Event{
			RecipientID: p.LandlordID,
			Title:       "Unit Occupied",
			Message:     fmt.Sprintf("Unit in %s is now occupied by %s.", p.Name, tenant.Username),
			Type:        notification.TypeLeaseAssigned,
		},
	)
	return &l, nil
}

// Terminate ends an active lease and vacates its unit. Landlords may
// terminate leases on their own properties; admins any lease.
func (s *LeaseService) Terminate(ctx context.Context, actor *user.User, leaseID string) (*lease.Lease, error) {
	l, err := s.store.GetLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	_, p, err := propertyOfUnit(ctx, s.store, l.UnitID)
	if err != nil {
		return nil, err
	}
	if !canManageProperty(actor, p) {
		return nil, forbid("lease %s is not managed by user %s", leaseID, actor.ID)
	}

	ended, err := s.store.TerminateLease(ctx, leaseID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, notification.Event{
		RecipientID: ended.TenantID,
		Title:       "Lease Ended",
		Message:     fmt.Sprintf("Your lease at %s has been terminated.", p.Name),
		Type:        notification.TypeLeaseEnded,
	})
	return ended, nil
}

// Get returns a lease by ID.
func (s *LeaseService) Get(ctx context.Context, id string) (*lease.Lease, error) {
	return s.store.GetLease(ctx, id)
}

// ActiveForTenant returns the tenant's current active lease, if any.
func (s *LeaseService) ActiveForTenant(ctx context.Context, tenantID string) (*lease.Lease, error) {
	return s.store.ActiveLeaseByTenant(ctx, tenantID)
}

// ListForTenant returns a tenant's lease history, newest first.
func (s *LeaseService) ListForTenant(ctx context.Context, tenantID string) ([]lease.Lease, error) {
	return s.store.ListLeasesByTenant(ctx, tenantID)
}

// DeleteTenant removes a tenant and every dependent record atomically.
// Admins may delete any tenant; landlords only tenants who have leased
// from them. Fails while the tenant holds an active lease anywhere.
func (s *LeaseService) DeleteTenant(ctx context.Context, actor *user.User, tenantID string) error {
	switch {
	case actor.IsAdmin():
	case actor.Role == user.RoleLandlord:
		leased, err := s.store.TenantLeasedFromLandlord(ctx, tenantID, actor.ID)
		if err != nil {
			return err
		}
		if !leased {
			return forbid("tenant %s has never leased from landlord %s", tenantID, actor.ID)
		}
	default:
		return forbid("tenant deletion requires landlord or admin")
	}

	return s.store.DeleteTenantCascade(ctx, tenantID)
}
