package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roomtrack/roomtrack/internal/domain/maintenance"
	"github.com/roomtrack/roomtrack/internal/domain/notification"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/database"
)

// MaintenanceService handles maintenance requests: tenants file them
// against the unit they lease, landlords advance them through the
// pending -> in_progress -> completed pipeline.
type MaintenanceService struct {
	store   database.Store
	emitter *NotificationService
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(store database.Store, emitter *NotificationService) *MaintenanceService {
	return &MaintenanceService{store: store, emitter: emitter}
}

// File creates a maintenance request. The actor must hold the active
// lease on the unit.
func (s *MaintenanceService) File(ctx context.Context, actor *user.User, req maintenance.CreateRequest) (*maintenance.Request, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l, err := s.store.ActiveLeaseByTenant(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if l.UnitID != req.UnitID {
		return nil, forbid("tenant %s does not lease unit %s", actor.ID, req.UnitID)
	}

	r := maintenance.Request{
		ID:          uuid.NewString(),
		TenantID:    actor.ID,
		UnitID:      req.UnitID,
		Title:       req.Title,
		Description: req.Description,
		Urgency:     req.Urgency,
	}
	if err := s.store.CreateMaintenanceRequest(ctx, &r); err != nil {
		return nil, err
	}

	_, prop, err := propertyOfUnit(ctx, s.store, req.UnitID)
	if err != nil {
		slog.Warn("landlord lookup for maintenance notification failed", "request", r.ID, "unit", req.UnitID, "error", err)
		return &r, nil
	}
	s.emitter.Emit(ctx, notification.Event{
		RecipientID: prop.LandlordID,
		Title:       "Maintenance Request Filed",
		Message:     fmt.Sprintf("%s filed: %s (%s)", actor.Username, r.Title, r.Urgency),
		Type:        notification.TypeMaintenanceFiled,
	})
	return &r, nil
}

// Advance moves a request to the given status. Progress is forward-only;
// the store's compare-and-swap resolves racing updates to one winner.
func (s *MaintenanceService) Advance(ctx context.Context, actor *user.User, requestID string, to maintenance.Status) (*maintenance.Request, error) {
	r, err := s.store.GetMaintenanceRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	_, prop, err := propertyOfUnit(ctx, s.store, r.UnitID)
	if err != nil {
		return nil, err
	}
	if !canManageProperty(actor, prop) {
		return nil, forbid("maintenance request %s is not managed by user %s", requestID, actor.ID)
	}
	if !maintenance.CanTransition(r.Status, to) {
		return nil, invalid("cannot move maintenance request from %s to %s", r.Status, to)
	}

	updated, err := s.store.UpdateMaintenanceStatus(ctx, requestID, r.Status, to)
	if err != nil {
		return nil, err
	}

	ev := notification.Event{
		RecipientID: updated.TenantID,
		Title:       "Maintenance Update",
		Message:     fmt.Sprintf("Your request %q is now %s.", updated.Title, updated.Status),
		Type:        notification.TypeMaintenanceUpdated,
	}
	if updated.Status == maintenance.StatusCompleted {
		ev.Title = "Maintenance Completed"
		ev.Type = notification.TypeMaintenanceCompleted
	}
	s.emitter.Emit(ctx, ev)
	return updated, nil
}

// Get returns a maintenance request by ID.
func (s *MaintenanceService) Get(ctx context.Context, id string) (*maintenance.Request, error) {
	return s.store.GetMaintenanceRequest(ctx, id)
}

// List returns requests scoped to the actor: tenants their own filings,
// landlords requests against their units.
func (s *MaintenanceService) List(ctx context.Context, actor *user.User) ([]maintenance.Request, error) {
	if actor.Role == user.RoleTenant {
		return s.store.ListMaintenanceByTenant(ctx, actor.ID)
	}
	return s.store.ListMaintenanceByLandlord(ctx, actor.ID)
}
