// Package service contains application services. Services enforce
// role-based access on top of the store and translate lifecycle
// operations into post-commit notification events.
package service

import (
	"context"
	"fmt"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/property"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/database"
)

// canManageProperty reports whether the actor may administer the
// property: admins always, landlords only their own.
func canManageProperty(actor *user.User, p *property.Property) bool {
	return actor.IsAdmin() || (actor.Role == user.RoleLandlord && p.LandlordID == actor.ID)
}

// propertyOfUnit resolves the property owning a unit.
func propertyOfUnit(ctx context.Context, store database.Store, unitID string) (*property.Unit, *property.Property, error) {
	u, err := store.GetUnit(ctx, unitID)
	if err != nil {
		return nil, nil, err
	}
	p, err := store.GetProperty(ctx, u.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	return u, p, nil
}

// forbid builds a domain.ErrForbidden with a short reason.
func forbid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrForbidden)
}

// invalid builds a domain.ErrValidation with a short reason.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}

// notFound builds a domain.ErrNotFound with a short reason.
func notFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrNotFound)
}
