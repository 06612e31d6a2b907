package postgres

import (
	"context"

	"github.com/roomtrack/roomtrack/internal/domain/stats"
)

// AdminStats counts users by role alongside the property total.
func (s *Store) AdminStats(ctx context.Context) (*stats.AdminOverview, error) {
	var ov stats.AdminOverview
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM properties),
			(SELECT count(*) FROM users WHERE role = 'landlord'),
			(SELECT count(*) FROM users WHERE role = 'tenant')`,
	).Scan(&ov.TotalUsers, &ov.TotalProperties, &ov.TotalLandlords, &ov.TotalTenants)
	if err != nil {
		return nil, storeFail(err, "admin stats")
	}
	return &ov, nil
}

// LandlordStats aggregates the landlord's portfolio. Occupied units come
// from the write-through counter on properties; expected rent sums the
// rent of currently occupied units.
func (s *Store) LandlordStats(ctx context.Context, landlordID string) (*stats.LandlordOverview, error) {
	var ov stats.LandlordOverview
	err := s.pool.QueryRow(ctx, `
		SELECT
			count(*),
			COALESCE(sum(total_units), 0),
			COALESCE(sum(occupied_units), 0)
		FROM properties WHERE landlord_id = $1`, landlordID,
	).Scan(&ov.TotalProperties, &ov.TotalUnits, &ov.OccupiedUnits)
	if err != nil {
		return nil, storeFail(err, "landlord stats for %s", landlordID)
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(sum(u.rent_amount), 0)
		FROM units u
		JOIN properties p ON p.id = u.property_id
		WHERE p.landlord_id = $1 AND u.status = 'occupied'`, landlordID,
	).Scan(&ov.ExpectedRent)
	if err != nil {
		return nil, storeFail(err, "landlord rent roll for %s", landlordID)
	}
	return &ov, nil
}
