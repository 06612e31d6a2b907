package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/maintenance"
)

const maintenanceColumns = `id, tenant_id, unit_id, title, description, urgency, status, created_at, updated_at`

func scanMaintenance(row scannable) (maintenance.Request, error) {
	var r maintenance.Request
	err := row.Scan(&r.ID, &r.TenantID, &r.UnitID, &r.Title, &r.Description,
		&r.Urgency, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (s *Store) CreateMaintenanceRequest(ctx context.Context, r *maintenance.Request) error {
	r.Status = maintenance.StatusPending
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt

	_, err := s.pool.Exec(ctx, `
		INSERT INTO maintenance_requests (id, tenant_id, unit_id, title, description, urgency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.TenantID, r.UnitID, r.Title, r.Description, r.Urgency, r.Status, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create maintenance request for unit %s: %w", r.UnitID, domain.ErrNotFound)
		}
		return storeFail(err, "create maintenance request for unit %s", r.UnitID)
	}
	return nil
}

func (s *Store) GetMaintenanceRequest(ctx context.Context, id string) (*maintenance.Request, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+maintenanceColumns+` FROM maintenance_requests WHERE id = $1`, id)

	r, err := scanMaintenance(row)
	if err != nil {
		return nil, notFoundWrap(err, "get maintenance request %s", id)
	}
	return &r, nil
}

// UpdateMaintenanceStatus advances a request from one status to the next.
// The CAS on the from-status means two racing updates yield one success;
// the loser sees a conflict with the status that beat it.
func (s *Store) UpdateMaintenanceStatus(ctx context.Context, id string, from, to maintenance.Status) (*maintenance.Request, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE maintenance_requests SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+maintenanceColumns, id, from, to)

	r, err := scanMaintenance(row)
	if err == nil {
		return &r, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storeFail(err, "update maintenance request %s", id)
	}

	var current maintenance.Status
	err = s.pool.QueryRow(ctx, `SELECT status FROM maintenance_requests WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("maintenance request %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, storeFail(err, "check maintenance request %s", id)
	}
	return nil, fmt.Errorf("maintenance request %s is %s, not %s: %w", id, current, from, domain.ErrConflict)
}

func (s *Store) ListMaintenanceByTenant(ctx context.Context, tenantID string) ([]maintenance.Request, error) {
	return s.listMaintenance(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_requests WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
}

// ListMaintenanceByLandlord returns requests against units in the
// landlord's properties, newest first.
func (s *Store) ListMaintenanceByLandlord(ctx context.Context, landlordID string) ([]maintenance.Request, error) {
	return s.listMaintenance(ctx, `
		SELECT m.id, m.tenant_id, m.unit_id, m.title, m.description, m.urgency, m.status, m.created_at, m.updated_at
		FROM maintenance_requests m
		JOIN units u ON u.id = m.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.landlord_id = $1
		ORDER BY m.created_at DESC`, landlordID)
}

func (s *Store) listMaintenance(ctx context.Context, sql string, args ...any) ([]maintenance.Request, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeFail(err, "list maintenance requests")
	}
	defer rows.Close()

	var reqs []maintenance.Request
	for rows.Next() {
		r, err := scanMaintenance(rows)
		if err != nil {
			return nil, storeFail(err, "scan maintenance request")
		}
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}
