package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/lease"
)

const leaseColumns = `id, tenant_id, unit_id, start_date, end_date, monthly_rent, security_deposit, status, created_at`

func scanLease(row scannable) (lease.Lease, error) {
	var l lease.Lease
	err := row.Scan(&l.ID, &l.TenantID, &l.UnitID, &l.StartDate, &l.EndDate,
		&l.MonthlyRent, &l.SecurityDeposit, &l.Status, &l.CreatedAt)
	return l, err
}

// AssignUnit creates an active lease over a vacant unit. In a single
// transaction it locks the unit row, captures its current rent as the
// lease's monthly rent, flips the unit to occupied (compare-and-swap),
// bumps the property counter, and inserts the lease. The partial unique
// indexes on active leases back the one-active-per-unit and
// one-active-per-tenant invariants against concurrent assignments.
func (s *Store) AssignUnit(ctx context.Context, l *lease.Lease) error {
	return s.inTx(ctx, "assign unit", func(tx pgx.Tx) error {
		var rent float64
		err := tx.QueryRow(ctx,
			`SELECT rent_amount FROM units WHERE id = $1 FOR UPDATE`, l.UnitID,
		).Scan(&rent)
		if err != nil {
			return notFoundWrap(err, "assign unit %s", l.UnitID)
		}

		if err := occupyUnitTx(ctx, tx, l.UnitID); err != nil {
			return err
		}

		l.MonthlyRent = rent
		l.Status = lease.StatusActive
		l.CreatedAt = time.Now().UTC()

		_, err = tx.Exec(ctx, `
			INSERT INTO leases (id, tenant_id, unit_id, start_date, end_date, monthly_rent, security_deposit, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			l.ID, l.TenantID, l.UnitID, l.StartDate, l.EndDate, l.MonthlyRent, l.SecurityDeposit, l.Status, l.CreatedAt,
		)
		if err != nil {
			switch {
			case isUniqueViolation(err):
				return fmt.Errorf("tenant %s already holds an active lease: %w", l.TenantID, domain.ErrConflict)
			case isForeignKeyViolation(err):
				return fmt.Errorf("tenant %s: %w", l.TenantID, domain.ErrNotFound)
			}
			return storeFail(err, "insert lease for unit %s", l.UnitID)
		}
		return nil
	})
}

func (s *Store) GetLease(ctx context.Context, id string) (*lease.Lease, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+leaseColumns+` FROM leases WHERE id = $1`, id)

	l, err := scanLease(row)
	if err != nil {
		return nil, notFoundWrap(err, "get lease %s", id)
	}
	return &l, nil
}

func (s *Store) ActiveLeaseByTenant(ctx context.Context, tenantID string) (*lease.Lease, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+leaseColumns+` FROM leases WHERE tenant_id = $1 AND status = 'active'`, tenantID)

	l, err := scanLease(row)
	if err != nil {
		return nil, notFoundWrap(err, "active lease for tenant %s", tenantID)
	}
	return &l, nil
}

func (s *Store) ListLeasesByTenant(ctx context.Context, tenantID string) ([]lease.Lease, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+leaseColumns+` FROM leases WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, storeFail(err, "list leases for tenant %s", tenantID)
	}
	defer rows.Close()

	var leases []lease.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, storeFail(err, "scan lease")
		}
		leases = append(leases, l)
	}
	return leases, rows.Err()
}

// TerminateLease ends an active lease and vacates its unit in one
// transaction. The CAS on lease status makes a double termination fail
// with a conflict rather than decrementing the counter twice.
func (s *Store) TerminateLease(ctx context.Context, id string, endDate time.Time) (*lease.Lease, error) {
	var l lease.Lease
	err := s.inTx(ctx, "terminate lease", func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE leases SET status = 'ended', end_date = $2
			WHERE id = $1 AND status = 'active'
			RETURNING `+leaseColumns, id, endDate)

		var scanErr error
		l, scanErr = scanLease(row)
		if scanErr != nil {
			if errors.Is(scanErr, pgx.ErrNoRows) {
				return s.classifyLeaseTerminate(ctx, tx, id)
			}
			return storeFail(scanErr, "terminate lease %s", id)
		}

		return vacateUnitTx(ctx, tx, l.UnitID)
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// classifyLeaseTerminate distinguishes a missing lease from an already
// ended one after the termination CAS matched no row.
func (s *Store) classifyLeaseTerminate(ctx context.Context, tx pgx.Tx, id string) error {
	var status lease.Status
	err := tx.QueryRow(ctx, `SELECT status FROM leases WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("lease %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return storeFail(err, "check lease %s", id)
	}
	return fmt.Errorf("lease %s already %s: %w", id, status, domain.ErrConflict)
}

// TenantLeasedFromLandlord reports whether the tenant has any lease,
// active or ended, on a unit in one of the landlord's properties.
func (s *Store) TenantLeasedFromLandlord(ctx context.Context, tenantID, landlordID string) (bool, error) {
	var one int
	err := s.pool.QueryRow(ctx, `
		SELECT 1 FROM leases l
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE l.tenant_id = $1 AND p.landlord_id = $2
		LIMIT 1`, tenantID, landlordID,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storeFail(err, "check tenant %s leases under landlord %s", tenantID, landlordID)
	}
	return true, nil
}
