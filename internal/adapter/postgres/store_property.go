package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/property"
)

const propertyColumns = `id, name, address, total_units, occupied_units, landlord_id, created_at`
const unitColumns = `id, property_id, unit_number, rent_amount, status, bedrooms, bathrooms, square_feet`

func scanProperty(row scannable) (property.Property, error) {
	var p property.Property
	err := row.Scan(&p.ID, &p.Name, &p.Address, &p.TotalUnits, &p.OccupiedUnits, &p.LandlordID, &p.CreatedAt)
	return p, err
}

func scanUnit(row scannable) (property.Unit, error) {
	var u property.Unit
	err := row.Scan(&u.ID, &u.PropertyID, &u.UnitNumber, &u.RentAmount, &u.Status, &u.Bedrooms, &u.Bathrooms, &u.SquareFeet)
	return u, err
}

func (s *Store) CreateProperty(ctx context.Context, p *property.Property) error {
	p.CreatedAt = time.Now().UTC()
	p.OccupiedUnits = 0

	_, err := s.pool.Exec(ctx, `
		INSERT INTO properties (id, name, address, total_units, occupied_units, landlord_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Address, p.TotalUnits, p.OccupiedUnits, p.LandlordID, p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create property %s: landlord %s: %w", p.Name, p.LandlordID, domain.ErrNotFound)
		}
		return storeFail(err, "create property %s", p.Name)
	}
	return nil
}

func (s *Store) GetProperty(ctx context.Context, id string) (*property.Property, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)

	p, err := scanProperty(row)
	if err != nil {
		return nil, notFoundWrap(err, "get property %s", id)
	}
	return &p, nil
}

func (s *Store) ListProperties(ctx context.Context) ([]property.Property, error) {
	return s.listProperties(ctx, `SELECT `+propertyColumns+` FROM properties ORDER BY created_at`)
}

func (s *Store) ListPropertiesByLandlord(ctx context.Context, landlordID string) ([]property.Property, error) {
	return s.listProperties(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE landlord_id = $1 ORDER BY created_at`, landlordID)
}

func (s *Store) listProperties(ctx context.Context, sql string, args ...any) ([]property.Property, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeFail(err, "list properties")
	}
	defer rows.Close()

	var props []property.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, storeFail(err, "scan property")
		}
		props = append(props, p)
	}
	return props, rows.Err()
}

func (s *Store) CreateUnit(ctx context.Context, u *property.Unit) error {
	u.Status = property.UnitVacant

	_, err := s.pool.Exec(ctx, `
		INSERT INTO units (id, property_id, unit_number, rent_amount, status, bedrooms, bathrooms, square_feet)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.PropertyID, u.UnitNumber, u.RentAmount, u.Status, u.Bedrooms, u.Bathrooms, u.SquareFeet,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("create unit %s: number taken in property: %w", u.UnitNumber, domain.ErrConflict)
		case isForeignKeyViolation(err):
			return fmt.Errorf("create unit %s: property %s: %w", u.UnitNumber, u.PropertyID, domain.ErrNotFound)
		}
		return storeFail(err, "create unit %s", u.UnitNumber)
	}
	return nil
}

func (s *Store) GetUnit(ctx context.Context, id string) (*property.Unit, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+unitColumns+` FROM units WHERE id = $1`, id)

	u, err := scanUnit(row)
	if err != nil {
		return nil, notFoundWrap(err, "get unit %s", id)
	}
	return &u, nil
}

func (s *Store) ListUnitsByProperty(ctx context.Context, propertyID string) ([]property.Unit, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+unitColumns+` FROM units WHERE property_id = $1 ORDER BY unit_number`, propertyID)
	if err != nil {
		return nil, storeFail(err, "list units for property %s", propertyID)
	}
	defer rows.Close()

	var units []property.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, storeFail(err, "scan unit")
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (s *Store) UpdateUnitRent(ctx context.Context, unitID string, rent float64) error {
	tag, err := s.pool.Exec(ctx, `UPDATE units SET rent_amount = $2 WHERE id = $1`, unitID, rent)
	return execExpectOne(tag, err, "update rent for unit %s", unitID)
}

// MarkUnitOccupied flips a vacant unit to occupied and bumps the owning
// property's counter in one transaction.
func (s *Store) MarkUnitOccupied(ctx context.Context, unitID string) error {
	return s.inTx(ctx, "mark occupied", func(tx pgx.Tx) error {
		return occupyUnitTx(ctx, tx, unitID)
	})
}

// MarkUnitVacant flips an occupied unit to vacant and decrements the
// owning property's counter in one transaction.
func (s *Store) MarkUnitVacant(ctx context.Context, unitID string) error {
	return s.inTx(ctx, "mark vacant", func(tx pgx.Tx) error {
		return vacateUnitTx(ctx, tx, unitID)
	})
}

// inTx runs fn inside a transaction, committing on nil and rolling back
// on error.
func (s *Store) inTx(ctx context.Context, desc string, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return storeFail(err, "begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeFail(err, "commit %s", desc)
	}
	return nil
}

// occupyUnitTx compare-and-swaps the unit from vacant to occupied and
// increments the property counter. The CAS on status means two racing
// occupations yield exactly one success and one conflict.
func occupyUnitTx(ctx context.Context, tx pgx.Tx, unitID string) error {
	return swapUnitStatusTx(ctx, tx, unitID, property.UnitVacant, property.UnitOccupied, +1)
}

// vacateUnitTx is the inverse of occupyUnitTx.
func vacateUnitTx(ctx context.Context, tx pgx.Tx, unitID string) error {
	return swapUnitStatusTx(ctx, tx, unitID, property.UnitOccupied, property.UnitVacant, -1)
}

func swapUnitStatusTx(ctx context.Context, tx pgx.Tx, unitID string, from, to property.UnitStatus, delta int) error {
	tag, err := tx.Exec(ctx,
		`UPDATE units SET status = $3 WHERE id = $1 AND status = $2`, unitID, from, to)
	if err != nil {
		return storeFail(err, "set unit %s %s", unitID, to)
	}
	if tag.RowsAffected() == 0 {
		var current property.UnitStatus
		err := tx.QueryRow(ctx, `SELECT status FROM units WHERE id = $1`, unitID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("unit %s: %w", unitID, domain.ErrNotFound)
		}
		if err != nil {
			return storeFail(err, "check unit %s", unitID)
		}
		return fmt.Errorf("unit %s already %s: %w", unitID, current, domain.ErrConflict)
	}

	_, err = tx.Exec(ctx, `
		UPDATE properties SET occupied_units = occupied_units + $2
		WHERE id = (SELECT property_id FROM units WHERE id = $1)`, unitID, delta)
	if err != nil {
		return storeFail(err, "adjust occupancy for unit %s", unitID)
	}
	return nil
}
