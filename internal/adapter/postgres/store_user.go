package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/user"
)

const userColumns = `id, username, email, password_hash, role, full_name, id_number, passport_number, phone, created_at`

func scanUser(row scannable) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.FullName, &u.IDNumber, &u.PassportNumber, &u.Phone, &u.CreatedAt)
	return u, err
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	u.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, role, full_name, id_number, passport_number, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.FullName, u.IDNumber, u.PassportNumber, u.Phone, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: username or email taken: %w", u.Username, domain.ErrConflict)
		}
		return storeFail(err, "create user %s", u.Username)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*user.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundWrap(err, "get user %s", id)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)

	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundWrap(err, "get user by username %s", username)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, storeFail(err, "list users")
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeFail(err, "scan user")
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteTenantCascade removes a tenant and every dependent record in one
// transaction, in FK-safe order: payments, maintenance requests, leases,
// messages, notifications, then the user row itself. Only ended leases are
// deleted; an active lease keeps its leases.tenant_id reference alive, so
// the final user delete hits the FK and the whole cascade rolls back. That
// holds even when the lease is assigned concurrently with this transaction,
// after the advisory count below.
func (s *Store) DeleteTenantCascade(ctx context.Context, tenantID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return storeFail(err, "begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var active int
	err = tx.QueryRow(ctx,
		`SELECT count(*) FROM leases WHERE tenant_id = $1 AND status = 'active'`, tenantID,
	).Scan(&active)
	if err != nil {
		return storeFail(err, "check active leases for tenant %s", tenantID)
	}
	if active > 0 {
		return fmt.Errorf("tenant %s still holds an active lease: %w", tenantID, domain.ErrConflict)
	}

	steps := []struct {
		desc string
		sql  string
	}{
		{"delete payments", `DELETE FROM payments WHERE lease_id IN (SELECT id FROM leases WHERE tenant_id = $1 AND status = 'ended')`},
		{"delete maintenance requests", `DELETE FROM maintenance_requests WHERE tenant_id = $1`},
		{"delete leases", `DELETE FROM leases WHERE tenant_id = $1 AND status = 'ended'`},
		{"delete messages", `DELETE FROM messages WHERE sender_id = $1 OR receiver_id = $1`},
		{"delete notifications", `DELETE FROM notifications WHERE user_id = $1`},
	}
	for _, step := range steps {
		if _, err := tx.Exec(ctx, step.sql, tenantID); err != nil {
			return storeFail(err, "%s for tenant %s", step.desc, tenantID)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1 AND role = 'tenant'`, tenantID)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("tenant %s still holds an active lease: %w", tenantID, domain.ErrConflict)
	}
	if err := execExpectOne(tag, err, "delete tenant %s", tenantID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return storeFail(err, "commit tenant delete")
	}
	return nil
}
