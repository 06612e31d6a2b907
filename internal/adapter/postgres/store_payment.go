package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/payment"
)

const paymentColumns = `id, lease_id, amount, payment_date, due_date, transaction_code, payment_method, status, receipt_generated, created_at`

func scanPayment(row scannable) (payment.Payment, error) {
	var p payment.Payment
	err := row.Scan(&p.ID, &p.LeaseID, &p.Amount, &p.PaymentDate, &p.DueDate,
		&p.TransactionCode, &p.Method, &p.Status, &p.ReceiptGenerated, &p.CreatedAt)
	return p, err
}

// CreatePayment inserts a pending payment. The partial unique index on
// (lease, billing month) rejects a second pending payment for the same
// lease in the same calendar month at write time, so two racing
// submissions yield exactly one success.
func (s *Store) CreatePayment(ctx context.Context, p *payment.Payment) error {
	p.Status = payment.StatusPending
	p.ReceiptGenerated = false
	p.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO payments (id, lease_id, amount, payment_date, due_date, transaction_code, payment_method, status, receipt_generated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.LeaseID, p.Amount, p.PaymentDate, p.DueDate, p.TransactionCode, p.Method, p.Status, p.ReceiptGenerated, p.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("pending payment already exists for lease %s this period: %w", p.LeaseID, domain.ErrConflict)
		case isForeignKeyViolation(err):
			return fmt.Errorf("lease %s: %w", p.LeaseID, domain.ErrNotFound)
		}
		return storeFail(err, "create payment for lease %s", p.LeaseID)
	}
	return nil
}

func (s *Store) GetPayment(ctx context.Context, id string) (*payment.Payment, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)

	p, err := scanPayment(row)
	if err != nil {
		return nil, notFoundWrap(err, "get payment %s", id)
	}
	return &p, nil
}

func (s *Store) ListPaymentsByLease(ctx context.Context, leaseID string) ([]payment.Payment, error) {
	return s.listPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE lease_id = $1 ORDER BY created_at DESC`, leaseID)
}

// ListPaymentsByLandlord returns payments across all leases on units in
// the landlord's properties, newest first.
func (s *Store) ListPaymentsByLandlord(ctx context.Context, landlordID string) ([]payment.Payment, error) {
	return s.listPayments(ctx, `
		SELECT p.id, p.lease_id, p.amount, p.payment_date, p.due_date, p.transaction_code, p.payment_method, p.status, p.receipt_generated, p.created_at
		FROM payments p
		JOIN leases l ON l.id = p.lease_id
		JOIN units u ON u.id = l.unit_id
		JOIN properties pr ON pr.id = u.property_id
		WHERE pr.landlord_id = $1
		ORDER BY p.created_at DESC`, landlordID)
}

func (s *Store) listPayments(ctx context.Context, sql string, args ...any) ([]payment.Payment, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeFail(err, "list payments")
	}
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, storeFail(err, "scan payment")
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// DecidePayment transitions a pending payment to the given terminal
// status. The CAS on status guarantees a payment is decided at most once;
// a second decision fails with a conflict.
func (s *Store) DecidePayment(ctx context.Context, id string, status payment.Status, receiptGenerated bool) (*payment.Payment, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE payments SET status = $2, receipt_generated = $3
		WHERE id = $1 AND status = 'pending'
		RETURNING `+paymentColumns, id, status, receiptGenerated)

	p, err := scanPayment(row)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storeFail(err, "decide payment %s", id)
	}

	var current payment.Status
	err = s.pool.QueryRow(ctx, `SELECT status FROM payments WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, storeFail(err, "check payment %s", id)
	}
	return nil, fmt.Errorf("payment %s already %s: %w", id, current, domain.ErrConflict)
}
