package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/message"
)

const messageColumns = `id, sender_id, receiver_id, subject, body, is_read, created_at`

func scanMessage(row scannable) (message.Message, error) {
	var m message.Message
	err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Subject, &m.Body, &m.IsRead, &m.CreatedAt)
	return m, err
}

func (s *Store) CreateMessage(ctx context.Context, m *message.Message) error {
	m.IsRead = false
	m.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO messages (id, sender_id, receiver_id, subject, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.SenderID, m.ReceiverID, m.Subject, m.Body, m.IsRead, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create message to %s: %w", m.ReceiverID, domain.ErrNotFound)
		}
		return storeFail(err, "create message to %s", m.ReceiverID)
	}
	return nil
}

func (s *Store) GetMessage(ctx context.Context, id string) (*message.Message, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id)

	m, err := scanMessage(row)
	if err != nil {
		return nil, notFoundWrap(err, "get message %s", id)
	}
	return &m, nil
}

// ListMessagesForUser returns messages the user sent or received,
// newest first.
func (s *Store) ListMessagesForUser(ctx context.Context, userID string) ([]message.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, storeFail(err, "list messages for user %s", userID)
	}
	defer rows.Close()

	var msgs []message.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, storeFail(err, "scan message")
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// MarkMessageRead flips the read flag. Marking an already-read message
// is a no-op, so the update is unconditional on is_read.
func (s *Store) MarkMessageRead(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE messages SET is_read = TRUE WHERE id = $1`, id)
	return execExpectOne(tag, err, "mark message %s read", id)
}
