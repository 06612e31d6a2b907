package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/notification"
)

const notificationColumns = `id, user_id, title, message, type, is_read, created_at`

func scanNotification(row scannable) (notification.Notification, error) {
	var n notification.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt)
	return n, err
}

func (s *Store) CreateNotification(ctx context.Context, n *notification.Notification) error {
	n.IsRead = false
	n.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.UserID, n.Title, n.Message, n.Type, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create notification for user %s: %w", n.UserID, domain.ErrNotFound)
		}
		return storeFail(err, "create notification for user %s", n.UserID)
	}
	return nil
}

func (s *Store) GetNotification(ctx context.Context, id string) (*notification.Notification, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)

	n, err := scanNotification(row)
	if err != nil {
		return nil, notFoundWrap(err, "get notification %s", id)
	}
	return &n, nil
}

func (s *Store) ListNotificationsForUser(ctx context.Context, userID string) ([]notification.Notification, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, storeFail(err, "list notifications for user %s", userID)
	}
	defer rows.Close()

	var notes []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, storeFail(err, "scan notification")
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// MarkNotificationRead flips the read flag; repeat marks are idempotent.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	return execExpectOne(tag, err, "mark notification %s read", id)
}
