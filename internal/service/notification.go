package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roomtrack/roomtrack/internal/domain/notification"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/database"
	"github.com/roomtrack/roomtrack/internal/port/notifier"
)

// NotificationService persists notification records and fans events out to
// delivery transports. Emission happens after the originating transaction
// has committed, so a failed business operation never produces a
// notification and a failed delivery never rolls one back.
type NotificationService struct {
	store     database.Store
	notifiers []notifier.Notifier
}

// NewNotificationService creates a NotificationService with the given
// delivery transports. An empty transport list stores records only.
func NewNotificationService(store database.Store, notifiers []notifier.Notifier) *NotificationService {
	return &NotificationService{store: store, notifiers: notifiers}
}

// Emit stores one notification record per event and hands each event to
// every transport. Failures are logged and never returned; the business
// operation that produced the events has already committed.
func (s *NotificationService) Emit(ctx context.Context, events ...notification.Event) {
	for _, ev := range events {
		n := notification.Notification{
			ID:      uuid.NewString(),
			UserID:  ev.RecipientID,
			Title:   ev.Title,
			Message: ev.Message,
			Type:    ev.Type,
		}
		if err := s.store.CreateNotification(ctx, &n); err != nil {
			slog.Error("notification store failed", "recipient", ev.RecipientID, "type", ev.Type, "error", err)
			continue
		}

		for _, transport := range s.notifiers {
			if err := transport.Deliver(ctx, ev); err != nil {
				slog.Warn("notification delivery failed",
					"transport", transport.Name(),
					"recipient", ev.RecipientID,
					"type", ev.Type,
					"error", err,
				)
			}
		}
	}
}

// ListForUser returns the actor's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, actor *user.User) ([]notification.Notification, error) {
	return s.store.ListNotificationsForUser(ctx, actor.ID)
}

// MarkRead flips a notification's read flag. Only the recipient may mark
// it; repeat marks are idempotent.
func (s *NotificationService) MarkRead(ctx context.Context, actor *user.User, id string) error {
	n, err := s.store.GetNotification(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != actor.ID {
		return forbid("notification %s does not belong to user %s", id, actor.ID)
	}
	if n.IsRead {
		return nil
	}
	return s.store.MarkNotificationRead(ctx, id)
}
