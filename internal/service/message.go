package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/roomtrack/roomtrack/internal/domain/message"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/database"
)

// MessageService handles direct messages between users.
type MessageService struct {
	store database.Store
}

// NewMessageService creates a new MessageService.
func NewMessageService(store database.Store) *MessageService {
	return &MessageService{store: store}
}

// Send delivers a message from the actor to a receiver.
func (s *MessageService) Send(ctx context.Context, actor *user.User, req message.SendRequest) (*message.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ReceiverID == actor.ID {
		return nil, invalid("cannot message yourself")
	}

	m := message.Message{
		ID:         uuid.NewString(),
		SenderID:   actor.ID,
		ReceiverID: req.ReceiverID,
		Subject:    req.Subject,
		Body:       req.Body,
	}
	if err := s.store.CreateMessage(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListForUser returns the actor's sent and received messages.
func (s *MessageService) ListForUser(ctx context.Context, actor *user.User) ([]message.Message, error) {
	return s.store.ListMessagesForUser(ctx, actor.ID)
}

// MarkRead flips a message's read flag. Only the receiver may mark it;
// repeat marks are idempotent.
func (s *MessageService) MarkRead(ctx context.Context, actor *user.User, id string) error {
	m, err := s.store.GetMessage(ctx, id)
	if err != nil {
		return err
	}
	if m.ReceiverID != actor.ID {
		return forbid("message %s was not sent to user %s", id, actor.ID)
	}
	if m.IsRead {
		return nil
	}
	return s.store.MarkMessageRead(ctx, id)
}
