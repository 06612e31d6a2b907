// Package message defines the direct message domain model.
package message

import (
	"fmt"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain"
)

// Message is a directed sender-to-receiver message. Its read flag is
// independent of notifications.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Subject    string    `json:"subject,omitempty"`
	Body       string    `json:"body"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// SendRequest is the input for sending a message.
type SendRequest struct {
	ReceiverID string `json:"receiver_id"`
	Subject    string `json:"subject,omitempty"`
	Body       string `json:"body"`
}

// Validate checks that the SendRequest has all required fields.
func (r *SendRequest) Validate() error {
	if r.ReceiverID == "" {
		return fmt.Errorf("%w: receiver_id is required", domain.ErrValidation)
	}
	if r.Body == "" {
		return fmt.Errorf("%w: body is required", domain.ErrValidation)
	}
	return nil
}
