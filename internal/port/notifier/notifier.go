// Package notifier defines the outbound notification delivery port.
// Durable storage of notification records happens in the entity store;
// implementations of this port only carry the event to an external
// transport (message bus, push, email) with no delivery guarantee.
package notifier

import (
	"context"

	"github.com/roomtrack/roomtrack/internal/domain/notification"
)

// Notifier is the port interface for notification delivery transports.
type Notifier interface {
	// Name returns the unique identifier for this transport (e.g. "nats").
	Name() string

	// Deliver hands the event to the transport. Errors are logged by the
	// emitter and never affect the originating business transaction.
	Deliver(ctx context.Context, ev notification.Event) error
}
