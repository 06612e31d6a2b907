package http

import (
	"net/http"

	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/middleware"
	"github.com/roomtrack/roomtrack/internal/service"
)

// Handlers aggregates all HTTP handlers and their service dependencies.
type Handlers struct {
	users         *service.UserService
	properties    *service.PropertyService
	leases        *service.LeaseService
	payments      *service.PaymentService
	maintenance   *service.MaintenanceService
	messages      *service.MessageService
	notifications *service.NotificationService
	stats         *service.StatsService
}

// NewHandlers creates a Handlers with the given services.
func NewHandlers(
	users *service.UserService,
	properties *service.PropertyService,
	leases *service.LeaseService,
	payments *service.PaymentService,
	maintenance *service.MaintenanceService,
	messages *service.MessageService,
	notifications *service.NotificationService,
	stats *service.StatsService,
) *Handlers {
	return &Handlers{
		users:         users,
		properties:    properties,
		leases:        leases,
		payments:      payments,
		maintenance:   maintenance,
		messages:      messages,
		notifications: notifications,
		stats:         stats,
	}
}

// actor pulls the authenticated user off the context. The identity
// middleware guarantees it is set on protected routes.
func actor(r *http.Request) *user.User {
	return middleware.UserFromContext(r.Context())
}
