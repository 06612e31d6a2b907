package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/middleware"
)

// MountRoutes registers all API routes on the given chi router. The
// identity middleware must already be mounted above this.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Auth
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Get("/auth/me", h.Me)

		// Users
		r.With(middleware.RequireRole(user.RoleAdmin)).Get("/users", h.ListUsers)
		r.Get("/users/{id}", h.GetUser)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLandlord)).
			Delete("/tenants/{id}", h.DeleteTenant)

		// Properties and units
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLandlord)).
			Post("/properties", h.CreateProperty)
		r.Get("/properties", h.ListProperties)
		r.Get("/properties/{id}", h.GetProperty)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLandlord)).
			Post("/properties/{id}/units", h.CreateUnit)
		r.Get("/properties/{id}/units", h.ListUnits)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLandlord)).
			Put("/units/{id}/rent", h.UpdateUnitRent)

		// Leases
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLandlord)).
			Post("/leases", h.AssignLease)
		r.Get("/leases/{id}", h.GetLease)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLandlord)).
			Post("/leases/{id}/terminate", h.TerminateLease)
		r.With(middleware.RequireRole(user.RoleTenant)).Get("/leases", h.ListMyLeases)
		r.With(middleware.RequireRole(user.RoleTenant)).Get("/leases/active", h.MyActiveLease)

		// Payments
		r.With(middleware.RequireRole(user.RoleTenant)).Post("/payments", h.SubmitPayment)
		r.Get("/payments/{id}", h.GetPayment)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLandlord)).
			Post("/payments/{id}/decide", h.DecidePayment)
		r.Get("/leases/{id}/payments", h.ListLeasePayments)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLandlord)).
			Get("/payments", h.ListLandlordPayments)

		// Maintenance
		r.With(middleware.RequireRole(user.RoleTenant)).Post("/maintenance", h.FileMaintenance)
		r.Get("/maintenance", h.ListMaintenance)
		r.Get("/maintenance/{id}", h.GetMaintenance)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLandlord)).
			Put("/maintenance/{id}/status", h.AdvanceMaintenance)

		// Messages
		r.Post("/messages", h.SendMessage)
		r.Get("/messages", h.ListMessages)
		r.Put("/messages/{id}/read", h.MarkMessageRead)

		// Notifications
		r.Get("/notifications", h.ListNotifications)
		r.Put("/notifications/{id}/read", h.MarkNotificationRead)

		// Dashboards
		r.With(middleware.RequireRole(user.RoleAdmin)).Get("/stats/admin", h.AdminOverview)
		r.With(middleware.RequireRole(user.RoleAdmin, user.RoleLandlord)).
			Get("/stats/landlord", h.LandlordOverview)
	})
}
