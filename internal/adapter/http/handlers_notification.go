package http

import "net/http"

// ListNotifications returns the actor's notifications, newest first.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notifications.ListForUser(r.Context(), actor(r))
	if err != nil {
		writeDomainError(w, err, "notifications not found")
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// MarkNotificationRead flips a notification's read flag.
func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkRead(r.Context(), actor(r), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
