package http

import "net/http"

// AdminOverview returns platform-wide counts. Admin only.
func (h *Handlers) AdminOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.stats.AdminOverview(r.Context(), actor(r))
	if err != nil {
		writeDomainError(w, err, "stats not found")
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

// LandlordOverview returns a landlord's portfolio summary. The landlord
// query parameter lets an admin inspect another landlord.
func (h *Handlers) LandlordOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.stats.LandlordOverview(r.Context(), actor(r), r.URL.Query().Get("landlord"))
	if err != nil {
		writeDomainError(w, err, "stats not found")
		return
	}
	writeJSON(w, http.StatusOK, ov)
}
