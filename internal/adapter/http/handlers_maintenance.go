package http

import (
	"net/http"

	"github.com/roomtrack/roomtrack/internal/domain/maintenance"
)

// FileMaintenance creates a maintenance request for the acting tenant.
func (h *Handlers) FileMaintenance(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[maintenance.CreateRequest](w, r)
	if !ok {
		return
	}

	m, err := h.maintenance.File(r.Context(), actor(r), req)
	if err != nil {
		writeDomainError(w, err, "unit not found")
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

type advanceRequest struct {
	Status maintenance.Status `json:"status"`
}

// AdvanceMaintenance moves a request to the next status.
func (h *Handlers) AdvanceMaintenance(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[advanceRequest](w, r)
	if !ok {
		return
	}

	m, err := h.maintenance.Advance(r.Context(), actor(r), urlParam(r, "id"), req.Status)
	if err != nil {
		writeDomainError(w, err, "maintenance request not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// GetMaintenance returns a maintenance request by ID.
func (h *Handlers) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	m, err := h.maintenance.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "maintenance request not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// ListMaintenance returns requests scoped to the actor.
func (h *Handlers) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.maintenance.List(r.Context(), actor(r))
	if err != nil {
		writeDomainError(w, err, "maintenance requests not found")
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}
