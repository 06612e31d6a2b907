package http

import (
	"net/http"

	"github.com/roomtrack/roomtrack/internal/domain/lease"
)

// AssignLease places a tenant on a vacant unit.
func (h *Handlers) AssignLease(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[lease.AssignRequest](w, r)
	if !ok {
		return
	}

	l, err := h.leases.Assign(r.Context(), actor(r), req)
	if err != nil {
		writeDomainError(w, err, "unit or tenant not found")
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// GetLease returns a lease by ID.
func (h *Handlers) GetLease(w http.ResponseWriter, r *http.Request) {
	l, err := h.leases.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "lease not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// TerminateLease ends an active lease.
func (h *Handlers) TerminateLease(w http.ResponseWriter, r *http.Request) {
	l, err := h.leases.Terminate(r.Context(), actor(r), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "lease not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// ListMyLeases returns the acting tenant's lease history.
func (h *Handlers) ListMyLeases(w http.ResponseWriter, r *http.Request) {
	leases, err := h.leases.ListForTenant(r.Context(), actor(r).ID)
	if err != nil {
		writeDomainError(w, err, "leases not found")
		return
	}
	writeJSON(w, http.StatusOK, leases)
}

// MyActiveLease returns the acting tenant's current lease.
func (h *Handlers) MyActiveLease(w http.ResponseWriter, r *http.Request) {
	l, err := h.leases.ActiveForTenant(r.Context(), actor(r).ID)
	if err != nil {
		writeDomainError(w, err, "no active lease")
		return
	}
	writeJSON(w, http.StatusOK, l)
}
