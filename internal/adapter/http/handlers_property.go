package http

import (
	"net/http"

	"github.com/roomtrack/roomtrack/internal/domain/property"
)

// CreateProperty registers a property under the acting landlord.
func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[property.CreateRequest](w, r)
	if !ok {
		return
	}

	p, err := h.properties.Create(r.Context(), actor(r), req)
	if err != nil {
		writeDomainError(w, err, "landlord not found")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ListProperties returns properties scoped to the actor.
func (h *Handlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.properties.List(r.Context(), actor(r))
	if err != nil {
		writeDomainError(w, err, "properties not found")
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// GetProperty returns a property by ID.
func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	p, err := h.properties.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateUnit adds a unit to a property.
func (h *Handlers) CreateUnit(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[property.CreateUnitRequest](w, r)
	if !ok {
		return
	}

	u, err := h.properties.CreateUnit(r.Context(), actor(r), urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// ListUnits returns a property's units.
func (h *Handlers) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.properties.ListUnits(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, units)
}

type updateRentRequest struct {
	RentAmount float64 `json:"rent_amount"`
}

// UpdateUnitRent changes a unit's advertised rent.
func (h *Handlers) UpdateUnitRent(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[updateRentRequest](w, r)
	if !ok {
		return
	}

	if err := h.properties.UpdateUnitRent(r.Context(), actor(r), urlParam(r, "id"), req.RentAmount); err != nil {
		writeDomainError(w, err, "unit not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
