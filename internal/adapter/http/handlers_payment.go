package http

import (
	"net/http"

	"github.com/roomtrack/roomtrack/internal/domain/payment"
)

// SubmitPayment records a pending rent payment for the acting tenant.
func (h *Handlers) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[payment.SubmitRequest](w, r)
	if !ok {
		return
	}

	p, err := h.payments.Submit(r.Context(), actor(r), req)
	if err != nil {
		writeDomainError(w, err, "lease not found")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type decideRequest struct {
	Decision payment.Decision `json:"decision"`
}

// DecidePayment approves or rejects a pending payment.
func (h *Handlers) DecidePayment(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[decideRequest](w, r)
	if !ok {
		return
	}

	p, err := h.payments.Decide(r.Context(), actor(r), urlParam(r, "id"), req.Decision)
	if err != nil {
		writeDomainError(w, err, "payment not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetPayment returns a payment by ID.
func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.payments.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "payment not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListLeasePayments returns a lease's payment history.
func (h *Handlers) ListLeasePayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListForLease(r.Context(), actor(r), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "lease not found")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// ListLandlordPayments returns payments across the acting landlord's portfolio.
func (h *Handlers) ListLandlordPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListForLandlord(r.Context(), actor(r))
	if err != nil {
		writeDomainError(w, err, "payments not found")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}
