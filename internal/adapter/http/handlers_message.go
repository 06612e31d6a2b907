package http

import (
	"net/http"

	"github.com/roomtrack/roomtrack/internal/domain/message"
)

// SendMessage delivers a message from the actor to another user.
func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[message.SendRequest](w, r)
	if !ok {
		return
	}

	m, err := h.messages.Send(r.Context(), actor(r), req)
	if err != nil {
		writeDomainError(w, err, "receiver not found")
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// ListMessages returns the actor's sent and received messages.
func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.messages.ListForUser(r.Context(), actor(r))
	if err != nil {
		writeDomainError(w, err, "messages not found")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// MarkMessageRead flips a message's read flag.
func (h *Handlers) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	if err := h.messages.MarkRead(r.Context(), actor(r), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
