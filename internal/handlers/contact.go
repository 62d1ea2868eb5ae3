package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mukesh.dev/internal/models"
	"mukesh.dev/internal/services"
)

// ContactHandler accepts contact messages as JSON
type ContactHandler struct {
	contactService *services.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(cs *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: cs}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form models.ContactForm
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.contactService.Submit(r.Context(), form, r.RemoteAddr)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "validation failed",
				"fields": verr.Fields,
			})
			return
		}
		slog.Error("storing contact message", "error", err)
		respondError(w, httpStatus(err), "Could not send message")
		return
	}

	respondJSON(w, http.StatusCreated, msg)
}
