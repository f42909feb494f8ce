package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/voyeglobal/auth-api/internal/application/contact"
	"github.com/voyeglobal/auth-api/internal/domain"
	"github.com/voyeglobal/auth-api/internal/pkg/validate"
)

// ContactHandler relays contact-form submissions to the site admin.
type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req contact.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusOK, MessageEnvelope{Success: boolPtr(false), Message: "Invalid email address."})
		return
	}

	if err := h.svc.Send(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrDispatch) {
			writeJSON(w, http.StatusOK, MessageEnvelope{Success: boolPtr(false), Message: "Failed to send email. Please try again later."})
			return
		}
		slog.Error("contact relay failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: boolPtr(true), Message: "Email sent successfully."})
}

func boolPtr(b bool) *bool { return &b }
