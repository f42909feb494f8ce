package handler

import (
	"encoding/json"
	"net/http"
)

// SendCodeEnvelope is the response for request-code and resend-code.
type SendCodeEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// VerifyCodeEnvelope is the response for verify-code. Token and ReturnURL
// serialize as null unless verification succeeded.
type VerifyCodeEnvelope struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	Token     *string `json:"token"`
	ReturnURL *string `json:"returnUrl"`
}

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
