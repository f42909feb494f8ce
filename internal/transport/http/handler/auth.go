package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/voyeglobal/auth-api/internal/application/auth"
	"github.com/voyeglobal/auth-api/internal/domain"
	"github.com/voyeglobal/auth-api/internal/pkg/identifier"
	"github.com/voyeglobal/auth-api/internal/pkg/validate"
)

// AuthHandler exposes the OTP login flow. Domain outcomes are always 200
// with a status flag; only infrastructure failures surface as HTTP errors.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type sendCodeRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type verifyCodeRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Code       string `json:"code" validate:"required"`
	Redirect   string `json:"redirect"`
}

func (h *AuthHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	h.sendCode(w, r, h.svc.RequestCode)
}

func (h *AuthHandler) ResendCode(w http.ResponseWriter, r *http.Request) {
	h.sendCode(w, r, h.svc.ResendCode)
}

func (h *AuthHandler) sendCode(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, raw string) (auth.SendResult, error)) {
	var req sendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := op(r.Context(), req.Identifier)
	if err != nil {
		slog.Error("request code failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, SendCodeEnvelope{
		Status:  result.Status == auth.SendOK,
		Message: sendMessage(result),
	})
}

func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := h.svc.VerifyCode(r.Context(), auth.VerifyCodeRequest{
		Identifier: req.Identifier,
		Code:       req.Code,
		Redirect:   req.Redirect,
	})
	if err != nil {
		slog.Error("verify code failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	env := VerifyCodeEnvelope{
		Success: result.Result.Status == domain.VerifySuccess,
		Message: verifyMessage(result.Result.Status),
	}
	if env.Success {
		env.Token = &result.Token
		if result.ReturnURL != "" {
			env.ReturnURL = &result.ReturnURL
		}
	}
	writeJSON(w, http.StatusOK, env)
}

func sendMessage(result auth.SendResult) string {
	switch result.Status {
	case auth.SendOK:
		return "OTP has been sent successfully."
	case auth.SendInvalidIdentifier:
		return "Invalid email or mobile number format."
	case auth.SendUserNotFound:
		if result.Kind == identifier.Phone {
			return "No user found with this mobile number."
		}
		return "No user found with this email."
	case auth.SendDispatchFailed:
		return "Failed to generate or send OTP. Please try again later."
	default:
		return "General Error."
	}
}

func verifyMessage(status domain.VerifyStatus) string {
	switch status {
	case domain.VerifySuccess:
		return "Success."
	case domain.VerifyInvalidIdentifier:
		return "Invalid email or mobile number format."
	case domain.VerifyUserNotFound:
		return "User does not exist."
	case domain.VerifyInvalidCode:
		return "Invalid OTP."
	case domain.VerifyExpired:
		return "OTP expired or not found."
	case domain.VerifyMismatch:
		return "OTP Code Invalid."
	case domain.VerifyLockedOut:
		return "Maximum attempts reached. Please try again later."
	case domain.VerifyLoginFailed:
		return "Can't find user."
	default:
		return "General Error."
	}
}
