package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map outcomes without leaking
// infrastructure details.
var (
	ErrNotFound           = errors.New("not found")
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrExpired            = errors.New("expired")
	ErrLockedOut          = errors.New("locked out")
	ErrDispatch           = errors.New("dispatch failed")
	ErrFeatureUnavailable = errors.New("feature unavailable")

	// ErrInfrastructure marks failures of a backing store or external
	// service. Callers may retry; user input cannot fix these.
	ErrInfrastructure = errors.New("infrastructure failure")
)
