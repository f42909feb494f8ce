package domain

import "time"

// AuthenticatedSession is the request-scoped identity established after a
// successful OTP verification. It has no lifecycle beyond the current
// request; durable auth is carried by the signed access token.
type AuthenticatedSession struct {
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	EstablishedAt time.Time `json:"established_at"`
}
