package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/voyeglobal/auth-api/internal/domain"
)

// UserStore resolves user records for session establishment.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// LoginHook is notified after a user's identity has been established.
type LoginHook interface {
	UserLoggedIn(ctx context.Context, user *domain.User) error
}

// Establisher builds the request-scoped identity after a verified OTP.
// Establishment is idempotent per request; its only failure mode is the user
// record vanishing between verification and this step.
type Establisher struct {
	users  UserStore
	hook   LoginHook
	logger *slog.Logger
}

func NewEstablisher(users UserStore, hook LoginHook, logger *slog.Logger) *Establisher {
	return &Establisher{users: users, hook: hook, logger: logger}
}

func (e *Establisher) Establish(ctx context.Context, userID string) (*domain.AuthenticatedSession, error) {
	u, err := e.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess := &domain.AuthenticatedSession{
		UserID:        u.UserID,
		Email:         u.Email,
		EstablishedAt: time.Now().UTC(),
	}

	if e.hook != nil {
		if err := e.hook.UserLoggedIn(ctx, u); err != nil {
			e.logger.Warn("login hook failed", "user_id", u.UserID, "err", err)
		}
	}

	return sess, nil
}
