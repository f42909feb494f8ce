package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/voyeglobal/auth-api/internal/domain"
	"github.com/voyeglobal/auth-api/internal/pkg/id"
)

// NotificationStore persists login notification records.
type NotificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

// NotificationHook records each login as a notification and logs it.
type NotificationHook struct {
	notifications NotificationStore
	logger        *slog.Logger
}

func NewNotificationHook(notifications NotificationStore, logger *slog.Logger) *NotificationHook {
	return &NotificationHook{notifications: notifications, logger: logger}
}

func (h *NotificationHook) UserLoggedIn(ctx context.Context, user *domain.User) error {
	h.logger.Info("user logged in", "user_id", user.UserID)
	return h.notifications.Put(ctx, &domain.Notification{
		NotificationID: id.New(),
		UserID:         user.UserID,
		Kind:           domain.NotificationLogin,
		Message:        "Signed in with a one-time password",
		CreatedAt:      time.Now().UTC(),
	})
}

// LoggerHook only logs login events. Useful when no notification store is
// configured.
type LoggerHook struct {
	logger *slog.Logger
}

func NewLoggerHook(logger *slog.Logger) *LoggerHook {
	return &LoggerHook{logger: logger}
}

func (h *LoggerHook) UserLoggedIn(_ context.Context, user *domain.User) error {
	h.logger.Info("user logged in", "user_id", user.UserID)
	return nil
}
