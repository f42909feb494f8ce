package profile

import (
	"context"
	"log/slog"
	"time"

	"github.com/voyeglobal/auth-api/internal/domain"
)

// UserStore resolves user records.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// AvatarStore serves time-limited URLs for avatar objects.
type AvatarStore interface {
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

const avatarURLTTL = time.Hour

// Profile is the user-facing profile projection.
type Profile struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone"`
	PhoneCode   string `json:"phoneCode"`
	Avatar      string `json:"avatar"`
}

type Service interface {
	GetByUser(ctx context.Context, userID string) (*Profile, error)
}

type service struct {
	users   UserStore
	avatars AvatarStore
	logger  *slog.Logger
}

func NewService(users UserStore, avatars AvatarStore, logger *slog.Logger) Service {
	return &service{users: users, avatars: avatars, logger: logger}
}

func (s *service) GetByUser(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		UserID:      u.UserID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhoneCode:   u.PhoneCode,
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.AvatarKey != "" && s.avatars != nil {
		url, err := s.avatars.PresignedURL(ctx, u.AvatarKey, avatarURLTTL)
		if err != nil {
			s.logger.Warn("could not presign avatar", "user_id", u.UserID, "err", err)
		} else {
			p.Avatar = url
		}
	}
	return p, nil
}
