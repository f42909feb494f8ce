package http

import (
	"log/slog"

	"github.com/voyeglobal/auth-api/internal/infrastructure/commerce"
	"github.com/voyeglobal/auth-api/internal/infrastructure/credstore"
	"github.com/voyeglobal/auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/voyeglobal/auth-api/internal/infrastructure/jwt"
	s3infra "github.com/voyeglobal/auth-api/internal/infrastructure/s3"
	"github.com/voyeglobal/auth-api/internal/infrastructure/smtp"
	"github.com/voyeglobal/auth-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	NotificationRepo *dynamo.NotificationRepo
	CredStore        credstore.Store
	AvatarStore      *s3infra.Store
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender
	Issuer           *jwtinfra.Issuer
	Commerce         commerce.Gateway
	Logger           *slog.Logger
}
