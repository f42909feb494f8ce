package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voyeglobal/auth-api/internal/config"
)

// TokenTTL is the access-token validity window.
const TokenTTL = 24 * time.Hour

// Leeway tolerated when verifying nbf/exp, to absorb clock skew between
// issuer and verifier. The issuer itself applies none.
const Leeway = 60 * time.Second

// Claims holds the JWT payload. The data.user.id shape is kept
// wire-compatible with tokens consumed by the storefront.
type Claims struct {
	Data UserData `json:"data"`
	jwt.RegisteredClaims
}

type UserData struct {
	User UserRef `json:"user"`
}

type UserRef struct {
	ID string `json:"id"`
}

// Issuer signs and verifies HS256 access tokens with a process-wide secret.
type Issuer struct {
	secret []byte
	issuer string
}

// NewIssuer builds the token issuer. A missing secret is a configuration
// error; callers treat it as fatal at startup, never per request.
func NewIssuer(cfg *config.Config) (*Issuer, error) {
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY is not configured")
	}
	return &Issuer{secret: []byte(cfg.JWTSecretKey), issuer: cfg.SiteURL}, nil
}

// Sign mints a token for the user: iat = nbf = now, exp = now + 24h.
func (i *Issuer) Sign(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		Data: UserData{User: UserRef{ID: userID}},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token, allowing 60 seconds of clock skew.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithLeeway(Leeway))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
