// Package commerce abstracts the optional storefront integration. The auth
// service depends on the Gateway interface only; when no storefront is
// configured the stub reports the feature as unavailable instead of being
// silently skipped.
package commerce

import (
	"context"
	"fmt"

	"github.com/voyeglobal/auth-api/internal/config"
	"github.com/voyeglobal/auth-api/internal/domain"
)

// Gateway is the capability surface the auth flow needs from a storefront.
type Gateway interface {
	// AccountPageURL returns the storefront account page used as the
	// default post-login redirect.
	AccountPageURL(ctx context.Context) (string, error)
}

// SiteGateway is the config-backed storefront integration.
type SiteGateway struct {
	accountURL string
}

func NewSiteGateway(cfg *config.Config) *SiteGateway {
	return &SiteGateway{accountURL: cfg.AccountPageURL}
}

func (g *SiteGateway) AccountPageURL(context.Context) (string, error) {
	if g.accountURL == "" {
		return "", fmt.Errorf("no account page configured: %w", domain.ErrFeatureUnavailable)
	}
	return g.accountURL, nil
}

// Unavailable satisfies Gateway when no storefront exists at all.
type Unavailable struct{}

func (Unavailable) AccountPageURL(context.Context) (string, error) {
	return "", fmt.Errorf("storefront integration not installed: %w", domain.ErrFeatureUnavailable)
}
