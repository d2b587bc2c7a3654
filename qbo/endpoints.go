// Package qbo holds the QuickBooks Online provider integration: OAuth2
// endpoint wiring, the token lifecycle manager, the authenticated API
// client, and the report normalizers.
package qbo

import (
	"context"

	"github.com/booksight/qbo-connect/internal/config"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	EnvironmentSandbox    = "sandbox"
	EnvironmentProduction = "production"
)

// ScopeAccounting is the minimum scope required to read company data.
const ScopeAccounting = "com.intuit.quickbooks.accounting"

const (
	authorizeURL = "https://appcenter.intuit.com/connect/oauth2"
	tokenURL     = "https://oauth.platform.intuit.com/oauth2/v1/tokens/bearer"

	sandboxAPIBaseURL    = "https://sandbox-quickbooks.api.intuit.com"
	productionAPIBaseURL = "https://quickbooks.api.intuit.com"
)

// Endpoint resolves the provider's authorize/token endpoint pair. When an
// issuer is configured the endpoints are taken from its OIDC discovery
// document, otherwise the well-known Intuit endpoints are used.
func Endpoint(ctx context.Context, cfg config.OAuthConfig) (oauth2.Endpoint, error) {
	issuer := cfg.GetIssuer()
	if issuer == "" {
		return oauth2.Endpoint{AuthURL: authorizeURL, TokenURL: tokenURL}, nil
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return oauth2.Endpoint{}, errors.Wrapf(err, "[Endpoint] OIDC discovery failed for issuer %q", issuer)
	}
	return provider.Endpoint(), nil
}

// OAuthConfig builds the oauth2.Config shared by the authorization flow and
// the token lifecycle manager. Build it once at process start and inject it.
func OAuthConfig(ctx context.Context, cfg config.OAuthConfig) (*oauth2.Config, error) {
	endpoint, err := Endpoint(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &oauth2.Config{
		ClientID:     cfg.GetClientID(),
		ClientSecret: cfg.GetClientSecret(),
		RedirectURL:  cfg.GetRedirectURI(),
		Scopes:       []string{ScopeAccounting},
		Endpoint:     endpoint,
	}, nil
}

func apiBaseURL(environment string) string {
	if environment == EnvironmentProduction {
		return productionAPIBaseURL
	}
	return sandboxAPIBaseURL
}
