package config

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetClientID() string {
	return GetEnv("CLIENT_ID", "")
}

func (OAuth) GetClientSecret() string {
	return GetEnv("CLIENT_SECRET", "")
}

func (OAuth) GetRedirectURI() string {
	return GetEnv("REDIRECT_URI", "http://localhost:8080/api/auth/callback")
}

// GetEnvironment selects the Intuit deployment tokens are valid against,
// "sandbox" or "production".
func (OAuth) GetEnvironment() string {
	return GetEnv("ENVIRONMENT", "sandbox")
}

// GetIssuer optionally enables OIDC discovery of the authorize/token endpoints.
// When empty the well-known Intuit endpoints are used.
func (OAuth) GetIssuer() string {
	return GetEnv("OAUTH_ISSUER", "")
}

// GetStateSecret signs the OAuth state parameter. Must be set in production.
func (OAuth) GetStateSecret() string {
	return GetEnv("STATE_SECRET", "")
}
