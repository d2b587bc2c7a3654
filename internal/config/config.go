package config

type Config interface {
	EnvConfig
	OAuthConfig
	DatabaseConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetDashboardURL() string
}

// OAuthConfig holds the Intuit app credentials and flow settings.
type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetEnvironment() string
	GetIssuer() string
	GetStateSecret() string
}

type DatabaseConfig interface {
	GetDatabaseDSN() string
	GetDatabaseMigrate() bool
}

type mainConfig struct {
	EnvVars
	OAuth
	Database
}

func New() Config {
	return mainConfig{}
}
