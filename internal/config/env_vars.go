package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar      = "PORT"
	appNameVar      = "APP_NAME"
	envVar          = "ENV"
	dashboardURLVar = "DASHBOARD_URL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "QBO Connect")
}

func (EnvVars) GetEnv() string {
	return GetEnv(envVar, "DEV")
}

// GetDashboardURL is where the browser is sent after a completed connection.
func (EnvVars) GetDashboardURL() string {
	return GetEnv(dashboardURLVar, "http://localhost:3000/dashboard")
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
