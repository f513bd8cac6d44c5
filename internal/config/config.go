// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// DataDir is the directory holding the reference JSON files
	// (stations and fare table). Defaults to "data".
	DataDir string

	// StaticDir is the directory holding the certificate PDF templates,
	// fonts, and the logo. Defaults to "static".
	StaticDir string

	// SNCFAPIKey authenticates journey-search calls against the SNCF open
	// data API. Required: without it every search returns an upstream error.
	SNCFAPIKey string

	// SNCFAPIBase overrides the journey-search base URL, mainly for tests.
	// Empty means the production endpoint.
	SNCFAPIBase string

	// EligibleModes lists the commercial modes that carry the EEA reduction.
	// Set ELIGIBLE_MODES to a comma-separated list to override the default
	// ("TGV INOUI,Intercités").
	EligibleModes []string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DataDir:       getEnv("DATA_DIR", "data"),
		StaticDir:     getEnv("STATIC_DIR", "static"),
		SNCFAPIBase:   os.Getenv("SNCF_API_BASE"),
		EligibleModes: splitCSV(os.Getenv("ELIGIBLE_MODES")),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.SNCFAPIKey = os.Getenv("SNCF_API_KEY")
	if cfg.SNCFAPIKey == "" {
		missing = append(missing, "SNCF_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
