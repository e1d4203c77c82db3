// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "3333".
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

	// APIBaseURL is the public URL of this server, used in confirmation links.
	APIBaseURL string

	// WebBaseURL is the public URL of the web app; confirmations redirect there.
	WebBaseURL string

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// MigrateOnStart applies pending migrations at boot. Defaults to true.
	MigrateOnStart bool

	Mail MailConfig
}

// MailConfig configures outbound email. SMTP is disabled when Host is empty,
// in which case messages are written to the log instead.
type MailConfig struct {
	From     string
	Host     string
	Port     int
	Username string
	Password string
	// UseTLS dials with implicit TLS (port 465). Otherwise STARTTLS is used
	// when the server offers it.
	UseTLS bool
	// Concurrency bounds how many invitations are sent at once. Defaults to 4.
	Concurrency int
}

// SMTPEnabled reports whether an SMTP host is configured.
func (m MailConfig) SMTPEnabled() bool {
	return m.Host != ""
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that could not be parsed.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Port:           getEnv("PORT", "3333"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		APIBaseURL:     strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3333"), "/"),
		WebBaseURL:     strings.TrimRight(getEnv("WEB_BASE_URL", "http://localhost:5173"), "/"),
		MaxBodyBytes:   int64(getInt("MAX_BODY_BYTES", 1<<20, &errs)),
		MigrateOnStart: getBool("MIGRATE_ON_START", true, &errs),
		Mail: MailConfig{
			From:        getEnv("MAIL_FROM", "plann.er <oi@plann.er>"),
			Host:        os.Getenv("SMTP_HOST"),
			Port:        getInt("SMTP_PORT", 587, &errs),
			Username:    os.Getenv("SMTP_USERNAME"),
			Password:    os.Getenv("SMTP_PASSWORD"),
			UseTLS:      getBool("SMTP_TLS", false, &errs),
			Concurrency: getInt("MAIL_CONCURRENCY", 4, &errs),
		},
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		errs = append([]error{fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))}, errs...)
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
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

// getInt parses a positive integer variable. Parse failures are appended to errs.
func getInt(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		*errs = append(*errs, fmt.Errorf("%s must be a positive integer, got %q", key, v))
		return fallback
	}
	return n
}

// getBool parses a boolean variable (1/0, true/false). Parse failures are appended to errs.
func getBool(key string, fallback bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a boolean, got %q", key, v))
		return fallback
	}
	return b
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
