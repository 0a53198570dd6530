package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the panel's environment-driven configuration.
type Config struct {
	Port string

	// Upstream guest-verification API.
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
}

// Load reads configuration from the environment. UPSTREAM_BASE_URL is the
// one setting without a sane default.
func Load() (*Config, error) {
	base := strings.TrimSpace(os.Getenv("UPSTREAM_BASE_URL"))
	if base == "" {
		return nil, fmt.Errorf("UPSTREAM_BASE_URL environment variable is not set")
	}

	timeout := 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("UPSTREAM_TIMEOUT_SECONDS")); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT_SECONDS %q", raw)
		}
		timeout = time.Duration(secs) * time.Second
	}

	return &Config{
		Port:            EnvOrDefault("PORT", "8080"),
		UpstreamBaseURL: strings.TrimRight(base, "/"),
		UpstreamTimeout: timeout,
	}, nil
}

// EnvOrDefault returns the env value or the fallback default.
func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}
