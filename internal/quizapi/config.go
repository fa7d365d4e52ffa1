package quizapi

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds the quiz service client configuration.
type Config struct {
	// BaseURL is the service root, without the /api prefix.
	BaseURL string

	// Timeout bounds a single request. Default: 15s.
	Timeout time.Duration
}

// DefaultConfig returns a Config pointing at a local service.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:5000",
		Timeout: 15 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparsable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("SMARTEST_API_URL"); u != "" {
		cfg.BaseURL = u
	}
	if t := os.Getenv("SMARTEST_API_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

// Validate checks that the base URL is absolute http(s) and the timeout is
// positive.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid SMARTEST_API_URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("SMARTEST_API_URL must be http or https, got %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("SMARTEST_API_URL has no host: %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("SMARTEST_API_TIMEOUT must be positive, got %s", c.Timeout)
	}
	return nil
}
