package cache

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the redis session backend configuration.
type Config struct {
	// Addr is host:port. A redis:// prefix is accepted and stripped.
	Addr     string
	Password string
	DB       int

	// TTL is refreshed on every save. Default: 2h.
	TTL time.Duration

	// Prefix namespaces all keys. Default: "smartest".
	Prefix string
}

// DefaultConfig returns a Config for a local redis.
func DefaultConfig() Config {
	return Config{
		Addr:   "localhost:6379",
		TTL:    2 * time.Hour,
		Prefix: "smartest",
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparsable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if a := os.Getenv("SMARTEST_REDIS_ADDR"); a != "" {
		cfg.Addr = a
	}
	cfg.Password = os.Getenv("SMARTEST_REDIS_PASSWORD")
	if d := os.Getenv("SMARTEST_REDIS_DB"); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			cfg.DB = n
		}
	}
	if t := os.Getenv("SMARTEST_SESSION_TTL"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.TTL = d
		}
	}

	cfg.Addr = strings.TrimPrefix(cfg.Addr, "redis://")
	return cfg
}

// Validate checks the address, database index and TTL.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("SMARTEST_REDIS_ADDR is empty")
	}
	if c.DB < 0 {
		return fmt.Errorf("SMARTEST_REDIS_DB must be >= 0, got %d", c.DB)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("SMARTEST_SESSION_TTL must be positive, got %s", c.TTL)
	}
	return nil
}
