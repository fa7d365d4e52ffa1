package demoserver

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the demo quiz service configuration.
type Config struct {
	// Addr is the listen address. Default: 127.0.0.1:5000.
	Addr string

	// Seed fixes question generation. Zero seeds from the clock.
	Seed uint64

	// MaxStored bounds remembered questions; the oldest are evicted first.
	MaxStored int

	// MaxTestQuestions bounds num_questions of a batch request.
	MaxTestQuestions int
}

// DefaultConfig returns a Config for a local demo service.
func DefaultConfig() Config {
	return Config{
		Addr:             "127.0.0.1:5000",
		MaxStored:        1000,
		MaxTestQuestions: 50,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparsable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if a := os.Getenv("SMARTEST_DEMO_ADDR"); a != "" {
		cfg.Addr = a
	}
	if s := os.Getenv("SMARTEST_DEMO_SEED"); s != "" {
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			cfg.Seed = n
		}
	}

	return cfg
}

// Validate checks the address and limits.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("demo server address is empty")
	}
	if c.MaxStored < 1 {
		return fmt.Errorf("MaxStored must be >= 1, got %d", c.MaxStored)
	}
	if c.MaxTestQuestions < 1 {
		return fmt.Errorf("MaxTestQuestions must be >= 1, got %d", c.MaxTestQuestions)
	}
	return nil
}
