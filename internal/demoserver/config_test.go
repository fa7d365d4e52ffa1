package demoserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SMARTEST_DEMO_ADDR", ":8099")
	t.Setenv("SMARTEST_DEMO_SEED", "7")
	cfg := ConfigFromEnv()
	assert.Equal(t, ":8099", cfg.Addr)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, DefaultConfig().MaxStored, cfg.MaxStored)

	t.Setenv("SMARTEST_DEMO_SEED", "-3")
	assert.Zero(t, ConfigFromEnv().Seed, "unparsable seed falls back to clock seeding")
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Addr = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxStored = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxTestQuestions = 0
	assert.Error(t, cfg.Validate())
}
