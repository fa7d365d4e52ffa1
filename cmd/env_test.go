package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func flagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "x"}
	c.Flags().String("session", "", "")
	c.Flags().String("session-backend", "", "")
	c.Flags().String("api", "", "")
	if err := c.Flags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return c
}

func TestResolveScope(t *testing.T) {
	t.Setenv("SMARTEST_SESSION", "")
	if got := resolveScope(flagCmd(t)); got != "default" {
		t.Errorf("no flag or env: got %q, want default", got)
	}

	t.Setenv("SMARTEST_SESSION", " lab ")
	if got := resolveScope(flagCmd(t)); got != "lab" {
		t.Errorf("env: got %q, want lab", got)
	}
	if got := resolveScope(flagCmd(t, "--session", "exam")); got != "exam" {
		t.Errorf("flag beats env: got %q, want exam", got)
	}
}

func TestResolveBackend(t *testing.T) {
	tests := []struct {
		env, flag string
		want      string
		wantErr   bool
	}{
		{"", "", backendSQLite, false},
		{"redis", "", backendRedis, false},
		{"redis", "sqlite", backendSQLite, false},
		{"", "REDIS", backendRedis, false},
		{"", "mongo", "", true},
	}
	for _, tt := range tests {
		t.Setenv("SMARTEST_SESSION_BACKEND", tt.env)
		var args []string
		if tt.flag != "" {
			args = []string{"--session-backend", tt.flag}
		}
		got, err := resolveBackend(flagCmd(t, args...))
		if (err != nil) != tt.wantErr {
			t.Errorf("env=%q flag=%q: err = %v, wantErr %v", tt.env, tt.flag, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("env=%q flag=%q: got %q, want %q", tt.env, tt.flag, got, tt.want)
		}
	}
}

func TestResolveAPIConfig(t *testing.T) {
	t.Setenv("SMARTEST_API_URL", "http://env:1")
	t.Setenv("SMARTEST_API_TIMEOUT", "")

	cfg, err := resolveAPIConfig(flagCmd(t, "--api", "http://flag:2"))
	if err != nil {
		t.Fatalf("resolveAPIConfig: %v", err)
	}
	if cfg.BaseURL != "http://flag:2" {
		t.Errorf("BaseURL = %q, want flag value", cfg.BaseURL)
	}

	if _, err := resolveAPIConfig(flagCmd(t, "--api", "not a url")); err == nil {
		t.Error("expected validation error for bad URL")
	}
}
