package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/smartest/internal/cache"
	"github.com/abhisek/smartest/internal/quizapi"
	"github.com/abhisek/smartest/internal/store"
)

const defaultScope = "default"

// Session backends.
const (
	backendSQLite = "sqlite"
	backendRedis  = "redis"
)

// env bundles the resources shared by commands that talk to the service or
// the stored test.
type env struct {
	Store     *store.Store
	Sessions  store.SessionRepo
	Service   quizapi.Service
	APIConfig quizapi.Config
	Scope     string

	redis *redis.Client
}

// openEnv opens the store, the session backend and a logged service client
// from flags and environment.
func openEnv(cmd *cobra.Command) (*env, error) {
	apiCfg, err := resolveAPIConfig(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	e := &env{
		Store:     st,
		Sessions:  st.SessionRepo(),
		APIConfig: apiCfg,
		Scope:     resolveScope(cmd),
		Service:   quizapi.WithLogging(quizapi.NewClient(apiCfg), st.EventRepo()),
	}

	backend, err := resolveBackend(cmd)
	if err != nil {
		st.Close()
		return nil, err
	}
	if backend == backendRedis {
		cfg := cache.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("redis-addr"); addr != "" {
			cfg.Addr = strings.TrimPrefix(addr, "redis://")
		}
		client, err := cache.NewClient(cmd.Context(), cfg)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		e.redis = client
		e.Sessions = cache.NewSessionCache(client, cfg)
	}
	return e, nil
}

// Close releases the store and any redis connection.
func (e *env) Close() error {
	if e.redis != nil {
		e.redis.Close()
	}
	return e.Store.Close()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SMARTEST_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveScope returns --session, then SMARTEST_SESSION, then "default".
func resolveScope(cmd *cobra.Command) string {
	if s, _ := cmd.Flags().GetString("session"); strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	if s := strings.TrimSpace(os.Getenv("SMARTEST_SESSION")); s != "" {
		return s
	}
	return defaultScope
}

func resolveBackend(cmd *cobra.Command) (string, error) {
	b, _ := cmd.Flags().GetString("session-backend")
	if b == "" {
		b = os.Getenv("SMARTEST_SESSION_BACKEND")
	}
	switch strings.ToLower(strings.TrimSpace(b)) {
	case "", backendSQLite:
		return backendSQLite, nil
	case backendRedis:
		return backendRedis, nil
	default:
		return "", fmt.Errorf("unknown session backend %q (want sqlite or redis)", b)
	}
}

func resolveAPIConfig(cmd *cobra.Command) (quizapi.Config, error) {
	cfg := quizapi.ConfigFromEnv()
	if u, _ := cmd.Flags().GetString("api"); u != "" {
		cfg.BaseURL = u
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
