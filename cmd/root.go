package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartest/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "smartest",
	Short: "Terminal client for the SmarTest quiz service",
	Long: "SmarTest: generate AI-course questions (search, game theory, constraint satisfaction), " +
		"answer them and get them checked by the quiz service.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides SMARTEST_DB env var)")
	flags.String("session", "", "Session name scoping the stored test (overrides SMARTEST_SESSION env var)")
	flags.String("session-backend", "", "Where the stored test lives: sqlite or redis (overrides SMARTEST_SESSION_BACKEND env var)")
	flags.String("api", "", "Quiz service base URL (overrides SMARTEST_API_URL env var)")
	flags.String("redis-addr", "", "Redis address for the redis session backend (overrides SMARTEST_REDIS_ADDR env var)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(serveDemoCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func runApp(cmd *cobra.Command) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		Service:  env.Service,
		Sessions: env.Sessions,
		Events:   env.Store.EventRepo(),
		Scope:    env.Scope,
		Status:   fmt.Sprintf("%s @ %s", env.Scope, hostOf(env.APIConfig.BaseURL)),
		Splash:   !noSplash,
	})
}

func hostOf(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return raw
}
