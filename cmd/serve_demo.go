package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartest/internal/demoserver"
)

var serveDemoCmd = &cobra.Command{
	Use:   "serve-demo",
	Short: "Run a local quiz service for development and demos",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := demoserver.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed, _ = cmd.Flags().GetUint64("seed")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := log.New(os.Stderr, "demo ", log.LstdFlags)
		fmt.Fprintf(os.Stderr, "Serving demo quiz service on http://%s\n", cfg.Addr)
		return demoserver.New(cfg, logger).ListenAndServe(ctx)
	},
}

func init() {
	serveDemoCmd.Flags().String("addr", "", "Listen address (overrides SMARTEST_DEMO_ADDR env var)")
	serveDemoCmd.Flags().Uint64("seed", 0, "Random seed for generated questions (overrides SMARTEST_DEMO_SEED env var)")
}
