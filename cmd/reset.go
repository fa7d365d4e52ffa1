package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartest/internal/testsession"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the stored test of the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := testsession.Clear(cmd.Context(), e.Sessions, e.Scope); err != nil {
			return fmt.Errorf("clear stored test: %w", err)
		}
		fmt.Printf("Cleared the stored test for session %q.\n", e.Scope)
		return nil
	},
}
