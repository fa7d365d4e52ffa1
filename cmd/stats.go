package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the quiz service request log",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		stats, err := s.EventRepo().RequestStats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No requests recorded.")
			return nil
		}

		fmt.Printf("%-10s  %6s  %8s  %10s\n", "Operation", "Calls", "Failures", "Avg ms")
		fmt.Println(strings.Repeat("─", 40))
		for _, st := range stats {
			fmt.Printf("%-10s  %6d  %8d  %10.1f\n", st.Operation, st.Count, st.Failures, st.AvgLatencyMs)
		}

		if limit <= 0 {
			return nil
		}
		events, err := s.EventRepo().RecentRequests(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		fmt.Println()
		fmt.Printf("%-6s  %-19s  %-9s  %-10s  %-6s  %-6s  %s\n",
			"Seq", "Timestamp", "Operation", "Slot", "Status", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 72))
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗ " + e.ErrorMessage
			}
			fmt.Printf("%-6d  %-19s  %-9s  %-10s  %-6d  %-6d  %s\n",
				e.Sequence, e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Operation, e.Slot, e.Status, e.LatencyMs, ok)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent requests to list (0 to hide)")
}
