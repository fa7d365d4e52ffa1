package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartest/internal/catalog"
	"github.com/abhisek/smartest/internal/options"
	"github.com/abhisek/smartest/internal/rules"
)

var optionsCmd = &cobra.Command{
	Use:   "options <chapter:subchapter> [field=value ...]",
	Short: "Print the validated generation options for a subchapter",
	Long: "Resolve raw field values against the difficulty tier of a subchapter and print the " +
		"options object that would be sent with a generate request. Out-of-range numbers are " +
		"clamped, unknown values fall back to defaults and locked fields are forced.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := catalog.ParseSelection(args[0])
		if err != nil {
			return err
		}
		raw := make(map[string]string, len(args)-1)
		for _, a := range args[1:] {
			k, v, ok := strings.Cut(a, "=")
			if !ok {
				return fmt.Errorf("expected field=value, got %q", a)
			}
			raw[strings.TrimSpace(k)] = v
		}
		diff, _ := cmd.Flags().GetString("difficulty")
		kind := catalog.KindFor(sel)
		rec := options.Build(kind, rules.ParseTier(diff), raw)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Kind    rules.Kind     `json:"kind"`
			Options options.Record `json:"options"`
		}{kind, rec})
	},
}

func init() {
	optionsCmd.Flags().StringP("difficulty", "d", string(rules.TierMedium), "Difficulty tier: easy, medium or hard")
}
