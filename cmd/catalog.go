package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the chapters and subchapters offered by the quiz service",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		cat, err := e.Service.FetchCatalog(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch catalog: %w", err)
		}
		if len(cat.Chapters) == 0 {
			fmt.Println("The catalog is empty.")
			return nil
		}
		for _, ch := range cat.Chapters {
			fmt.Printf("%d. %s\n", ch.Number, ch.Name)
			for _, sc := range ch.Subchapters {
				fmt.Printf("   %d:%d  %s\n", ch.Number, sc.Number, sc.Name)
			}
		}
		return nil
	},
}
