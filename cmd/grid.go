package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Anastasialos/osmoh/internal/document"
	"github.com/Anastasialos/osmoh/internal/grid"
)

var gridTitle string

var gridCmd = &cobra.Command{
	Use:   "grid [file]",
	Short: "Draw the weekly coverage grid of a document",
	Long: `Grid draws a weekday-by-half-hour chart of the cells the document's
weekday and time selectors reach, with one glyph per half hour.

The chart shows selector coverage, not opening state: rule order,
fallbacks and overrides are not applied, and spans with sun event times
are left out and counted below the chart.`,
	Example: `  osmoh grid hours.yaml
  cat hours.yaml | osmoh grid
  osmoh grid hours.yaml --title "Corner Cafe"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := document.Load(docArg(args))
		if err != nil {
			return err
		}

		w, closeFn, err := outputWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeFn()

		return grid.Week(w, rules, grid.Options{Title: gridTitle})
	},
}

func init() {
	rootCmd.AddCommand(gridCmd)

	gridCmd.Flags().StringVar(&gridTitle, "title", "", "title line printed above the grid")
}
