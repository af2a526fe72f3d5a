package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Anastasialos/osmoh/internal/describe"
	"github.com/Anastasialos/osmoh/internal/document"
)

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Describe a document in plain English",
	Long: `Describe prints one English sentence per rule, such as
"Monday to Friday from 09:00 to 18:00." or "Public holidays: closed."

The output is a reading aid for review, not a parseable format; use
'osmoh render' for the canonical tag text.`,
	Example: `  osmoh describe hours.yaml
  cat hours.yaml | osmoh describe
  osmoh describe hours.yaml --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}

		rules, err := document.Load(docArg(args))
		if err != nil {
			return err
		}
		lines := describe.Rules(rules)

		w, closeFn, err := outputWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeFn()

		switch deps.Config.Format {
		case "json", "yaml":
			data, err := encodeAs(lines, deps.Config.Format)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		default:
			for _, line := range lines {
				fmt.Fprintln(w, line)
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
