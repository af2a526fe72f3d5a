package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Anastasialos/osmoh/internal/document"
	"github.com/Anastasialos/osmoh/internal/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Summarize the structure of a document rule by rule",
	Long: `Inspect breaks a document down without interpreting it: one row per
rule with its canonical text, kind, modifier and selector counts, plus
aggregates over the whole value (fallback groups, 24/7 presence, sun
events, holidays).

Use --format json for the full structured summary.`,
	Example: `  osmoh inspect hours.yaml
  cat hours.yaml | osmoh inspect
  osmoh inspect hours.yaml --format json`,
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
		summary := inspect.Summarize(rules)

		w, closeFn, err := outputWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeFn()

		switch deps.Config.Format {
		case "json", "yaml":
			data, err := encodeAs(summary, deps.Config.Format)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		case "plain":
			for _, info := range summary.Rules {
				fmt.Fprintf(w, "%d\t%s\t%s\n", info.Index, info.Kind, info.Text)
			}
			return nil
		}

		printSimpleTable(w, []string{"#", "RULE", "KIND", "MODIFIER", "DAYS", "SPANS", "NOTES"}, func(add func(...string)) {
			for _, info := range summary.Rules {
				add(
					fmt.Sprintf("%d", info.Index),
					truncate(info.Text, 40),
					info.Kind,
					info.Modifier,
					fmt.Sprintf("%d", info.DaysCovered),
					fmt.Sprintf("%d", info.SpanCount),
					ruleNotes(info),
				)
			}
		})
		fmt.Fprintf(w, "\n%d rule(s)  •  %d fallback group(s)  •  %s\n",
			summary.RuleCount, summary.FallbackCount, truncate(summary.Canonical, 60))
		return nil
	},
}

// ruleNotes joins the boolean structure flags into a short cell.
func ruleNotes(info inspect.RuleInfo) string {
	var notes []string
	if info.UsesEvents {
		notes = append(notes, "sun events")
	}
	if info.HolidayCount > 0 {
		notes = append(notes, "holidays")
	}
	if info.HasComment {
		notes = append(notes, "comment")
	}
	return strings.Join(notes, ", ")
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
