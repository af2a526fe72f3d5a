package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Anastasialos/osmoh/internal/document"
	"github.com/Anastasialos/osmoh/internal/validate"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a document and report problems",
	Long: `Check reads a document and reports everything a careful tagger would
want fixed before publishing the value.

Errors name rule fragments the canonical format cannot express, such as
an unknown weekday, an hour past 48, or week 54. Warnings flag text that
stays expressible but is suspect, such as a zero-length timespan. The
process exits with code 2 when errors are present, so scripts can gate
on the result.`,
	Example: `  osmoh check hours.yaml
  cat hours.yaml | osmoh check
  osmoh check hours.yaml --format json`,
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
		issues := validate.Check(rules)

		w, closeFn, err := outputWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeFn()

		errs, warns := 0, 0
		for _, is := range issues {
			if is.Severity == validate.Error {
				errs++
			} else {
				warns++
			}
		}

		switch deps.Config.Format {
		case "json", "yaml":
			report := checkReport{
				Rules:    len(rules),
				Errors:   errs,
				Warnings: warns,
				Issues:   issueRows(issues),
			}
			data, err := encodeAs(report, deps.Config.Format)
			if err != nil {
				return err
			}
			if _, err := w.Write(data); err != nil {
				return err
			}
		case "plain":
			for _, is := range issues {
				fmt.Fprintln(w, is.String())
			}
		default:
			if len(issues) == 0 {
				fmt.Fprintf(w, "✓ %d rule(s), no problems found\n", len(rules))
				return nil
			}
			printSimpleTable(w, []string{"RULE", "FIELD", "SEVERITY", "MESSAGE"}, func(add func(...string)) {
				for _, is := range issues {
					add(fmt.Sprintf("%d", is.RuleIndex), is.Field, is.Severity.String(), is.Message)
				}
			})
			fmt.Fprintf(w, "\n%d error(s)  •  %d warning(s)\n", errs, warns)
		}

		if errs > 0 {
			return &exitError{code: 2, msg: fmt.Sprintf("%d validation error(s)", errs)}
		}
		return nil
	},
}

// checkReport is the structured output shape of the check command.
type checkReport struct {
	Rules    int        `json:"rules" yaml:"rules"`
	Errors   int        `json:"errors" yaml:"errors"`
	Warnings int        `json:"warnings" yaml:"warnings"`
	Issues   []issueRow `json:"issues" yaml:"issues"`
}

type issueRow struct {
	Rule     int    `json:"rule" yaml:"rule"`
	Field    string `json:"field" yaml:"field"`
	Severity string `json:"severity" yaml:"severity"`
	Message  string `json:"message" yaml:"message"`
}

// issueRows flattens issues into the output shape with severity as text.
func issueRows(issues []validate.Issue) []issueRow {
	rows := make([]issueRow, 0, len(issues))
	for _, is := range issues {
		rows = append(rows, issueRow{
			Rule:     is.RuleIndex,
			Field:    is.Field,
			Severity: is.Severity.String(),
			Message:  is.Message,
		})
	}
	return rows
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
