package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Anastasialos/osmoh/internal/document"
	"github.com/Anastasialos/osmoh/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a document to calendar formats",
}

var (
	exportName  string
	exportFrom  string
	exportWeeks int
)

var exportIcsCmd = &cobra.Command{
	Use:   "ics [file]",
	Short: "Export a document as an iCalendar file",
	Long: `Ics transcribes a document into an iCalendar file: each timespan of
each expressible rule becomes one recurring VEVENT, with the weekday,
month, week and year selectors folded into the RRULE.

This is a structural transcription, not an availability computation:
rules do not interact, and rules the format cannot carry (sun events,
variable dates, holiday selectors) are skipped and reported on stderr.

Events start on the first matching day at or after --from (default:
today). --weeks bounds every recurrence; rules with their own year
bound keep it.`,
	Example: `  osmoh export ics hours.yaml -o hours.ics
  osmoh export ics hours.yaml --from 2026-01-05 --weeks 8
  cat hours.yaml | osmoh export ics --name "Corner Cafe"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}

		doc, err := document.LoadDocument(docArg(args))
		if err != nil {
			return err
		}
		rules, err := doc.ToRules()
		if err != nil {
			return err
		}

		name := exportName
		if name == "" {
			name = doc.Name
		}
		opts := export.Options{Name: name, Weeks: exportWeeks}
		if exportFrom != "" {
			start, err := time.ParseInLocation("2006-01-02", exportFrom, deps.Config.Location())
			if err != nil {
				return fmt.Errorf("invalid --from date %q: expected YYYY-MM-DD", exportFrom)
			}
			opts.Start = start
		}

		res, err := export.Calendar(rules, opts)
		if err != nil {
			return err
		}

		w, closeFn, err := outputWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeFn()

		if _, err := io.WriteString(w, res.Calendar); err != nil {
			return err
		}

		if !deps.Config.Quiet {
			for _, s := range res.Skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠  rule %d (%s) skipped: %s\n", s.Index, s.Text, s.Reason)
			}
			if globalFlags.Out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d event(s) to %s\n", res.Events, globalFlags.Out)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportIcsCmd)

	exportIcsCmd.Flags().StringVar(&exportName, "name", "", "venue name for event summaries (default: the document's name)")
	exportIcsCmd.Flags().StringVar(&exportFrom, "from", "", "anchor date YYYY-MM-DD (default: today)")
	exportIcsCmd.Flags().IntVar(&exportWeeks, "weeks", 0, "bound recurrences to this many weeks from the anchor")
}
