package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Anastasialos/osmoh/internal/document"
	"github.com/Anastasialos/osmoh/internal/model"
	"github.com/Anastasialos/osmoh/internal/render"
	"github.com/Anastasialos/osmoh/internal/transform"
	"github.com/Anastasialos/osmoh/internal/validate"
)

var (
	renderCheck   bool
	renderResolve bool
	renderPrune   bool
	renderSunrise string
	renderSunset  string
	renderDawn    string
	renderDusk    string
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a document to canonical opening_hours text",
	Long: `Render reads a YAML or JSON document from a file or stdin and prints
the canonical opening_hours value it describes, ready to paste into an
OSM tag.

With --check the document is validated first and rendering refuses when
errors are present (exit code 2). With --resolve, sun event times are
replaced by the fixed clock times given with --sunrise, --sunset, --dawn
and --dusk; events without a supplied time fail the run.`,
	Example: `  osmoh render hours.yaml
  cat hours.yaml | osmoh render
  osmoh render hours.yaml --check
  osmoh render hours.yaml --resolve --sunrise 06:30 --sunset 19:45`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := document.Load(docArg(args))
		if err != nil {
			return err
		}

		if renderCheck {
			issues := validate.Check(rules)
			if validate.HasErrors(issues) {
				for _, is := range issues {
					fmt.Fprintln(cmd.ErrOrStderr(), is.String())
				}
				return &exitError{code: 2, msg: "document has validation errors"}
			}
		}

		if renderPrune {
			rules = transform.DropEmpty(rules)
		}
		if renderResolve {
			res, err := sunTimes()
			if err != nil {
				return err
			}
			if rules, err = transform.ResolveEvents(rules, res); err != nil {
				return err
			}
		}

		w, closeFn, err := outputWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeFn()

		_, err = fmt.Fprintln(w, render.String(rules))
		return err
	},
}

// sunTimes builds the fixed event table from the sun time flags. There are
// no default times: resolution is only as good as what the caller supplies.
func sunTimes() (transform.StaticResolver, error) {
	res := transform.StaticResolver{}
	for _, f := range []struct {
		ev  model.Event
		val string
	}{
		{model.Sunrise, renderSunrise},
		{model.Sunset, renderSunset},
		{model.Dawn, renderDawn},
		{model.Dusk, renderDusk},
	} {
		if f.val == "" {
			continue
		}
		t, err := parseClock(f.val)
		if err != nil {
			return nil, err
		}
		res[f.ev] = t
	}
	return res, nil
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().BoolVar(&renderCheck, "check", false,
		"validate first and refuse to render a document with errors")
	renderCmd.Flags().BoolVar(&renderResolve, "resolve", false,
		"replace sun event times with the fixed times below")
	renderCmd.Flags().BoolVar(&renderPrune, "prune", false,
		"drop rules that select nothing and say nothing")
	renderCmd.Flags().StringVar(&renderSunrise, "sunrise", "", "clock time for sunrise (HH:MM)")
	renderCmd.Flags().StringVar(&renderSunset, "sunset", "", "clock time for sunset (HH:MM)")
	renderCmd.Flags().StringVar(&renderDawn, "dawn", "", "clock time for dawn (HH:MM)")
	renderCmd.Flags().StringVar(&renderDusk, "dusk", "", "clock time for dusk (HH:MM)")
}
