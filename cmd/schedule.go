package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Anastasialos/osmoh/internal/document"
	"github.com/Anastasialos/osmoh/internal/model"
	"github.com/Anastasialos/osmoh/internal/render"
	"github.com/Anastasialos/osmoh/internal/store"
	"github.com/Anastasialos/osmoh/internal/validate"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Save and manage named schedules",
	Long: `Schedules are documents kept in the local database under a name,
together with their canonical text, so frequently used values can be
rendered or reviewed without keeping the source file around.

  osmoh schedule save cafe hours.yaml
  osmoh schedule list
  osmoh schedule render cafe`,
}

// ─── schedule save ────────────────────────────────────────────────────────────

var scheduleSaveCmd = &cobra.Command{
	Use:   "save <name> [file]",
	Short: "Save a document under a name",
	Long: `Save reads a document, validates it, and stores it with its canonical
text. Documents with validation errors are refused; fix them or review
with 'osmoh check' first.`,
	Example: `  osmoh schedule save cafe hours.yaml
  cat hours.yaml | osmoh schedule save cafe`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		rules, err := document.Load(docArg(args[1:]))
		if err != nil {
			return err
		}

		issues := validate.Check(rules)
		if validate.HasErrors(issues) {
			for _, is := range issues {
				fmt.Fprintln(cmd.ErrOrStderr(), is.String())
			}
			return &exitError{code: 2, msg: fmt.Sprintf("document has validation errors, schedule %q not saved", name)}
		}

		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		sched := scheduleRecord(name, rules)
		if err := deps.Store.PutSchedule(sched); err != nil {
			return fmt.Errorf("saving schedule: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved schedule %q  (%d rules: %s)\n",
			name, sched.RuleCount, truncate(sched.Canonical, 50))
		return nil
	},
}

// ─── schedule list ────────────────────────────────────────────────────────────

var scheduleListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all saved schedules",
	Example: `  osmoh schedule list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		scheds, err := deps.Store.ListSchedules()
		if err != nil {
			return fmt.Errorf("listing schedules: %w", err)
		}
		if len(scheds) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No schedules saved.")
			fmt.Fprintln(cmd.OutOrStdout(), "  Use: osmoh schedule save <name> <file>")
			return nil
		}

		switch deps.Config.Format {
		case "json", "yaml":
			data, err := encodeAs(scheds, deps.Config.Format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		case "plain":
			for _, s := range scheds {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Name, s.Canonical)
			}
			return nil
		}

		printSimpleTable(cmd.OutOrStdout(), []string{"NAME", "RULES", "CANONICAL", "UPDATED"}, func(add func(...string)) {
			for _, s := range scheds {
				add(s.Name, fmt.Sprintf("%d", s.RuleCount), truncate(s.Canonical, 50),
					s.UpdatedAt.Format("2006-01-02 15:04"))
			}
		})
		return nil
	},
}

// ─── schedule show ────────────────────────────────────────────────────────────

var scheduleShowCmd = &cobra.Command{
	Use:     "show <name>",
	Short:   "Show full details of a saved schedule",
	Example: `  osmoh schedule show cafe
  osmoh schedule show cafe --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		sched, ok, err := deps.Store.GetSchedule(args[0])
		if err != nil {
			return fmt.Errorf("reading schedule: %w", err)
		}
		if !ok {
			return fmt.Errorf("schedule %q not found", args[0])
		}

		switch deps.Config.Format {
		case "json", "yaml":
			data, err := encodeAs(sched, deps.Config.Format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		printSimpleTable(cmd.OutOrStdout(), []string{"FIELD", "VALUE"}, func(add func(...string)) {
			add("Name", sched.Name)
			add("Rules", fmt.Sprintf("%d", sched.RuleCount))
			add("Canonical", sched.Canonical)
			add("Created", sched.CreatedAt.Format("2006-01-02 15:04"))
			add("Updated", sched.UpdatedAt.Format("2006-01-02 15:04"))
		})
		return nil
	},
}

// ─── schedule render ──────────────────────────────────────────────────────────

var scheduleRenderCmd = &cobra.Command{
	Use:     "render <name>",
	Short:   "Print the canonical text of a saved schedule",
	Example: `  osmoh schedule render cafe`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		sched, ok, err := deps.Store.GetSchedule(args[0])
		if err != nil {
			return fmt.Errorf("reading schedule: %w", err)
		}
		if !ok {
			return fmt.Errorf("schedule %q not found", args[0])
		}

		w, closeFn, err := outputWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeFn()

		_, err = fmt.Fprintln(w, sched.Canonical)
		return err
	},
}

// ─── schedule delete ──────────────────────────────────────────────────────────

var scheduleDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Short:   "Delete a saved schedule",
	Example: `  osmoh schedule delete cafe`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		sched, ok, err := deps.Store.GetSchedule(args[0])
		if err != nil {
			return fmt.Errorf("reading schedule: %w", err)
		}
		if !ok {
			return fmt.Errorf("schedule %q not found", args[0])
		}

		if err := deps.Store.DeleteSchedule(args[0]); err != nil {
			return fmt.Errorf("deleting schedule: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted schedule %q  (%s)\n", sched.Name, truncate(sched.Canonical, 50))
		return nil
	},
}

// ─── Registration ─────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleSaveCmd)
	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleShowCmd)
	scheduleCmd.AddCommand(scheduleRenderCmd)
	scheduleCmd.AddCommand(scheduleDeleteCmd)
}

// ─── Record building ──────────────────────────────────────────────────────────

// scheduleRecord stamps the derived fields of a schedule record: the
// normalized document carrying the schedule name, the canonical text, and
// the rule count. Timestamps are the store's job.
func scheduleRecord(name string, rules model.Rules) store.Schedule {
	doc := document.FromRules(rules)
	doc.Name = name
	return store.Schedule{
		Name:      name,
		Document:  doc,
		Canonical: render.String(rules),
		RuleCount: len(rules),
	}
}
