package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect and maintain the local database",
	Long: `Commands for the local bbolt database holding saved schedules and
fetched opening_hours values.

The database is an intentional data store, not a transparent cache:
data persists until you explicitly reset it.`,
}

// ─── store path ───────────────────────────────────────────────────────────────

var storePathCmd = &cobra.Command{
	Use:     "path",
	Short:   "Print the database path",
	Example: `  osmoh store path`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		// Print the resolved path without opening (and thereby creating)
		// the database file.
		fmt.Fprintln(cmd.OutOrStdout(), deps.Config.StorePath)
		return nil
	},
}

// ─── store status ─────────────────────────────────────────────────────────────

var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show row counts and sizes for each bucket",
	Example: `  osmoh store status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}

		if _, err := os.Stat(deps.Config.StorePath); os.IsNotExist(err) {
			fmt.Fprintf(cmd.OutOrStdout(), "No database at %s\n", deps.Config.StorePath)
			fmt.Fprintln(cmd.OutOrStdout(), "  Use: osmoh schedule save or osmoh fetch --save to create it.")
			return nil
		}

		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		stats, err := deps.Store.Stats()
		if err != nil {
			return fmt.Errorf("reading store stats: %w", err)
		}
		sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })

		fmt.Fprintf(cmd.OutOrStdout(), "Database: %s\n\n", deps.Store.Path())
		printSimpleTable(cmd.OutOrStdout(), []string{"BUCKET", "ROWS", "SIZE"}, func(add func(...string)) {
			for _, s := range stats {
				add(s.Name, fmt.Sprintf("%d", s.Count), humanBytes(s.Bytes))
			}
		})
		return nil
	},
}

// ─── store fetches ────────────────────────────────────────────────────────────

var storeFetchesCmd = &cobra.Command{
	Use:     "fetches",
	Short:   "List raw opening_hours values saved by fetch",
	Example: `  osmoh store fetches`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		fetches, err := deps.Store.ListFetches()
		if err != nil {
			return fmt.Errorf("listing fetches: %w", err)
		}
		if len(fetches) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No fetched values stored.")
			fmt.Fprintln(cmd.OutOrStdout(), "  Use: osmoh fetch --area <name> --save")
			return nil
		}

		printSimpleTable(cmd.OutOrStdout(), []string{"ELEMENT", "NAME", "OPENING_HOURS", "FETCHED"}, func(add func(...string)) {
			for _, f := range fetches {
				add(fmt.Sprintf("%s/%d", f.ElementType, f.ElementID),
					truncate(f.Name, 30), truncate(f.Value, 50),
					f.FetchedAt.Format("2006-01-02 15:04"))
			}
		})
		return nil
	},
}

// ─── store reset ──────────────────────────────────────────────────────────────

var (
	storeResetAll       bool
	storeResetFetches   bool
	storeResetSchedules bool
)

var storeResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete entries from the local database",
	Long: `Delete saved schedules, fetched values, or everything.

bbolt does not shrink the database file after deleting; freed pages are
reused on later writes.`,
	Example: `  osmoh store reset --all
  osmoh store reset --fetches
  osmoh store reset --schedules`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !storeResetAll && !storeResetFetches && !storeResetSchedules {
			return fmt.Errorf("specify --all, --fetches, or --schedules")
		}

		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		if storeResetAll {
			if err := deps.Store.ClearAll(); err != nil {
				return fmt.Errorf("clearing database: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Cleared all buckets")
			return nil
		}
		if storeResetFetches {
			if err := deps.Store.ClearFetches(); err != nil {
				return fmt.Errorf("clearing fetches: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Cleared fetched values")
		}
		if storeResetSchedules {
			if err := deps.Store.ClearBucket("schedules"); err != nil {
				return fmt.Errorf("clearing schedules: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Cleared schedules")
		}
		return nil
	},
}

// ─── Registration ─────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storePathCmd)
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeFetchesCmd)
	storeCmd.AddCommand(storeResetCmd)

	storeResetCmd.Flags().BoolVar(&storeResetAll, "all", false, "clear schedules and fetches")
	storeResetCmd.Flags().BoolVar(&storeResetFetches, "fetches", false, "clear fetched values only")
	storeResetCmd.Flags().BoolVar(&storeResetSchedules, "schedules", false, "clear saved schedules only")
}
