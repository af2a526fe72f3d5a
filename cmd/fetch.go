package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Anastasialos/osmoh/internal/overpass"
	"github.com/Anastasialos/osmoh/internal/store"
)

var (
	fetchArea  string
	fetchBbox  string
	fetchLimit int
	fetchSave  bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch raw opening_hours values from the Overpass API",
	Long: `Fetch queries the Overpass API for OSM elements carrying an
opening_hours tag inside a named area or a bounding box, and lists the
raw tag values verbatim.

The values are opaque text: nothing here parses or checks them. The
point is to see real-world tag values next to your modeled documents.
Use --save to keep results in the local database; 'osmoh store fetches'
lists them later.`,
	Example: `  osmoh fetch --area "Berlin"
  osmoh fetch --area "Praha" --limit 50 --save
  osmoh fetch --bbox "52.50,13.36,52.53,13.41"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (fetchArea == "") == (fetchBbox == "") {
			return fmt.Errorf("specify exactly one of --area or --bbox")
		}

		deps, err := buildDeps()
		if err != nil {
			return err
		}

		opts := overpass.Options{Limit: fetchLimit}
		var elems []overpass.Element
		if fetchArea != "" {
			elems, err = deps.Client.ByArea(cmd.Context(), fetchArea, opts)
		} else {
			box, perr := overpass.ParseBbox(fetchBbox)
			if perr != nil {
				return perr
			}
			elems, err = deps.Client.ByBbox(cmd.Context(), box, opts)
		}
		if err != nil {
			return err
		}
		if len(elems) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No elements with an opening_hours tag found.")
			return nil
		}

		if fetchSave {
			if err := deps.RequireStore(); err != nil {
				return err
			}
			defer deps.Close()
			for _, el := range elems {
				if err := deps.Store.PutFetch(fetchRecord(el)); err != nil {
					return fmt.Errorf("saving fetch: %w", err)
				}
			}
		}

		switch deps.Config.Format {
		case "json", "yaml":
			data, err := encodeAs(elementRows(elems), deps.Config.Format)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
		case "plain":
			for _, el := range elems {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", store.FetchKey(el.Type, el.ID), el.Hours)
			}
		default:
			printSimpleTable(cmd.OutOrStdout(), []string{"ELEMENT", "NAME", "OPENING_HOURS"}, func(add func(...string)) {
				for _, el := range elems {
					add(store.FetchKey(el.Type, el.ID), truncate(el.Name, 30), truncate(el.Hours, 60))
				}
			})
		}

		if fetchSave && !deps.Config.Quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Saved %d value(s) to %s\n", len(elems), deps.Store.Path())
		}
		return nil
	},
}

// ─── Row building ─────────────────────────────────────────────────────────────

// fetchRecord converts an Overpass element into its stored form. FetchedAt
// is the store's job.
func fetchRecord(el overpass.Element) store.Fetch {
	return store.Fetch{
		ElementType: el.Type,
		ElementID:   el.ID,
		Name:        el.Name,
		Value:       el.Hours,
	}
}

// elementRow is the structured output shape of one fetched element.
type elementRow struct {
	Element string `json:"element" yaml:"element"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Hours   string `json:"opening_hours" yaml:"opening_hours"`
}

func elementRows(elems []overpass.Element) []elementRow {
	rows := make([]elementRow, 0, len(elems))
	for _, el := range elems {
		rows = append(rows, elementRow{
			Element: store.FetchKey(el.Type, el.ID),
			Name:    el.Name,
			Hours:   el.Hours,
		})
	}
	return rows
}

// ─── Registration ─────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchArea, "area", "", `named OSM area to search, e.g. "Berlin"`)
	fetchCmd.Flags().StringVar(&fetchBbox, "bbox", "", "bounding box south,west,north,east in decimal degrees")
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", overpass.DefaultLimit, "max elements to fetch")
	fetchCmd.Flags().BoolVar(&fetchSave, "save", false, "persist fetched values to the local database")
}
