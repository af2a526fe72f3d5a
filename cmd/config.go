package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Anastasialos/osmoh/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage osmoh configuration",
	Long:  `Read and write osmoh configuration stored in config.json.`,
}

// configFilePath resolves which config file the config commands operate
// on: the --config flag when given, the home default otherwise.
func configFilePath() (string, error) {
	if globalFlags.ConfigPath != "" {
		return globalFlags.ConfigPath, nil
	}
	return config.DefaultPath()
}

// ─── config init ──────────────────────────────────────────────────────────────

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a template config.json",
	Example: `  osmoh config init
  osmoh config init --config ./osmoh.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s (edit it, or delete it to re-initialise)", path)
		}
		if err := config.WriteFile(path, config.Template()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "  Keys: %s\n", strings.Join(config.Keys, ", "))
		return nil
	},
}

// ─── config get ───────────────────────────────────────────────────────────────

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print the resolved configuration and where each value came from",
	Long: `Get resolves configuration the way every command sees it: defaults,
then config.json, then OSMOH_* environment variables, then flags. With a
key argument it prints that value alone, for scripting.`,
	Example: `  osmoh config get
  osmoh config get store_path
  osmoh config get --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.Flags{
			ConfigPath:  globalFlags.ConfigPath,
			StorePath:   globalFlags.StorePath,
			Format:      globalFlags.Format,
			Timezone:    globalFlags.Timezone,
			OverpassURL: globalFlags.OverpassURL,
			RatePerSec:  globalFlags.Rate,
		})
		if err != nil {
			return err
		}
		entries := cfg.Entries()

		if len(args) == 1 {
			key := strings.ToLower(args[0])
			for _, e := range entries {
				if e.Key == key {
					fmt.Fprintln(cmd.OutOrStdout(), e.Value)
					return nil
				}
			}
			return fmt.Errorf("unknown config key %q\n\nValid keys: %s", key, strings.Join(config.Keys, ", "))
		}

		src := "(not found)"
		if cfg.ConfigPath != "" {
			src = cfg.ConfigPath
		}

		switch cfg.Format {
		case "json", "yaml":
			out := configOut{ConfigFile: src, Entries: entryRows(entries)}
			data, err := encodeAs(out, cfg.Format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		printSimpleTable(cmd.OutOrStdout(), []string{"KEY", "VALUE", "SOURCE"}, func(add func(...string)) {
			for _, e := range entries {
				add(e.Key, e.Value, string(e.Source))
			}
		})
		fmt.Fprintf(cmd.OutOrStdout(), "\nConfig file: %s\n", src)
		return nil
	},
}

// configOut is the structured output shape of config get.
type configOut struct {
	ConfigFile string     `json:"config_file" yaml:"config_file"`
	Entries    []entryRow `json:"entries" yaml:"entries"`
}

type entryRow struct {
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
	Source string `json:"source" yaml:"source"`
}

func entryRows(entries []config.Entry) []entryRow {
	rows := make([]entryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, entryRow{Key: e.Key, Value: e.Value, Source: string(e.Source)})
	}
	return rows
}

// ─── config set ───────────────────────────────────────────────────────────────

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value in config.json",
	Example: `  osmoh config set format json
  osmoh config set timezone Europe/Berlin
  osmoh config set rate_per_sec 0.5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.ToLower(args[0])

		path, err := configFilePath()
		if err != nil {
			return err
		}
		f, err := config.ReadFile(path)
		if err != nil {
			return err
		}
		if err := config.SetKey(&f, key, args[1]); err != nil {
			return err
		}
		if err := config.WriteFile(path, f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Set %s in %s\n", key, path)
		return nil
	},
}

// ─── config path ──────────────────────────────────────────────────────────────

var configPathCmd = &cobra.Command{
	Use:     "path",
	Short:   "Print the config file path",
	Example: `  osmoh config path`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// ─── Registration ─────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
