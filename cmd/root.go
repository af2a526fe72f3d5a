// Package cmd implements the osmoh CLI command tree.
// This file defines the root command and registers all global persistent flags.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Anastasialos/osmoh/internal/app"
	"github.com/Anastasialos/osmoh/internal/config"
	"github.com/Anastasialos/osmoh/internal/document"
)

// globalFlags holds the parsed values of all persistent (global) flags.
// Commands read from this struct via the deps they receive.
var globalFlags struct {
	ConfigPath  string
	StorePath   string
	Format      string
	Out         string
	Timezone    string
	OverpassURL string
	Rate        float64
	Quiet       bool
	Verbose     bool
}

// rootCmd is the base command. Running `osmoh` with no subcommand
// prints help.
var rootCmd = &cobra.Command{
	Use:   "osmoh",
	Short: "osmoh — model, validate, and render OSM opening_hours values",
	Long: `osmoh works with OpenStreetMap opening_hours values as structured
documents: rules are written field by field in YAML or JSON, checked for
problems, and rendered to canonical tag text.

The tag grammar is documented at:
https://wiki.openstreetmap.org/wiki/Key:opening_hours/specification

Quick start:
  osmoh render hours.yaml       # document to canonical tag text
  osmoh check hours.yaml        # validation report
  osmoh grid hours.yaml         # weekly coverage grid
  osmoh fetch --area "Berlin"   # raw values from the Overpass API`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries a specific process exit code through RunE. Execute
// prints the message like any other error and exits with the carried code,
// so `check` can signal validation failures distinctly from I/O failures.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var xe *exitError
		if errors.As(err, &xe) {
			os.Exit(xe.code)
		}
		os.Exit(1)
	}
}

// buildDeps resolves config and constructs the dependency container.
// Called at the start of each command's RunE.
func buildDeps() (*app.Deps, error) {
	cfg, err := config.Load(config.Flags{
		ConfigPath:  globalFlags.ConfigPath,
		StorePath:   globalFlags.StorePath,
		Format:      globalFlags.Format,
		Timezone:    globalFlags.Timezone,
		OverpassURL: globalFlags.OverpassURL,
		RatePerSec:  globalFlags.Rate,
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Quiet = globalFlags.Quiet
	cfg.Verbose = globalFlags.Verbose

	// Nobody asked for a format and stdout is a pipe: emit plain rows
	// instead of a box-drawing table.
	if cfg.FieldSource("format") == config.SourceDefault && !document.IsTTY() {
		cfg.Format = "plain"
	}

	return app.New(cfg), nil
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&globalFlags.ConfigPath, "config", "",
		"path to config.json (default: ~/.osmoh/config.json)")
	pf.StringVar(&globalFlags.StorePath, "store", "",
		"path to the local database (default: ~/.osmoh/osmoh.db)")
	pf.StringVar(&globalFlags.Format, "format", "",
		"output format: table|plain|json|yaml (default: table)")
	pf.StringVarP(&globalFlags.Out, "out", "o", "",
		"write output to file instead of stdout")
	pf.StringVar(&globalFlags.Timezone, "timezone", "",
		"IANA timezone for calendar export (default: UTC)")
	pf.StringVar(&globalFlags.OverpassURL, "overpass-url", "",
		"Overpass API endpoint")
	pf.Float64Var(&globalFlags.Rate, "rate", 0,
		"max Overpass requests per second (default: 1.0)")
	pf.BoolVar(&globalFlags.Quiet, "quiet", false,
		"suppress all non-error output")
	pf.BoolVar(&globalFlags.Verbose, "verbose", false,
		"enable debug logging")
}
