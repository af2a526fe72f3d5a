package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is the canonical release string. The default here is the fallback
// for `go run` and untagged builds. Release builds overwrite this via:
//
//	go build -ldflags "-X github.com/Anastasialos/osmoh/cmd.Version=v0.4.0"
var Version = "v0.3.1"

// BuildTime is optionally injected at build time alongside Version:
//
//	-ldflags "-X github.com/Anastasialos/osmoh/cmd.BuildTime=2026-08-01T12:00:00Z"
var BuildTime = ""

// versionInfo is the structured payload for --format json output.
type versionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GOOS      string `json:"goos"`
	GOARCH    string `json:"goarch"`
	BuildTime string `json:"build_time,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the osmoh version and build information",
	Long: `Print the osmoh version string and build metadata.

Default output is plain text, suitable for shell scripts and pipelines.
Use --format json for structured output.`,
	Example: `  osmoh version
  osmoh version --format json | jq .version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := versionInfo{
			Version:   Version,
			GoVersion: runtime.Version(),
			GOOS:      runtime.GOOS,
			GOARCH:    runtime.GOARCH,
			BuildTime: BuildTime,
		}

		switch globalFlags.Format {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)

		default:
			// Plain text, one value per line, grep/awk friendly.
			fmt.Fprintf(cmd.OutOrStdout(), "osmoh %s\n", info.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "go    %s\n", info.GoVersion)
			fmt.Fprintf(cmd.OutOrStdout(), "os    %s/%s\n", info.GOOS, info.GOARCH)
			if info.BuildTime != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", info.BuildTime)
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
