package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/Anastasialos/osmoh/internal/model"
	"github.com/Anastasialos/osmoh/internal/util"
)

// docArg returns the document path from positional args; omitted means
// stdin ("-").
func docArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// outputWriter returns the writer command output goes to. With --out set
// it creates (or truncates) that file; otherwise it passes def through.
// The returned close function must always be called.
func outputWriter(def io.Writer) (io.Writer, func() error, error) {
	if globalFlags.Out == "" {
		return def, func() error { return nil }, nil
	}
	f, err := os.Create(globalFlags.Out)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

// encodeAs marshals v for the structured output formats. Table and plain
// rendering stay with each command.
func encodeAs(v interface{}, format string) ([]byte, error) {
	if format == "yaml" {
		return yaml.Marshal(v)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// printSimpleTable renders a simple table with headers using tablewriter.
// The add callback is called with row values as variadic strings.
func printSimpleTable(w io.Writer, headers []string, fill func(add func(...string))) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(headers)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	fill(func(cols ...string) {
		tw.Append(cols)
	})
	tw.Render()
}

// printKVTable renders a two-column key/value listing with aligned columns.
func printKVTable(w io.Writer, rows [][]string) {
	maxKey := 0
	for _, r := range rows {
		if len(r[0]) > maxKey {
			maxKey = len(r[0])
		}
	}
	for _, r := range rows {
		padding := strings.Repeat(" ", maxKey-len(r[0]))
		fmt.Fprintf(w, "  %s%s  %s\n", r[0], padding, r[1])
	}
}

// truncate shortens s to max characters for table cells.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// parseClock parses an HH:MM flag value into a time within the day.
// Unlike document times, sun event flags cannot run past midnight.
func parseClock(s string) (model.Time, error) {
	h, m, err := util.ParseClock(s)
	if err != nil || h > 23 {
		return model.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return model.NewTime(h, m), nil
}

// humanBytes formats a byte count for table display.
func humanBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
