package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOutputWriterDefault(t *testing.T) {
	globalFlags.Out = ""
	w, closeFn, err := outputWriter(os.Stdout)
	if err != nil {
		t.Fatalf("outputWriter default: %v", err)
	}
	if w != os.Stdout {
		t.Fatalf("expected stdout writer passthrough")
	}
	if err := closeFn(); err != nil {
		t.Fatalf("default closer should be nil error, got: %v", err)
	}
}

func TestOutputWriterFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.txt")
	globalFlags.Out = p
	t.Cleanup(func() { globalFlags.Out = "" })

	w, closeFn, err := outputWriter(os.Stdout)
	if err != nil {
		t.Fatalf("outputWriter file: %v", err)
	}
	if w == os.Stdout {
		t.Fatalf("expected file writer, got stdout")
	}
	if err := closeFn(); err != nil {
		t.Fatalf("closing output writer: %v", err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
}

func TestDocArgDefaultsToStdin(t *testing.T) {
	if got := docArg(nil); got != "-" {
		t.Fatalf("expected stdin marker for no args, got %q", got)
	}
	if got := docArg([]string{"hours.yaml"}); got != "hours.yaml" {
		t.Fatalf("expected positional path, got %q", got)
	}
}

func TestParseClock(t *testing.T) {
	cases := map[string][2]int{
		"09:30": {9, 30},
		"0:00":  {0, 0},
		"23:59": {23, 59},
	}
	for in, want := range cases {
		got, err := parseClock(in)
		if err != nil {
			t.Fatalf("parseClock(%q): %v", in, err)
		}
		if got.Hours() != want[0] || got.Minutes() != want[1] {
			t.Fatalf("parseClock(%q) = %d:%d, want %d:%d",
				in, got.Hours(), got.Minutes(), want[0], want[1])
		}
	}
}

func TestParseClockRejects(t *testing.T) {
	for _, in := range []string{"25:00", "12:60", "12", "ab:cd", ""} {
		if _, err := parseClock(in); err == nil {
			t.Fatalf("parseClock(%q): expected error, got none", in)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("short strings should pass through, got %q", got)
	}
	if got := truncate("0123456789", 8); got != "01234..." {
		t.Fatalf("expected 01234..., got %q", got)
	}
}

func TestHumanBytes(t *testing.T) {
	cases := map[int64]string{
		512:     "512 B",
		2048:    "2.0 KB",
		3 << 20: "3.0 MB",
	}
	for in, want := range cases {
		if got := humanBytes(in); got != want {
			t.Fatalf("humanBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
