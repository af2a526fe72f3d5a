package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Anastasialos/osmoh/internal/config"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

// clearEnv unsets every OSMOH_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvStorePath, "")
	t.Setenv(config.EnvFormat, "")
	t.Setenv(config.EnvTimezone, "")
	t.Setenv(config.EnvOverpassURL, "")
}

// testHome points HOME at a fresh temp dir so tests never read or write
// the developer's real ~/.osmoh.
func testHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)
	return home
}

func writeConfig(t *testing.T, path string, f config.File) {
	t.Helper()
	if err := config.WriteFile(path, f); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// ─── Defaults ─────────────────────────────────────────────────────────────────

func TestLoadDefaults(t *testing.T) {
	home := testHome(t)

	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Format != config.DefaultFormat {
		t.Errorf("Format: expected %q, got %q", config.DefaultFormat, cfg.Format)
	}
	if cfg.Timezone != config.DefaultTimezone {
		t.Errorf("Timezone: expected %q, got %q", config.DefaultTimezone, cfg.Timezone)
	}
	if cfg.OverpassURL != config.DefaultOverpassURL {
		t.Errorf("OverpassURL: expected %q, got %q", config.DefaultOverpassURL, cfg.OverpassURL)
	}
	if cfg.RatePerSec != config.DefaultRatePerSec {
		t.Errorf("RatePerSec: expected %g, got %g", config.DefaultRatePerSec, cfg.RatePerSec)
	}
	want := filepath.Join(home, ".osmoh", "osmoh.db")
	if cfg.StorePath != want {
		t.Errorf("StorePath: expected %q, got %q", want, cfg.StorePath)
	}
	if cfg.ConfigPath != "" {
		t.Errorf("ConfigPath should be empty when no file found, got %q", cfg.ConfigPath)
	}
	if src := cfg.FieldSource("format"); src != config.SourceDefault {
		t.Errorf("format source: expected default, got %q", src)
	}
}

// ─── Config file loading ──────────────────────────────────────────────────────

func TestLoadFromFile(t *testing.T) {
	testHome(t)
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, path, config.File{
		StorePath:   "/tmp/test.db",
		Format:      "json",
		Timezone:    "Europe/Berlin",
		OverpassURL: "https://overpass.example.com/api",
		RatePerSec:  2.5,
	})

	cfg, err := config.Load(config.Flags{ConfigPath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.StorePath != "/tmp/test.db" {
		t.Errorf("StorePath: expected /tmp/test.db, got %q", cfg.StorePath)
	}
	if cfg.Format != "json" {
		t.Errorf("Format: expected json, got %q", cfg.Format)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone: expected Europe/Berlin, got %q", cfg.Timezone)
	}
	if cfg.OverpassURL != "https://overpass.example.com/api" {
		t.Errorf("OverpassURL: expected custom URL, got %q", cfg.OverpassURL)
	}
	if cfg.RatePerSec != 2.5 {
		t.Errorf("RatePerSec: expected 2.5, got %g", cfg.RatePerSec)
	}
	if cfg.ConfigPath != path {
		t.Errorf("ConfigPath: expected %q, got %q", path, cfg.ConfigPath)
	}
	if src := cfg.FieldSource("format"); src != config.SourceFile {
		t.Errorf("format source: expected file, got %q", src)
	}
}

func TestLoadDiscoversHomeConfig(t *testing.T) {
	home := testHome(t)
	path := filepath.Join(home, ".osmoh", "config.json")
	writeConfig(t, path, config.File{Format: "yaml"})

	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format from ~/.osmoh/config.json: expected yaml, got %q", cfg.Format)
	}
	if !strings.Contains(cfg.ConfigPath, "config.json") {
		t.Errorf("ConfigPath should name the discovered file, got %q", cfg.ConfigPath)
	}
}

func TestLoadMissingExplicitConfigErrors(t *testing.T) {
	testHome(t)
	path := filepath.Join(t.TempDir(), "absent.json")

	_, err := config.Load(config.Flags{ConfigPath: path})
	if err == nil {
		t.Fatal("expected error for --config pointing at a missing file")
	}
}

func TestLoadBadJSONErrors(t *testing.T) {
	testHome(t)
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := config.Load(config.Flags{ConfigPath: path})
	if err == nil {
		t.Fatal("expected error for unparseable config file")
	}
}

// ─── Layer priority ───────────────────────────────────────────────────────────

func TestLoadEnvOverridesFile(t *testing.T) {
	testHome(t)
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, path, config.File{Format: "json"})
	t.Setenv(config.EnvFormat, "yaml")

	cfg, err := config.Load(config.Flags{ConfigPath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "yaml" {
		t.Errorf("env OSMOH_FORMAT should override file: expected yaml, got %q", cfg.Format)
	}
	if src := cfg.FieldSource("format"); src != config.SourceEnv {
		t.Errorf("format source: expected env, got %q", src)
	}
}

func TestLoadFlagOverridesEnvAndFile(t *testing.T) {
	testHome(t)
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, path, config.File{Format: "json"})
	t.Setenv(config.EnvFormat, "yaml")

	cfg, err := config.Load(config.Flags{ConfigPath: path, Format: "plain"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "plain" {
		t.Errorf("flag --format should override env and file: expected plain, got %q", cfg.Format)
	}
	if src := cfg.FieldSource("format"); src != config.SourceFlag {
		t.Errorf("format source: expected flag, got %q", src)
	}
}

func TestLoadEmptyFlagDoesNotOverride(t *testing.T) {
	testHome(t)
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, path, config.File{Format: "json"})

	cfg, err := config.Load(config.Flags{ConfigPath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("unset flag should not override file value: expected json, got %q", cfg.Format)
	}
}

func TestLoadEnvStorePath(t *testing.T) {
	testHome(t)
	t.Setenv(config.EnvStorePath, "/custom/path/osmoh.db")

	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorePath != "/custom/path/osmoh.db" {
		t.Errorf("OSMOH_STORE_PATH: expected /custom/path/osmoh.db, got %q", cfg.StorePath)
	}
	if src := cfg.FieldSource("store_path"); src != config.SourceEnv {
		t.Errorf("store_path source: expected env, got %q", src)
	}
}

// ─── Validate / Location ──────────────────────────────────────────────────────

func TestValidateDefaults(t *testing.T) {
	testHome(t)
	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{"bad format", config.Config{Format: "xml", Timezone: "UTC", RatePerSec: 1}, "format"},
		{"zero rate", config.Config{Format: "table", Timezone: "UTC", RatePerSec: 0}, "rate_per_sec"},
		{"bad timezone", config.Config{Format: "table", Timezone: "Mars/Olympus", RatePerSec: 1}, "timezone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error should mention %q, got: %v", tc.want, err)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := &config.Config{Timezone: "Europe/Berlin"}
	if got := cfg.Location().String(); got != "Europe/Berlin" {
		t.Errorf("Location: expected Europe/Berlin, got %q", got)
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &config.Config{Timezone: "Nowhere/Null"}
	if cfg.Location() != time.UTC {
		t.Errorf("unresolvable timezone should fall back to UTC, got %v", cfg.Location())
	}
}

// ─── SetKey ───────────────────────────────────────────────────────────────────

func TestSetKey(t *testing.T) {
	var f config.File
	sets := map[string]string{
		"store_path":   "/data/osmoh.db",
		"format":       "plain",
		"timezone":     "Europe/Berlin",
		"overpass_url": "https://overpass.example.com/api",
		"rate_per_sec": "0.5",
	}
	for key, value := range sets {
		if err := config.SetKey(&f, key, value); err != nil {
			t.Fatalf("SetKey(%s, %s): %v", key, value, err)
		}
	}

	if f.StorePath != "/data/osmoh.db" {
		t.Errorf("StorePath: got %q", f.StorePath)
	}
	if f.Format != "plain" {
		t.Errorf("Format: got %q", f.Format)
	}
	if f.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone: got %q", f.Timezone)
	}
	if f.OverpassURL != "https://overpass.example.com/api" {
		t.Errorf("OverpassURL: got %q", f.OverpassURL)
	}
	if f.RatePerSec != 0.5 {
		t.Errorf("RatePerSec: got %g", f.RatePerSec)
	}
}

func TestSetKeyRejects(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "colour", "blue"},
		{"bad format", "format", "xml"},
		{"bad timezone", "timezone", "Mars/Olympus"},
		{"rate not a number", "rate_per_sec", "fast"},
		{"rate negative", "rate_per_sec", "-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f config.File
			if err := config.SetKey(&f, tc.key, tc.value); err == nil {
				t.Errorf("SetKey(%s, %s) should fail", tc.key, tc.value)
			}
		})
	}
}

// ─── WriteFile / ReadFile / Template ──────────────────────────────────────────

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	f := config.File{
		StorePath:   "/data/osmoh.db",
		Format:      "json",
		Timezone:    "Europe/Berlin",
		OverpassURL: "https://overpass.example.com/api",
		RatePerSec:  2,
	}

	if err := config.WriteFile(path, f); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := config.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != f {
		t.Errorf("round trip mismatch:\n  wrote %+v\n  read  %+v", f, got)
	}
}

func TestWriteFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := config.WriteFile(path, config.Template()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("file permissions: expected 0600, got %04o", info.Mode().Perm())
	}
}

func TestReadFileMissingYieldsTemplate(t *testing.T) {
	got, err := config.ReadFile(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("ReadFile on a missing file should not error: %v", err)
	}
	if got != config.Template() {
		t.Errorf("expected template for missing file, got %+v", got)
	}
}

func TestTemplateDefaults(t *testing.T) {
	tmpl := config.Template()

	if tmpl.Format != config.DefaultFormat {
		t.Errorf("Template.Format: expected %q, got %q", config.DefaultFormat, tmpl.Format)
	}
	if tmpl.Timezone != config.DefaultTimezone {
		t.Errorf("Template.Timezone: expected %q, got %q", config.DefaultTimezone, tmpl.Timezone)
	}
	if !strings.HasPrefix(tmpl.OverpassURL, "https://") {
		t.Errorf("Template.OverpassURL should be an https URL, got %q", tmpl.OverpassURL)
	}
	if tmpl.RatePerSec != config.DefaultRatePerSec {
		t.Errorf("Template.RatePerSec: expected %g, got %g", config.DefaultRatePerSec, tmpl.RatePerSec)
	}
	if tmpl.StorePath != "" {
		t.Errorf("Template.StorePath should be empty (resolved at load time), got %q", tmpl.StorePath)
	}
}

func TestEntriesMatchKeys(t *testing.T) {
	testHome(t)
	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	entries := cfg.Entries()
	if len(entries) != len(config.Keys) {
		t.Fatalf("expected %d entries, got %d", len(config.Keys), len(entries))
	}
	for i, key := range config.Keys {
		if entries[i].Key != key {
			t.Errorf("entry %d: expected key %q, got %q", i, key, entries[i].Key)
		}
	}
	if entries[1].Value != "table" {
		t.Errorf("format entry value: expected table, got %q", entries[1].Value)
	}
}
