// Package config handles loading and resolving osmoh configuration.
// Resolution order (first non-empty value wins):
//  1. CLI flags (--store, --format, --timezone, ...)
//  2. Environment variables (OSMOH_STORE_PATH, OSMOH_FORMAT, ...)
//  3. config.json under ~/.osmoh/ (or the file named by --config)
//
// Every resolved field remembers which layer supplied it so that
// `osmoh config get` can show provenance.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultConfigDir   = ".osmoh"
	DefaultConfigFile  = "config.json"
	DefaultStoreFile   = "osmoh.db"
	DefaultFormat      = "table"
	DefaultTimezone    = "UTC"
	DefaultOverpassURL = "https://overpass-api.de/api/interpreter"
	DefaultRatePerSec  = 1.0
	EnvStorePath       = "OSMOH_STORE_PATH"
	EnvFormat          = "OSMOH_FORMAT"
	EnvTimezone        = "OSMOH_TIMEZONE"
	EnvOverpassURL     = "OSMOH_OVERPASS_URL"
)

// Formats lists the accepted output formats.
var Formats = []string{"table", "plain", "json", "yaml"}

// Keys lists the settable config.json field names, in display order.
var Keys = []string{"store_path", "format", "timezone", "overpass_url", "rate_per_sec"}

// Source names the layer a resolved value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// File is the on-disk representation of config.json.
type File struct {
	StorePath   string  `json:"store_path"`
	Format      string  `json:"format"`
	Timezone    string  `json:"timezone"`
	OverpassURL string  `json:"overpass_url"`
	RatePerSec  float64 `json:"rate_per_sec"`
}

// Flags carries the values of the global CLI flags. Zero fields were not
// set on the command line.
type Flags struct {
	ConfigPath  string
	StorePath   string
	Format      string
	Timezone    string
	OverpassURL string
	RatePerSec  float64
}

// Config is the fully-resolved runtime configuration.
// All callers use this struct; the File is only read during loading.
type Config struct {
	StorePath   string
	Format      string
	Timezone    string
	OverpassURL string
	RatePerSec  float64
	ConfigPath  string // path of the config.json that was loaded (empty if none found)

	// Runtime overrides set from CLI flags after Load()
	Quiet   bool
	Verbose bool

	sources map[string]Source
}

// DefaultPath returns the standard config file location, ~/.osmoh/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// Load resolves configuration from all sources.
func Load(flags Flags) (*Config, error) {
	cfg := &Config{
		Format:      DefaultFormat,
		Timezone:    DefaultTimezone,
		OverpassURL: DefaultOverpassURL,
		RatePerSec:  DefaultRatePerSec,
		sources:     map[string]Source{},
	}

	// Layer 1: config.json (lowest priority). A missing file at the
	// default location is fine; a missing file named by --config is not.
	path := flags.ConfigPath
	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		f, err := parseFile(path)
		switch {
		case err == nil:
			applyFile(cfg, f, path)
		case os.IsNotExist(err):
			if explicit {
				return nil, fmt.Errorf("config file %s does not exist", path)
			}
		default:
			return nil, err
		}
	}

	// Layer 2: environment variables
	if v := os.Getenv(EnvStorePath); v != "" {
		cfg.StorePath = v
		cfg.sources["store_path"] = SourceEnv
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
		cfg.sources["format"] = SourceEnv
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		cfg.Timezone = v
		cfg.sources["timezone"] = SourceEnv
	}
	if v := os.Getenv(EnvOverpassURL); v != "" {
		cfg.OverpassURL = v
		cfg.sources["overpass_url"] = SourceEnv
	}

	// Layer 3: CLI flags (highest priority)
	if flags.StorePath != "" {
		cfg.StorePath = flags.StorePath
		cfg.sources["store_path"] = SourceFlag
	}
	if flags.Format != "" {
		cfg.Format = flags.Format
		cfg.sources["format"] = SourceFlag
	}
	if flags.Timezone != "" {
		cfg.Timezone = flags.Timezone
		cfg.sources["timezone"] = SourceFlag
	}
	if flags.OverpassURL != "" {
		cfg.OverpassURL = flags.OverpassURL
		cfg.sources["overpass_url"] = SourceFlag
	}
	if flags.RatePerSec > 0 {
		cfg.RatePerSec = flags.RatePerSec
		cfg.sources["rate_per_sec"] = SourceFlag
	}

	// Set default store path if still unset
	if cfg.StorePath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.StorePath = filepath.Join(home, DefaultConfigDir, DefaultStoreFile)
		}
	}

	return cfg, nil
}

// Validate returns an error if a resolved field holds an unusable value.
func (c *Config) Validate() error {
	if !ValidFormat(c.Format) {
		return fmt.Errorf("unknown format %q (valid: %s)", c.Format, strings.Join(Formats, ", "))
	}
	if c.RatePerSec <= 0 {
		return fmt.Errorf("rate_per_sec must be positive, got %g", c.RatePerSec)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q", c.Timezone)
	}
	return nil
}

// ValidFormat reports whether f is one of the accepted output formats.
func ValidFormat(f string) bool {
	for _, v := range Formats {
		if f == v {
			return true
		}
	}
	return false
}

// Location resolves the configured timezone, falling back to UTC when the
// name does not resolve.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FieldSource reports which layer supplied the named field's value.
// Names are the config.json keys.
func (c *Config) FieldSource(name string) Source {
	if s, ok := c.sources[name]; ok {
		return s
	}
	return SourceDefault
}

// Entry is one resolved field with its provenance, for display.
type Entry struct {
	Key    string
	Value  string
	Source Source
}

// Entries returns every resolved field in declaration order.
func (c *Config) Entries() []Entry {
	return []Entry{
		{"store_path", c.StorePath, c.FieldSource("store_path")},
		{"format", c.Format, c.FieldSource("format")},
		{"timezone", c.Timezone, c.FieldSource("timezone")},
		{"overpass_url", c.OverpassURL, c.FieldSource("overpass_url")},
		{"rate_per_sec", strconv.FormatFloat(c.RatePerSec, 'g', -1, 64), c.FieldSource("rate_per_sec")},
	}
}

// parseFile reads and unmarshals the config file at path. Callers inspect
// os.IsNotExist on the returned error.
func parseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// applyFile copies values from a parsed File into cfg,
// skipping any fields that are zero/empty.
func applyFile(cfg *Config, f *File, path string) {
	cfg.ConfigPath = path
	if f.StorePath != "" {
		cfg.StorePath = f.StorePath
		cfg.sources["store_path"] = SourceFile
	}
	if f.Format != "" {
		cfg.Format = f.Format
		cfg.sources["format"] = SourceFile
	}
	if f.Timezone != "" {
		cfg.Timezone = f.Timezone
		cfg.sources["timezone"] = SourceFile
	}
	if f.OverpassURL != "" {
		cfg.OverpassURL = f.OverpassURL
		cfg.sources["overpass_url"] = SourceFile
	}
	if f.RatePerSec > 0 {
		cfg.RatePerSec = f.RatePerSec
		cfg.sources["rate_per_sec"] = SourceFile
	}
}

// ReadFile parses the config file at path for editing. A missing file is
// not an error; it yields the template so `config set` works before
// `config init`.
func ReadFile(path string) (File, error) {
	f, err := parseFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Template(), nil
		}
		return File{}, err
	}
	return *f, nil
}

// SetKey assigns a value to the named key in f, validating where the
// field has a closed domain.
func SetKey(f *File, key, value string) error {
	switch key {
	case "store_path":
		f.StorePath = value
	case "format":
		if !ValidFormat(value) {
			return fmt.Errorf("unknown format %q (valid: %s)", value, strings.Join(Formats, ", "))
		}
		f.Format = value
	case "timezone":
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("unknown timezone %q", value)
		}
		f.Timezone = value
	case "overpass_url":
		f.OverpassURL = value
	case "rate_per_sec":
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate <= 0 {
			return fmt.Errorf("rate_per_sec must be a positive number, got %q", value)
		}
		f.RatePerSec = rate
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Template returns a File populated with sensible defaults, suitable for
// writing an initial config.json via `osmoh config init`. The store path
// is left empty; an empty path resolves to ~/.osmoh/osmoh.db at load time.
func Template() File {
	return File{
		StorePath:   "",
		Format:      DefaultFormat,
		Timezone:    DefaultTimezone,
		OverpassURL: DefaultOverpassURL,
		RatePerSec:  DefaultRatePerSec,
	}
}

// WriteFile serialises a File to the given path, creating the parent
// directory if needed.
func WriteFile(path string, f File) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0600)
}
