// Package app wires together configuration, logging, the Overpass client,
// and the schedule store into a single Deps struct that commands receive
// at runtime.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Anastasialos/osmoh/internal/config"
	"github.com/Anastasialos/osmoh/internal/overpass"
	"github.com/Anastasialos/osmoh/internal/store"
)

// fetchTimeout caps an Overpass round trip. The query itself carries a
// 25s server-side timeout, so the network budget sits above that.
const fetchTimeout = 60 * time.Second

// Deps holds all runtime dependencies injected into command Run functions.
// The store opens lazily via RequireStore so commands that only transform
// documents never create a database file.
type Deps struct {
	Config *config.Config
	Logger *slog.Logger
	Client *overpass.Client
	Store  *store.Store
}

// New builds a Deps from resolved config.
func New(cfg *config.Config) *Deps {
	logger := newLogger(cfg)
	return &Deps{
		Config: cfg,
		Logger: logger,
		Client: overpass.NewClient(
			cfg.OverpassURL,
			fetchTimeout,
			cfg.RatePerSec,
			logger,
		),
	}
}

// RequireStore opens the store at the configured path. Safe to call more
// than once; later calls reuse the open handle.
func (d *Deps) RequireStore() error {
	if d.Store != nil {
		return nil
	}
	if d.Config.StorePath == "" {
		return fmt.Errorf("no store path configured (set store_path in config.json or %s)", config.EnvStorePath)
	}
	s, err := store.Open(d.Config.StorePath)
	if err != nil {
		return fmt.Errorf("opening store at %s: %w", d.Config.StorePath, err)
	}
	d.Store = s
	return nil
}

// Close releases the store if it was opened.
func (d *Deps) Close() {
	if d.Store != nil {
		_ = d.Store.Close()
		d.Store = nil
	}
}

// newLogger builds the CLI logger: text handler on stderr, level Debug
// under --verbose, level Warn under --quiet.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case cfg.Verbose:
		level = slog.LevelDebug
	case cfg.Quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
