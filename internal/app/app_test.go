package app_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/Anastasialos/osmoh/internal/app"
	"github.com/Anastasialos/osmoh/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StorePath:   filepath.Join(t.TempDir(), "test.db"),
		Format:      "table",
		Timezone:    "UTC",
		OverpassURL: config.DefaultOverpassURL,
		RatePerSec:  1,
	}
}

func TestNewBuildsClientAndLogger(t *testing.T) {
	deps := app.New(testConfig(t))
	if deps.Client == nil {
		t.Error("New should construct the fetch client")
	}
	if deps.Logger == nil {
		t.Error("New should construct the logger")
	}
	if deps.Store != nil {
		t.Error("New should not open the store")
	}
}

func TestRequireStoreOpensOnce(t *testing.T) {
	deps := app.New(testConfig(t))
	defer deps.Close()

	if err := deps.RequireStore(); err != nil {
		t.Fatalf("RequireStore: %v", err)
	}
	if deps.Store == nil {
		t.Fatal("store should be open after RequireStore")
	}

	first := deps.Store
	if err := deps.RequireStore(); err != nil {
		t.Fatalf("second RequireStore: %v", err)
	}
	if deps.Store != first {
		t.Error("second RequireStore should reuse the open handle")
	}
}

func TestRequireStoreWithoutPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorePath = ""
	deps := app.New(cfg)

	if err := deps.RequireStore(); err == nil {
		t.Fatal("expected error when no store path is configured")
	}
}

func TestCloseIsSafeWithoutStore(t *testing.T) {
	deps := app.New(testConfig(t))
	deps.Close()
	deps.Close()
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()

	verbose := testConfig(t)
	verbose.Verbose = true
	if !app.New(verbose).Logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("verbose logger should enable debug")
	}

	quiet := testConfig(t)
	quiet.Quiet = true
	if app.New(quiet).Logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("quiet logger should drop info")
	}

	plain := testConfig(t)
	if app.New(plain).Logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("default logger should not enable debug")
	}
}
