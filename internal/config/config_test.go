package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage != defaultStorage {
		t.Fatalf("Storage = %q, want %q", cfg.Storage, defaultStorage)
	}
	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.Telemetry != DefaultTelemetry() {
		t.Fatalf("Telemetry = %+v, want defaults", cfg.Telemetry)
	}
	if cfg.CatalogAPI != "" {
		t.Fatalf("CatalogAPI = %q, want empty", cfg.CatalogAPI)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(writeConfig(t, `
data_dir = "  ~/carts  "
storage = " SQLite "
catalog_api = " http://127.0.0.1:8080/ "
theme = "Slate"

[telemetry]
idle_threshold_ms = 45000
idle_jitter_ms = 0
burst_threshold_ms = 1500
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, "carts") {
		t.Fatalf("DataDir = %q, want it under HOME %q", cfg.DataDir, home)
	}
	if cfg.Storage != "sqlite" {
		t.Fatalf("Storage = %q, want sqlite", cfg.Storage)
	}
	if cfg.CatalogAPI != "http://127.0.0.1:8080" {
		t.Fatalf("CatalogAPI = %q", cfg.CatalogAPI)
	}
	if cfg.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", cfg.Theme)
	}

	want := DefaultTelemetry()
	want.IdleThreshold = 45 * time.Second
	want.IdleJitter = 0
	want.BurstThreshold = 1500 * time.Millisecond
	if cfg.Telemetry != want {
		t.Fatalf("Telemetry = %+v, want %+v", cfg.Telemetry, want)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(writeConfig(t, `
data_dir = "   "
storage = ""
theme = " "

[telemetry]
save_debounce_ms = 0
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage != defaultStorage || cfg.Theme != defaultTheme {
		t.Fatalf("cfg = %+v, want default storage and theme", cfg)
	}
	if cfg.Telemetry.SaveDebounce != 500*time.Millisecond {
		t.Fatalf("SaveDebounce = %v, want default", cfg.Telemetry.SaveDebounce)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `storage = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_RejectsUnknownStorage(t *testing.T) {
	_, err := Load(writeConfig(t, `storage = "redis"`))
	if err == nil || !strings.Contains(err.Error(), "invalid storage") {
		t.Fatalf("Load error = %v, want invalid storage", err)
	}
}

func TestLoad_RejectsNegativeDurations(t *testing.T) {
	_, err := Load(writeConfig(t, "[telemetry]\nburst_threshold_ms = -5\n"))
	if err == nil || !strings.Contains(err.Error(), "burst_threshold_ms") {
		t.Fatalf("Load error = %v, want burst_threshold_ms rejection", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestJournalPath_DefaultsWhenDataDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.JournalPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("JournalPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/events.jsonl")) {
		t.Fatalf("JournalPath = %q, want it to end with /events.jsonl", got)
	}
}
