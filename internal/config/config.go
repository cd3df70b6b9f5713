package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved tote configuration.
type Config struct {
	DataDir    string
	Storage    string
	CatalogAPI string
	Theme      string
	Telemetry  Telemetry
}

// Telemetry holds the behavioural timer settings. Every field is resolved;
// IdleJitter may legitimately be zero.
type Telemetry struct {
	IdleThreshold  time.Duration
	IdleJitter     time.Duration
	BurstThreshold time.Duration
	ToggleWindow   time.Duration
	SaveDebounce   time.Duration
	HoverIntentMin time.Duration
}

const (
	defaultConfigPath = "~/.config/tote/config.toml"
	defaultDataDir    = "~/.local/share/tote"
	defaultStorage    = "file"
	defaultTheme      = "Nightfox"
)

// Storages lists the accepted storage backend names.
var Storages = []string{"file", "sqlite", "memory"}

// DefaultTelemetry returns the stock timer settings.
func DefaultTelemetry() Telemetry {
	return Telemetry{
		IdleThreshold:  30 * time.Second,
		IdleJitter:     10 * time.Second,
		BurstThreshold: 2 * time.Second,
		ToggleWindow:   20 * time.Second,
		SaveDebounce:   500 * time.Millisecond,
		HoverIntentMin: 500 * time.Millisecond,
	}
}

// DefaultPath returns the unexpanded default config location.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DataDir:   mustExpand(defaultDataDir),
		Storage:   defaultStorage,
		Theme:     defaultTheme,
		Telemetry: DefaultTelemetry(),
	}
}

type rawConfig struct {
	DataDir    string       `toml:"data_dir"`
	Storage    string       `toml:"storage"`
	CatalogAPI string       `toml:"catalog_api"`
	Theme      string       `toml:"theme"`
	Telemetry  rawTelemetry `toml:"telemetry"`
}

type rawTelemetry struct {
	IdleThresholdMS  *int64 `toml:"idle_threshold_ms"`
	IdleJitterMS     *int64 `toml:"idle_jitter_ms"`
	BurstThresholdMS *int64 `toml:"burst_threshold_ms"`
	ToggleWindowMS   *int64 `toml:"toggle_window_ms"`
	SaveDebounceMS   *int64 `toml:"save_debounce_ms"`
	HoverIntentMinMS *int64 `toml:"hover_intent_min_ms"`
}

// Load locates and parses the tote config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}

	if storage := strings.ToLower(strings.TrimSpace(raw.Storage)); storage != "" {
		if !slices.Contains(Storages, storage) {
			return Config{}, fmt.Errorf("invalid storage %q (want one of %s)", raw.Storage, strings.Join(Storages, ", "))
		}
		cfg.Storage = storage
	}

	cfg.CatalogAPI = strings.TrimRight(strings.TrimSpace(raw.CatalogAPI), "/")

	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}

	if err := raw.Telemetry.apply(&cfg.Telemetry); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (r rawTelemetry) apply(t *Telemetry) error {
	fields := []struct {
		name string
		ms   *int64
		dst  *time.Duration
		zero bool
	}{
		{"idle_threshold_ms", r.IdleThresholdMS, &t.IdleThreshold, false},
		{"idle_jitter_ms", r.IdleJitterMS, &t.IdleJitter, true},
		{"burst_threshold_ms", r.BurstThresholdMS, &t.BurstThreshold, false},
		{"toggle_window_ms", r.ToggleWindowMS, &t.ToggleWindow, false},
		{"save_debounce_ms", r.SaveDebounceMS, &t.SaveDebounce, false},
		{"hover_intent_min_ms", r.HoverIntentMinMS, &t.HoverIntentMin, false},
	}
	for _, f := range fields {
		if f.ms == nil {
			continue
		}
		switch {
		case *f.ms < 0:
			return fmt.Errorf("telemetry.%s must not be negative", f.name)
		case *f.ms == 0 && !f.zero:
			continue
		}
		*f.dst = time.Duration(*f.ms) * time.Millisecond
	}
	return nil
}

// JournalPath returns the event journal location.
func (c Config) JournalPath() string {
	return filepath.Join(c.dataDir(), "events.jsonl")
}

// LogPath returns the log file used while the TUI owns the terminal.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), "tote.log")
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
