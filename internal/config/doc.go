// Package config loads tote's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tote/config.toml
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// # Default Values
//
//   - Data directory: ~/.local/share/tote
//   - Storage backend: file
//   - Catalog: built-in product list (catalog_api empty)
//   - Theme: Nightfox
//   - Idle threshold 30s, jitter 10s, burst 2s, toggle window 20s,
//     save debounce 500ms, hover minimum 500ms
//
// # TOML Format
//
//	data_dir = "~/.local/share/tote"
//	storage = "sqlite"            # file | sqlite | memory
//	catalog_api = "http://127.0.0.1:8080"
//	theme = "Kanagawa"
//
//	[telemetry]
//	idle_threshold_ms = 45000
//	idle_jitter_ms = 0            # zero disables jitter
//	burst_threshold_ms = 1500
//
// A zero telemetry value means "use the default", except idle_jitter_ms
// where zero turns jitter off. Negative values are rejected.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors ("parse config: ...")
//   - An unknown storage name or a negative duration
//
// Missing config files are NOT an error, so tote works with no setup.
package config
