// Package app is the composition root for tote.
//
// # Overview
//
// Open turns configuration into a live cart session:
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Read ~/.config/tote/config.toml
//	       ├─────> persist.Open()        file | sqlite | memory backend
//	       ├─────> events.OpenJournal()  Append-only activity log
//	       ├─────> state.New()           Store with DOM + journal sinks
//	       ├─────> bootstrap()           Saved cart, else legacy migration
//	       └─────> binding.NewProvider() Handle for presentation code
//
// Run opens a session, fills the catalog cache, starts the catalog poller
// when a remote catalog is configured, and hands the provider to the TUI.
// The CLI commands use Open directly for one-shot edits.
//
// # Startup Order
//
// The current slot always wins. The legacy slot is only read when the
// current slot is absent or unusable; a successful migration is saved
// immediately and the legacy slot is removed, so it happens once.
//
// # Polling Behavior
//
// The poller refreshes the catalog every 10 seconds. Consecutive failures
// double the wait up to 30 seconds, and the cache keeps serving the last
// good product list while marking itself offline after two failures.
//
// # Shutdown
//
// Session.Close flushes any pending debounced save before tearing the store
// down, then closes the journal and the storage backend.
package app
