// Package app is the composition root of reviewdesk.
//
// Run loads the configuration, opens the log file, builds the API client,
// the shared state.Store and the syncer, optionally exposes Prometheus
// metrics, then starts the session poller and blocks in the TUI until the
// user quits or the context is cancelled.
//
// Startup order:
//
//  1. config.Load: defaults, then config.toml, then REVIEWDESK_* variables
//  2. logging.New: JSON lines (or console output) to the configured file
//  3. prefs.Load: theme and last search
//  4. api.NewClient with the metrics collector as request observer
//  5. syncer.New over a fresh state.Store
//  6. initial CheckAuthStatus and FetchProducts
//  7. StartPoller, then ui.Run
//
// The poller only refreshes the session. Catalog data is refreshed on demand
// from the UI.
//
// Startup fails on an invalid configuration, an unwritable log file, an
// unparsable API base URL, or a metrics address that cannot be bound. An
// unreachable review service is logged and the UI starts anyway.
package app
