// Package config loads reviewdesk's startup configuration.
//
// # Resolution Order
//
//  1. Built-in defaults (Default)
//  2. The TOML file at the given path, or ~/.config/reviewdesk/config.toml
//  3. REVIEWDESK_* environment variables, after loading ./.env if present
//
// A missing config file is not an error. Empty strings in the file fall back
// to defaults, and the result is validated before it is returned.
//
// # TOML Format
//
//	api_base = "http://127.0.0.1:8000"
//	product_limit = 30
//	vote_concurrency = 0   # 0 = every vote lookup at once
//	log_level = "info"
//	log_file = "~/.local/state/reviewdesk/reviewdesk.log"
//	log_pretty = false
//	metrics_addr = ""      # e.g. "127.0.0.1:9464" to serve /metrics
//	poll_seconds = 30
//
// Every key maps to an environment variable of the same name, upper-cased
// and prefixed: log_level becomes REVIEWDESK_LOG_LEVEL.
//
// Tilde expansion is applied to the config path and log_file.
package config
