// Package logtail reads the tail of reviewdesk's own log file and turns the
// zerolog JSON lines into compact one-line summaries for the Activity view.
//
// Lines written by the console writer (log_pretty = true) are not JSON and
// pass through unchanged as Entry.Raw.
package logtail
