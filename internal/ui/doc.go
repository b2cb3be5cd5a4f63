// Package ui provides the reviewdesk terminal interface, built on Bubble Tea.
//
// # Views
//
//   - Products: the catalog table, with search and paging
//   - Product: one product with its reviews and the threaded comments
//   - Moderation: the open flag queue, visible to moderators only
//   - Activity: the tail of reviewdesk's own log file
//
// # Data Flow
//
// The Model never mutates the store. Key presses become tea.Cmds that call
// the syncer, which writes the results into state.Store. Run subscribes to
// every store container; a change is coalesced onto a one-slot channel and
// picked up by a waiting command that delivers a fresh state.Snapshot to
// Update. Per-view values the store does not carry, such as vote
// aggregates and the flag list, travel back as messages instead.
//
// # Key Bindings
//
//   - p/m/l: Products/Moderation/Activity view
//   - enter: Open the selected product or flag
//   - /: Search the catalog, n: Load more
//   - tab: Switch between reviews and comments
//   - u/d: Vote up/down, f: Flag
//   - c/R: Comment/Reply
//   - x/X: Remove/Redact (moderators)
//   - D/x/X/a: Dismiss, remove, redact or resolve a flag
//   - T: Cycle theme, L: Log out
//   - h or ?: Help, e or Ctrl+C: Exit
package ui
