package session

import "context"

// Store manages per-title session folders under a base download directory
// and the persisted recent-download history.
type Store interface {
	// EnsureFolder creates (idempotently) the session folder derived from
	// title and returns its absolute path. Titles that sanitize to the same
	// folder name share a folder; later downloads simply add files.
	EnsureFolder(ctx context.Context, title string) (string, error)

	// Record inserts an entry at the front of the history, replacing any
	// existing entry with the same URL, and rewrites the history file.
	Record(ctx context.Context, url, title string) error

	// Entries returns the history, most recent first.
	Entries() []HistoryEntry
}
