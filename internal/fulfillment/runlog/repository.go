package runlog

import "context"

// Repository is the port for persisting log entries. The pipeline depends on
// this abstraction, not on SQLite directly, so the implementation can be
// swapped for tests or another store.
type Repository interface {
	// Save appends a new entry. The log is append-only, never an upsert.
	Save(ctx context.Context, entry *Entry) error
}
