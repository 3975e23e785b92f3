// Package sqlite provides a SQLite-backed implementation of
// runlog.Repository.
//
// WAL mode is enabled on Open so a reader (an operator inspecting the log)
// never blocks the pipeline's writes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jcmexdev/order-fulfillment/internal/fulfillment/runlog"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO, so
	// the CLI builds and runs anywhere without a C toolchain.
	_ "modernc.org/sqlite"
)

// schema is the DDL applied once on Open. The table is append-only: each row
// is an immutable event in an order's fulfillment run.
const schema = `
CREATE TABLE IF NOT EXISTS fulfillment_logs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Business identifier; not UNIQUE, one row per stage transition.
    order_id        TEXT        NOT NULL,

    -- Lifecycle state at the time this row was written.
    status          TEXT        NOT NULL,

    -- Pipeline stage that just completed or failed ('' on the STARTED row).
    current_stage   TEXT        NOT NULL DEFAULT '',

    -- Tracking number, once the label has been obtained.
    tracking_number TEXT        NOT NULL DEFAULT '',

    -- Failure detail on FAILED rows.
    error_message   TEXT        NOT NULL DEFAULT '',

    -- W3C trace_id / span_id from the active OTel span.
    trace_id        TEXT        NOT NULL DEFAULT '',
    span_id         TEXT        NOT NULL DEFAULT '',

    -- RFC3339 stored as TEXT, the SQLite idiom.
    updated_at      TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fulfillment_logs_order_id
    ON fulfillment_logs(order_id, updated_at);

CREATE INDEX IF NOT EXISTS idx_fulfillment_logs_trace_id
    ON fulfillment_logs(trace_id);
`

// timeFormat is how updated_at is written: UTC RFC3339 TEXT, so rows sort
// chronologically under a plain lexical ORDER BY.
const timeFormat = "2006-01-02T15:04:05.999999999Z"

// Repository is the SQLite implementation of runlog.Repository.
type Repository struct {
	db *sql.DB
}

var _ runlog.Repository = (*Repository)(nil)

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Repository, error) {
	// busy_timeout waits for locks instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	// "sqlite", not "sqlite3", for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends a new log entry.
func (r *Repository) Save(ctx context.Context, entry *runlog.Entry) error {
	const q = `
		INSERT INTO fulfillment_logs
			(order_id, status, current_stage, tracking_number, error_message, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.OrderID,
		string(entry.Status),
		entry.Stage,
		entry.TrackingNumber,
		entry.ErrorMessage,
		entry.TraceID,
		entry.SpanID,
		entry.UpdatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save log entry for %q: %w", entry.OrderID, err)
	}
	return nil
}

// Latest returns the most recent entry for the given order id, telling an
// operator how far the order got.
func (r *Repository) Latest(ctx context.Context, orderID string) (*runlog.Entry, error) {
	const q = `
		SELECT order_id, status, current_stage, tracking_number, error_message,
		       trace_id, span_id, updated_at
		FROM   fulfillment_logs
		WHERE  order_id = ?
		ORDER  BY updated_at DESC, id DESC
		LIMIT  1`

	row := r.db.QueryRowContext(ctx, q, orderID)

	var entry runlog.Entry
	var updatedAt string
	err := row.Scan(
		&entry.OrderID,
		&entry.Status,
		&entry.Stage,
		&entry.TrackingNumber,
		&entry.ErrorMessage,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sqlite: no log entries for order %q", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: latest entry for %q: %w", orderID, err)
	}

	entry.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: bad updated_at %q on order %q: %w", updatedAt, orderID, err)
	}

	return &entry, nil
}
