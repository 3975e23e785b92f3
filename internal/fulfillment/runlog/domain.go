// Package runlog defines the durable audit trail of the fulfillment
// pipeline. Every stage transition of every processed order is appended as a
// row, so an operator can see exactly how far an order got (and correlate it
// with a distributed trace via the trace_id field) even after the process
// has exited.
//
// The log is observability, not a ledger: the system of record for order
// state stays with the Order service.
package runlog

import "time"

// Status is the lifecycle state an order's run was in when the entry was
// written.
type Status string

const (
	StatusStarted   Status = "STARTED"
	StatusStageDone Status = "STAGE_DONE"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Entry is a single row in the fulfillment log. Entries are immutable;
// the latest row per order id reflects its current state.
type Entry struct {
	// OrderID joins the entry with business data in the Order service.
	OrderID string

	// Status is the lifecycle state at the time of writing.
	Status Status

	// Stage is the pipeline stage that just completed or failed.
	// Empty on the STARTED row.
	Stage string

	// TrackingNumber is filled in once the label has been obtained.
	TrackingNumber string

	// ErrorMessage holds the failure detail on FAILED rows.
	ErrorMessage string

	// TraceID is the W3C trace id of the span active when the entry was
	// written. Lets you jump from a log row to the full trace.
	TraceID string

	// SpanID pinpoints the span within that trace.
	SpanID string

	// UpdatedAt is the wall-clock time of the entry.
	UpdatedAt time.Time
}
