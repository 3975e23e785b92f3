package runlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OpenTelemetry identifiers extracted from a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo reads the active span from ctx and returns its trace and
// span ids as hex strings. Both come back empty when no span is active
// (e.g. in unit tests); callers should treat that as normal.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an Entry with the trace info extracted from ctx.
func NewEntry(ctx context.Context, orderID string, status Status, stage, trackingNumber, errMsg string) *Entry {
	ti := ExtractTraceInfo(ctx)
	return &Entry{
		OrderID:        orderID,
		Status:         status,
		Stage:          stage,
		TrackingNumber: trackingNumber,
		ErrorMessage:   errMsg,
		TraceID:        ti.TraceID,
		SpanID:         ti.SpanID,
		UpdatedAt:      time.Now().UTC(),
	}
}
