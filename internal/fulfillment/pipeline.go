package fulfillment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/order-fulfillment/internal/fulfillment/runlog"
)

const tracerName = "github.com/jcmexdev/order-fulfillment/internal/fulfillment"

// Pipeline runs the fulfillment stages for a batch of pending orders.
//
// Orders are processed strictly in list order, one at a time; within an
// order every stage completes before the next begins. On the first failing
// order the batch halts: earlier orders keep the terminal state they
// reached, later orders are never touched. That way an interrupted or
// failed run leaves at most one order in an indeterminate state.
type Pipeline struct {
	orders   OrderService
	shipping ShippingService
	store    LabelStore
	log      runlog.Repository // nil-safe: transitions are not persisted if nil
}

// New wires the pipeline with its two collaborator ports and the label
// store. log may be nil.
func New(orders OrderService, shipping ShippingService, store LabelStore, log runlog.Repository) *Pipeline {
	return &Pipeline{
		orders:   orders,
		shipping: shipping,
		store:    store,
		log:      log,
	}
}

// ListPending fetches the candidate set of pending orders. A failure here is
// fatal to the whole run: no partial listing is usable.
func (p *Pipeline) ListPending(ctx context.Context) ([]OrderSummary, error) {
	pending, err := p.orders.ListPendingOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	return pending, nil
}

// Result is the terminal state one order reached.
type Result struct {
	OrderID        string
	CustomerName   string
	Stage          Stage // last stage that completed
	TotalPrice     decimal.Decimal
	TrackingNumber string
	Confirmation   Confirmation
	Err            error
}

// Fulfilled reports whether the order made it all the way through.
func (r Result) Fulfilled() bool {
	return r.Err == nil && r.Stage == StageTrackingPublished
}

// Run processes the first n orders of pending, in order. It returns one
// Result per attempted order and a non-nil error if the batch halted early.
// n must be within [0, len(pending)]; anything else fails fast with
// ErrInvalidOrderCount before any order is touched.
func (p *Pipeline) Run(ctx context.Context, pending []OrderSummary, n int) ([]Result, error) {
	if n < 0 || n > len(pending) {
		return nil, fmt.Errorf("%w: %d of %d pending", ErrInvalidOrderCount, n, len(pending))
	}

	results := make([]Result, 0, n)
	for _, summary := range pending[:n] {
		result := p.processOrder(ctx, summary)
		results = append(results, result)
		if result.Err != nil {
			return results, result.Err
		}
	}
	return results, nil
}

// processOrder drives one order through every stage.
func (p *Pipeline) processOrder(ctx context.Context, summary OrderSummary) Result {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "fulfillment.process_order",
		trace.WithAttributes(attribute.String("order.id", summary.OrderID)))
	defer span.End()

	stages := []stage{
		&aggregateStage{orders: p.orders},
		&buildRequestStage{},
		&getLabelStage{shipping: p.shipping},
		&writeArtifactStage{store: p.store},
		&publishTrackingStage{orders: p.orders},
	}

	run := &orderRun{summary: summary}
	result := Result{
		OrderID:      summary.OrderID,
		CustomerName: summary.CustomerName,
	}

	p.record(ctx, runlog.NewEntry(ctx, summary.OrderID, runlog.StatusStarted, "", "", ""))

	for _, st := range stages {
		slog.InfoContext(ctx, "executing stage", "order_id", summary.OrderID, "stage", string(st.Name()))

		if err := st.Execute(ctx, run); err != nil {
			stageErr := &StageError{OrderID: summary.OrderID, Stage: st.Name(), Err: err}
			span.RecordError(stageErr)
			slog.ErrorContext(ctx, "stage failed",
				"order_id", summary.OrderID,
				"stage", string(st.Name()),
				"error", err,
			)
			p.record(ctx, runlog.NewEntry(ctx, summary.OrderID, runlog.StatusFailed,
				string(st.Name()), result.TrackingNumber, err.Error()))
			result.Err = stageErr
			return result
		}

		result.Stage = st.Name()
		if run.current != nil {
			result.TotalPrice = run.current.TotalPrice
		}
		if run.label != nil {
			result.TrackingNumber = run.label.TrackingNumber
		}
		result.Confirmation = run.confirmation

		p.record(ctx, runlog.NewEntry(ctx, summary.OrderID, runlog.StatusStageDone,
			string(st.Name()), result.TrackingNumber, ""))
	}

	slog.InfoContext(ctx, "order fulfilled",
		"order_id", summary.OrderID,
		"tracking_number", result.TrackingNumber,
	)
	p.record(ctx, runlog.NewEntry(ctx, summary.OrderID, runlog.StatusCompleted,
		string(StageTrackingPublished), result.TrackingNumber, ""))

	return result
}

// record writes a run-log entry if a repository is configured. Log failures
// are reported but never abort the order: the log is observability, not the
// system of record.
func (p *Pipeline) record(ctx context.Context, entry *runlog.Entry) {
	if p.log == nil {
		return
	}
	if err := p.log.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to save run log entry", "order_id", entry.OrderID, "error", err)
	}
}
