package fulfillment

import (
	"context"
	"fmt"
)

// Stage names the states an order moves through. The sequence is strict:
// Aggregated → LabelRequested → LabelObtained → ArtifactWritten →
// TrackingPublished, or a terminal failure carrying the stage it died in.
type Stage string

const (
	StageAggregated        Stage = "Aggregated"
	StageLabelRequested    Stage = "LabelRequested"
	StageLabelObtained     Stage = "LabelObtained"
	StageArtifactWritten   Stage = "ArtifactWritten"
	StageTrackingPublished Stage = "TrackingPublished"
)

// orderRun carries the state accumulated while one order moves through the
// stages. Each stage reads what the previous one produced and adds its own
// output. Owned exclusively by the current pipeline iteration.
type orderRun struct {
	summary      OrderSummary
	current      *OrderInProcess
	request      *LabelRequest
	label        *LabelResult
	confirmation Confirmation
}

// stage is a single unit of work in the pipeline. Stages never run
// concurrently and never out of order.
type stage interface {
	Name() Stage
	Execute(ctx context.Context, run *orderRun) error
}

// --- aggregateStage ---

// aggregateStage fetches the full order and derives the shipping products
// and exact total.
type aggregateStage struct {
	orders OrderService
}

func (s *aggregateStage) Name() Stage { return StageAggregated }

func (s *aggregateStage) Execute(ctx context.Context, run *orderRun) error {
	current, err := AggregateOrder(ctx, s.orders, run.summary.OrderID)
	if err != nil {
		return err
	}
	run.current = current
	return nil
}

// --- buildRequestStage ---

// buildRequestStage maps the aggregated order into the shipping-domain label
// request. Pure, no remote calls.
type buildRequestStage struct{}

func (s *buildRequestStage) Name() Stage { return StageLabelRequested }

func (s *buildRequestStage) Execute(ctx context.Context, run *orderRun) error {
	req := BuildLabelRequest(run.current.Order, run.current.Products)
	run.request = &req
	return nil
}

// --- getLabelStage ---

// getLabelStage calls the Shipping service with the built request.
type getLabelStage struct {
	shipping ShippingService
}

func (s *getLabelStage) Name() Stage { return StageLabelObtained }

func (s *getLabelStage) Execute(ctx context.Context, run *orderRun) error {
	result, err := s.shipping.GetLabel(ctx, *run.request)
	if err != nil {
		return fmt.Errorf("get label for order %s: %w", run.summary.OrderID, err)
	}
	if result.TrackingNumber == "" {
		return fmt.Errorf("%w: empty tracking number for order %s", ErrLabelGenerationFailed, run.summary.OrderID)
	}
	run.label = &result
	return nil
}

// --- writeArtifactStage ---

// writeArtifactStage persists the label document. Must complete before the
// tracking number is published: a label with no durable copy must never be
// reported as delivered.
type writeArtifactStage struct {
	store LabelStore
}

func (s *writeArtifactStage) Name() Stage { return StageArtifactWritten }

func (s *writeArtifactStage) Execute(ctx context.Context, run *orderRun) error {
	return s.store.Write(run.label.TrackingNumber, run.label.HTML)
}

// --- publishTrackingStage ---

// publishTrackingStage sends the tracking number back to the Order service.
// This is the step that externally commits fulfillment.
type publishTrackingStage struct {
	orders OrderService
}

func (s *publishTrackingStage) Name() Stage { return StageTrackingPublished }

func (s *publishTrackingStage) Execute(ctx context.Context, run *orderRun) error {
	confirmation, err := s.orders.UpdateTrackingNumber(ctx, run.summary.OrderID, run.label.TrackingNumber)
	if err != nil {
		return fmt.Errorf("publish tracking number for order %s: %w", run.summary.OrderID, err)
	}
	run.confirmation = confirmation
	return nil
}
