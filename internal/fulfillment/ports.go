package fulfillment

import "context"

// Confirmation is the status string the Order service returns when a
// tracking number update is accepted.
type Confirmation string

// OrderService is the port for the remote Order collaborator.
// The pipeline depends on this abstraction, not on the HTTP client directly,
// so tests can swap in an in-memory fake.
type OrderService interface {
	ListPendingOrders(ctx context.Context) ([]OrderSummary, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	UpdateTrackingNumber(ctx context.Context, orderID, trackingNumber string) (Confirmation, error)
}

// ShippingService is the port for the remote Shipping collaborator.
type ShippingService interface {
	GetLabel(ctx context.Context, req LabelRequest) (LabelResult, error)
}

// LabelStore persists label documents keyed by tracking number. Writing the
// same tracking number twice replaces the stored content wholesale.
type LabelStore interface {
	Write(trackingNumber, html string) error
}
