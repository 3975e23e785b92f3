// Package fulfillment implements the order fulfillment pipeline: it takes a
// batch of pending orders, generates a shipping label for each one through
// the Shipping service, stores the label document locally, and publishes the
// resulting tracking number back to the Order service.
//
// The package keeps two structurally similar but deliberately separate sets
// of types: the order domain (what the Order service returns) and the
// shipping domain (what the Shipping service consumes). The two evolve
// independently; BuildLabelRequest is the only place they meet.
package fulfillment

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSummary is the lightweight record returned by the pending-orders
// listing. It carries just enough to drive selection and the full lookup.
type OrderSummary struct {
	OrderID      string
	CustomerName string
	OrderDate    time.Time
}

// Address is a postal address in the order domain.
type Address struct {
	Street1 string
	Street2 string
	City    string
	State   string
	Zip     string
}

// Customer holds the buyer identity and both addresses for an order.
type Customer struct {
	FirstName       string
	LastName        string
	Email           string
	BillingAddress  Address
	ShippingAddress Address
}

// LineItem is a single product line on an order. UnitPrice may be absent,
// in which case the line contributes zero to the order total.
type LineItem struct {
	ProductName        string
	ProductDescription string
	UnitPrice          decimal.NullDecimal
}

// Order is the full order as returned by the Order service.
type Order struct {
	OrderID  string
	Customer Customer
	Items    []LineItem
}

// OrderInProcess is the transient aggregate built for the order currently
// moving through the pipeline. It is created fresh per order and discarded
// once the tracking number has been published.
type OrderInProcess struct {
	Order      Order
	Products   []ShippingProduct
	TotalPrice decimal.Decimal
}
