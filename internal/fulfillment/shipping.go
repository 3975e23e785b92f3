package fulfillment

import "github.com/shopspring/decimal"

// Shipping-domain types. They mirror the order-domain types field for field
// today, but the Shipping service owns this schema and may change it without
// the Order service knowing. Do not collapse them into one set.

// ShippingProduct is a product line as the Shipping service expects it.
type ShippingProduct struct {
	Name        string
	Description string
	Price       decimal.NullDecimal
}

// LabelAddress is a postal address in the shipping domain.
type LabelAddress struct {
	Street1 string
	Street2 string
	City    string
	State   string
	Zip     string
}

// LabelCustomer identifies the recipient on a shipping label.
type LabelCustomer struct {
	FirstName       string
	LastName        string
	Email           string
	BillingAddress  LabelAddress
	ShippingAddress LabelAddress
}

// LabelRequest is the denormalized input to the label-generation call.
// Built once per order and consumed exactly once.
type LabelRequest struct {
	Customer LabelCustomer
	Products []ShippingProduct
}

// LabelResult is what the Shipping service returns for a label request.
// TrackingNumber is the join key between the shipping and order domains and
// must be non-empty before the tracking number is published.
type LabelResult struct {
	TrackingNumber string
	HTML           string
}
