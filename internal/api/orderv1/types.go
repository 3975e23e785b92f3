// Package orderv1 defines the JSON wire types for v1 of the Order service
// API, shared by the HTTP client adapter and the service implementation.
package orderv1

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderSummary struct {
	OrderID      string    `json:"orderId"`
	CustomerName string    `json:"customerName"`
	OrderDate    time.Time `json:"orderDate"`
}

type PendingOrdersResponse struct {
	Orders []OrderSummary `json:"orders"`
}

type Address struct {
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

type Customer struct {
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Email           string  `json:"emailAddress"`
	BillingAddress  Address `json:"billingAddress"`
	ShippingAddress Address `json:"shippingAddress"`
}

type LineItem struct {
	ProductName        string              `json:"productName"`
	ProductDescription string              `json:"productDescription"`
	UnitPrice          decimal.NullDecimal `json:"unitPrice"` // null when the line has no price
}

type Order struct {
	OrderID  string     `json:"orderId"`
	Customer Customer   `json:"customer"`
	Items    []LineItem `json:"items"`
}

type GetOrderResponse struct {
	Order Order `json:"order"`
}

type UpdateTrackingRequest struct {
	TrackingNumber string `json:"trackingNumber"`
}

type UpdateTrackingResponse struct {
	Confirmation string `json:"confirmation"`
}
