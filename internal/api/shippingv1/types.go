// Package shippingv1 defines the JSON wire types for v1 of the Shipping
// service API.
//
// The address and customer shapes duplicate orderv1 on purpose: the two
// services own their schemas independently and either may drift.
package shippingv1

import "github.com/shopspring/decimal"

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

type Product struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
}

type LabelRequest struct {
	Customer Customer  `json:"customer"`
	Products []Product `json:"products"`
}

type LabelResponse struct {
	TrackingNumber string `json:"trackingNumber"`
	HTML           string `json:"html"`
}
