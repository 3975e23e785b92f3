package fulfillment

// BuildLabelRequest maps an order-domain Order into a shipping-domain
// LabelRequest. Pure: no network, no disk, same inputs give a field-for-field
// identical result.
//
// This is the single point of schema adaptation between the two
// collaborators. If either side changes shape, only this mapping moves.
func BuildLabelRequest(order Order, products []ShippingProduct) LabelRequest {
	return LabelRequest{
		Customer: LabelCustomer{
			FirstName:       order.Customer.FirstName,
			LastName:        order.Customer.LastName,
			Email:           order.Customer.Email,
			BillingAddress:  toLabelAddress(order.Customer.BillingAddress),
			ShippingAddress: toLabelAddress(order.Customer.ShippingAddress),
		},
		Products: products,
	}
}

func toLabelAddress(a Address) LabelAddress {
	return LabelAddress{
		Street1: a.Street1,
		Street2: a.Street2,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
	}
}
