package fulfillment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// AggregateOrder fetches the full order and derives the aggregate the rest
// of the pipeline works on: the shipping-domain product list and the exact
// order total.
//
// Products are copied 1:1 from the order's line items and preserve their
// order. The total is a decimal sum of the unit prices that are present; an
// absent price contributes zero. An order with no line items is accepted and
// yields an empty product list and a zero total.
func AggregateOrder(ctx context.Context, orders OrderService, orderID string) (*OrderInProcess, error) {
	order, err := orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("aggregate order %s: %w", orderID, err)
	}

	products := make([]ShippingProduct, len(order.Items))
	total := decimal.Zero
	for i, item := range order.Items {
		products[i] = ShippingProduct{
			Name:        item.ProductName,
			Description: item.ProductDescription,
			Price:       item.UnitPrice,
		}
		if item.UnitPrice.Valid {
			total = total.Add(item.UnitPrice.Decimal)
		}
	}

	return &OrderInProcess{
		Order:      *order,
		Products:   products,
		TotalPrice: total,
	}, nil
}
