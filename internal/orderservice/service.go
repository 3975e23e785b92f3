// Package orderservice implements the Order service the pipeline consumes.
// It keeps the system of record for orders: the pending listing, full-order
// retrieval, and the tracking-number update that marks an order fulfilled.
//
// Storage is an in-memory seeded store guarded by a mutex, with an optional
// redis read-through cache in front of full-order lookups.
package orderservice

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/order-fulfillment/internal/api/orderv1"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/cache"
)

// orderCacheTTL bounds staleness of cached full orders. Tracking updates
// invalidate eagerly; the TTL is the backstop.
const orderCacheTTL = 5 * time.Minute

type record struct {
	order          orderv1.Order
	orderDate      time.Time
	trackingNumber string
}

// Service owns the order store and serves the HTTP API.
type Service struct {
	mu      sync.RWMutex
	records map[string]*record
	listing []string // ids in listing order

	cache cache.Cache // may be nil
}

// New returns a Service seeded with pending orders. c may be nil to run
// without a cache (tests, local single-process runs).
func New(c cache.Cache) *Service {
	s := &Service{
		records: make(map[string]*record),
		cache:   c,
	}
	s.seed()
	return s
}

func (s *Service) add(rec *record) {
	s.records[rec.order.OrderID] = rec
	s.listing = append(s.listing, rec.order.OrderID)
}

// pendingSummaries returns the orders that have no tracking number yet, in
// listing order.
func (s *Service) pendingSummaries() []orderv1.OrderSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]orderv1.OrderSummary, 0, len(s.listing))
	for _, id := range s.listing {
		rec := s.records[id]
		if rec.trackingNumber != "" {
			continue
		}
		out = append(out, orderv1.OrderSummary{
			OrderID:      rec.order.OrderID,
			CustomerName: rec.order.Customer.FirstName + " " + rec.order.Customer.LastName,
			OrderDate:    rec.orderDate,
		})
	}
	return out
}

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// noPrice marks a line item whose price is unknown; it contributes zero to
// the order total downstream.
func noPrice() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

func (s *Service) seed() {
	s.add(&record{
		orderDate: time.Date(2026, time.August, 21, 9, 15, 0, 0, time.UTC),
		order: orderv1.Order{
			OrderID: "1001",
			Customer: orderv1.Customer{
				FirstName: "Keisha",
				LastName:  "Greene",
				Email:     "keisha.greene@example.com",
				BillingAddress: orderv1.Address{
					Street1: "14 Harbor Row",
					City:    "Portland",
					State:   "ME",
					Zip:     "04101",
				},
				ShippingAddress: orderv1.Address{
					Street1: "229 Spruce St",
					Street2: "Apt 3B",
					City:    "Portland",
					State:   "ME",
					Zip:     "04102",
				},
			},
			Items: []orderv1.LineItem{
				{
					ProductName:        "Field Notebook",
					ProductDescription: "A5 dot-grid notebook, 120 pages",
					UnitPrice:          price("10.00"),
				},
				{
					ProductName:        "Sticker Pack",
					ProductDescription: "Promotional stickers, assorted",
					UnitPrice:          noPrice(),
				},
				{
					ProductName:        "Gel Pen Set",
					ProductDescription: "Set of five 0.5mm gel pens",
					UnitPrice:          price("5.50"),
				},
			},
		},
	})

	s.add(&record{
		orderDate: time.Date(2026, time.August, 22, 14, 40, 0, 0, time.UTC),
		order: orderv1.Order{
			OrderID: "1002",
			Customer: orderv1.Customer{
				FirstName: "Mateo",
				LastName:  "Alvarez",
				Email:     "mateo.alvarez@example.com",
				BillingAddress: orderv1.Address{
					Street1: "801 W 5th Ave",
					City:    "Denver",
					State:   "CO",
					Zip:     "80204",
				},
				ShippingAddress: orderv1.Address{
					Street1: "801 W 5th Ave",
					City:    "Denver",
					State:   "CO",
					Zip:     "80204",
				},
			},
			Items: []orderv1.LineItem{
				{
					ProductName:        "Trail Mug",
					ProductDescription: "Enamel camping mug, 12oz",
					UnitPrice:          price("14.25"),
				},
			},
		},
	})

	s.add(&record{
		orderDate: time.Date(2026, time.August, 24, 8, 5, 0, 0, time.UTC),
		order: orderv1.Order{
			OrderID: "1003",
			Customer: orderv1.Customer{
				FirstName: "Priya",
				LastName:  "Raman",
				Email:     "priya.raman@example.com",
				BillingAddress: orderv1.Address{
					Street1: "3 Canal Walk",
					City:    "Richmond",
					State:   "VA",
					Zip:     "23219",
				},
				ShippingAddress: orderv1.Address{
					Street1: "77 Monument Ave",
					City:    "Richmond",
					State:   "VA",
					Zip:     "23220",
				},
			},
			Items: []orderv1.LineItem{
				{
					ProductName:        "Desk Lamp",
					ProductDescription: "LED desk lamp with dimmer",
					UnitPrice:          price("32.90"),
				},
				{
					ProductName:        "Lamp Shade",
					ProductDescription: "Replacement linen shade",
					UnitPrice:          price("9.10"),
				},
			},
		},
	})
}
