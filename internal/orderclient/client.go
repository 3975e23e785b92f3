// Package orderclient is the HTTP adapter for the Order service. It
// implements the fulfillment.OrderService port and translates transport and
// status failures into the pipeline's error taxonomy.
package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/order-fulfillment/internal/api/orderv1"
	"github.com/jcmexdev/order-fulfillment/internal/fulfillment"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/httpx"
)

// Client talks to the Order service's JSON API.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ fulfillment.OrderService = (*Client)(nil)

// New returns a client for the Order service at baseURL. Outgoing requests
// carry the context's request id and an OTel client span.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: httpx.NewRequestIDTransport(otelhttp.NewTransport(http.DefaultTransport)),
		},
	}
}

// ListPendingOrders fetches the summaries of every order awaiting
// fulfillment, in the service's order.
func (c *Client) ListPendingOrders(ctx context.Context) ([]fulfillment.OrderSummary, error) {
	var res orderv1.PendingOrdersResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders/pending", nil, &res); err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: %v", fulfillment.ErrRemoteUnavailable, apiErr)
		}
		return nil, err
	}

	out := make([]fulfillment.OrderSummary, 0, len(res.Orders))
	for _, s := range res.Orders {
		out = append(out, fulfillment.OrderSummary{
			OrderID:      s.OrderID,
			CustomerName: s.CustomerName,
			OrderDate:    s.OrderDate,
		})
	}
	return out, nil
}

// GetOrder fetches one full order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*fulfillment.Order, error) {
	var res orderv1.GetOrderResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/orders/"+url.PathEscape(orderID), nil, &res)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			if apiErr.Status == http.StatusNotFound {
				return nil, fmt.Errorf("%w: %s", fulfillment.ErrOrderNotFound, orderID)
			}
			return nil, fmt.Errorf("%w: %v", fulfillment.ErrRemoteUnavailable, apiErr)
		}
		return nil, err
	}

	order := toDomainOrder(res.Order)
	return &order, nil
}

// UpdateTrackingNumber publishes the tracking number for an order. Any
// rejection by the service (unknown order, empty number) comes back as
// ErrUpdateRejected.
func (c *Client) UpdateTrackingNumber(ctx context.Context, orderID, trackingNumber string) (fulfillment.Confirmation, error) {
	req := orderv1.UpdateTrackingRequest{TrackingNumber: trackingNumber}
	var res orderv1.UpdateTrackingResponse
	err := c.do(ctx, http.MethodPut, "/api/v1/orders/"+url.PathEscape(orderID)+"/tracking-number", req, &res)
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: %v", fulfillment.ErrUpdateRejected, apiErr)
		}
		return "", err
	}
	return fulfillment.Confirmation(res.Confirmation), nil
}

func toDomainOrder(o orderv1.Order) fulfillment.Order {
	items := make([]fulfillment.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, fulfillment.LineItem{
			ProductName:        it.ProductName,
			ProductDescription: it.ProductDescription,
			UnitPrice:          it.UnitPrice,
		})
	}
	return fulfillment.Order{
		OrderID: o.OrderID,
		Customer: fulfillment.Customer{
			FirstName:       o.Customer.FirstName,
			LastName:        o.Customer.LastName,
			Email:           o.Customer.Email,
			BillingAddress:  toDomainAddress(o.Customer.BillingAddress),
			ShippingAddress: toDomainAddress(o.Customer.ShippingAddress),
		},
		Items: items,
	}
}

func toDomainAddress(a orderv1.Address) fulfillment.Address {
	return fulfillment.Address{
		Street1: a.Street1,
		Street2: a.Street2,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
	}
}

// apiError is a non-2xx response from the service. Transport failures and
// 5xx responses are wrapped in ErrRemoteUnavailable before callers see them;
// apiError reaches callers only for 4xx, which each method classifies.
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (http %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%s (http %d)", e.Code, e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", fulfillment.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &apiError{Status: resp.StatusCode, Code: "unexpected_status"}
		var er httpx.ErrorResponse
		if decErr := json.NewDecoder(resp.Body).Decode(&er); decErr == nil && er.Error != "" {
			apiErr.Code = er.Error
			apiErr.Message = er.Message
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: %v", fulfillment.ErrRemoteUnavailable, apiErr)
		}
		return apiErr
	}

	if out != nil {
		if err := httpx.Decode(resp.Body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
