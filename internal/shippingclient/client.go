// Package shippingclient is the HTTP adapter for the Shipping service. It
// implements the fulfillment.ShippingService port.
package shippingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/order-fulfillment/internal/api/shippingv1"
	"github.com/jcmexdev/order-fulfillment/internal/fulfillment"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/httpx"
)

// Client talks to the Shipping service's JSON API.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ fulfillment.ShippingService = (*Client)(nil)

// New returns a client for the Shipping service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: httpx.NewRequestIDTransport(otelhttp.NewTransport(http.DefaultTransport)),
		},
	}
}

// GetLabel asks the Shipping service to generate a label. Rejections come
// back as ErrLabelGenerationFailed, transport failures and 5xx as
// ErrRemoteUnavailable.
func (c *Client) GetLabel(ctx context.Context, labelReq fulfillment.LabelRequest) (fulfillment.LabelResult, error) {
	buf, err := json.Marshal(toWireRequest(labelReq))
	if err != nil {
		return fulfillment.LabelResult{}, fmt.Errorf("encode label request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/labels", bytes.NewReader(buf))
	if err != nil {
		return fulfillment.LabelResult{}, fmt.Errorf("build label request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fulfillment.LabelResult{}, fmt.Errorf("%w: %v", fulfillment.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg := fmt.Sprintf("http %d", resp.StatusCode)
		var er httpx.ErrorResponse
		if decErr := json.NewDecoder(resp.Body).Decode(&er); decErr == nil && er.Error != "" {
			msg = fmt.Sprintf("%s (http %d): %s", er.Error, resp.StatusCode, er.Message)
		}
		if resp.StatusCode >= 500 {
			return fulfillment.LabelResult{}, fmt.Errorf("%w: %s", fulfillment.ErrRemoteUnavailable, msg)
		}
		return fulfillment.LabelResult{}, fmt.Errorf("%w: %s", fulfillment.ErrLabelGenerationFailed, msg)
	}

	var res shippingv1.LabelResponse
	if err := httpx.Decode(resp.Body, &res); err != nil {
		return fulfillment.LabelResult{}, fmt.Errorf("%w: decode response: %v", fulfillment.ErrLabelGenerationFailed, err)
	}

	return fulfillment.LabelResult{
		TrackingNumber: res.TrackingNumber,
		HTML:           res.HTML,
	}, nil
}

func toWireRequest(req fulfillment.LabelRequest) shippingv1.LabelRequest {
	products := make([]shippingv1.Product, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, shippingv1.Product{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
		})
	}
	return shippingv1.LabelRequest{
		Customer: shippingv1.Customer{
			FirstName:       req.Customer.FirstName,
			LastName:        req.Customer.LastName,
			Email:           req.Customer.Email,
			BillingAddress:  toWireAddress(req.Customer.BillingAddress),
			ShippingAddress: toWireAddress(req.Customer.ShippingAddress),
		},
		Products: products,
	}
}

func toWireAddress(a fulfillment.LabelAddress) shippingv1.Address {
	return shippingv1.Address{
		Street1: a.Street1,
		Street2: a.Street2,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
	}
}
