package shippingservice_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/order-fulfillment/internal/api/shippingv1"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/httpx"
	"github.com/jcmexdev/order-fulfillment/internal/shippingservice"
)

func testLabelRequest() shippingv1.LabelRequest {
	return shippingv1.LabelRequest{
		Customer: shippingv1.Customer{
			FirstName: "Keisha",
			LastName:  "Greene",
			Email:     "keisha.greene@example.com",
			BillingAddress: shippingv1.Address{
				Street1: "14 Harbor Row", City: "Portland", State: "ME", Zip: "04101",
			},
			ShippingAddress: shippingv1.Address{
				Street1: "229 Spruce St", Street2: "Apt 3B", City: "Portland", State: "ME", Zip: "04102",
			},
		},
		Products: []shippingv1.Product{
			{Name: "Field Notebook", Description: "A5 dot-grid",
				Price: decimal.NewNullDecimal(decimal.RequireFromString("10.00"))},
			{Name: "Sticker Pack", Description: "Promotional stickers"},
		},
	}
}

func postLabel(t *testing.T, url string, req shippingv1.LabelRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	resp, err := http.Post(url+"/api/v1/labels", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestCreateLabel(t *testing.T) {
	ts := httptest.NewServer(shippingservice.New().Routes())
	defer ts.Close()

	resp := postLabel(t, ts.URL, testLabelRequest())
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res shippingv1.LabelResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))

	assert.True(t, strings.HasPrefix(res.TrackingNumber, "TRK-"), "tracking number %q", res.TrackingNumber)
	assert.Len(t, res.TrackingNumber, len("TRK-")+12)

	assert.Contains(t, res.HTML, res.TrackingNumber)
	assert.Contains(t, res.HTML, "Keisha Greene")
	assert.Contains(t, res.HTML, "229 Spruce St")
	assert.Contains(t, res.HTML, "Apt 3B")
	assert.Contains(t, res.HTML, "Field Notebook")
	assert.Contains(t, res.HTML, "Sticker Pack")
}

func TestCreateLabel_UniqueTrackingNumbers(t *testing.T) {
	ts := httptest.NewServer(shippingservice.New().Routes())
	defer ts.Close()

	seen := make(map[string]bool)
	for range 5 {
		resp := postLabel(t, ts.URL, testLabelRequest())
		var res shippingv1.LabelResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		resp.Body.Close()
		assert.False(t, seen[res.TrackingNumber], "duplicate tracking number %q", res.TrackingNumber)
		seen[res.TrackingNumber] = true
	}
}

func TestCreateLabel_NoProducts(t *testing.T) {
	ts := httptest.NewServer(shippingservice.New().Routes())
	defer ts.Close()

	req := testLabelRequest()
	req.Products = nil

	resp := postLabel(t, ts.URL, req)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "a label without contents is degenerate but printable")
}

func TestCreateLabel_MissingAddress(t *testing.T) {
	ts := httptest.NewServer(shippingservice.New().Routes())
	defer ts.Close()

	req := testLabelRequest()
	req.Customer.ShippingAddress = shippingv1.Address{}

	resp := postLabel(t, ts.URL, req)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var er httpx.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))
	assert.Equal(t, "shipping_address_required", er.Error)
}

func TestCreateLabel_InvalidJSON(t *testing.T) {
	ts := httptest.NewServer(shippingservice.New().Routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/labels", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
