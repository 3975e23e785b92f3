package shippingclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/order-fulfillment/internal/api/shippingv1"
	"github.com/jcmexdev/order-fulfillment/internal/fulfillment"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/httpx"
	"github.com/jcmexdev/order-fulfillment/internal/shippingclient"
)

func testLabelRequest() fulfillment.LabelRequest {
	return fulfillment.LabelRequest{
		Customer: fulfillment.LabelCustomer{
			FirstName: "Keisha",
			LastName:  "Greene",
			Email:     "keisha.greene@example.com",
			ShippingAddress: fulfillment.LabelAddress{
				Street1: "229 Spruce St", City: "Portland", State: "ME", Zip: "04102",
			},
		},
		Products: []fulfillment.ShippingProduct{
			{Name: "Field Notebook", Description: "A5 dot-grid",
				Price: decimal.NewNullDecimal(decimal.RequireFromString("10.00"))},
			{Name: "Sticker Pack", Description: "Promotional stickers"},
		},
	}
}

func TestGetLabel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/labels", r.URL.Path)

		var req shippingv1.LabelRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Keisha", req.Customer.FirstName)
		require.Len(t, req.Products, 2)
		assert.Equal(t, "Field Notebook", req.Products[0].Name)
		assert.False(t, req.Products[1].Price.Valid)

		httpx.WriteJSON(w, http.StatusOK, shippingv1.LabelResponse{
			TrackingNumber: "TRK-001",
			HTML:           "<html>label</html>",
		})
	}))
	defer ts.Close()

	client := shippingclient.New(ts.URL)
	result, err := client.GetLabel(context.Background(), testLabelRequest())
	require.NoError(t, err)
	assert.Equal(t, "TRK-001", result.TrackingNumber)
	assert.Equal(t, "<html>label</html>", result.HTML)
}

func TestGetLabel_Rejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "shipping_address_required", "")
	}))
	defer ts.Close()

	client := shippingclient.New(ts.URL)
	_, err := client.GetLabel(context.Background(), testLabelRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, fulfillment.ErrLabelGenerationFailed)
}

func TestGetLabel_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusInternalServerError, "internal", "boom")
	}))
	defer ts.Close()

	client := shippingclient.New(ts.URL)
	_, err := client.GetLabel(context.Background(), testLabelRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, fulfillment.ErrRemoteUnavailable)
}

func TestGetLabel_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	client := shippingclient.New(url)
	_, err := client.GetLabel(context.Background(), testLabelRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, fulfillment.ErrRemoteUnavailable)
}
