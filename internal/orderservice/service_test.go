package orderservice_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/order-fulfillment/internal/api/orderv1"
	"github.com/jcmexdev/order-fulfillment/internal/orderservice"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/httpx"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(orderservice.New(nil).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestListPendingOrders(t *testing.T) {
	ts := newTestServer(t)

	var res orderv1.PendingOrdersResponse
	resp := getJSON(t, ts.URL+"/api/v1/orders/pending", &res)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, res.Orders, 3)
	assert.Equal(t, "1001", res.Orders[0].OrderID)
	assert.Equal(t, "Keisha Greene", res.Orders[0].CustomerName)
	assert.Equal(t, "1002", res.Orders[1].OrderID)
	assert.Equal(t, "1003", res.Orders[2].OrderID)
}

func TestGetOrder(t *testing.T) {
	ts := newTestServer(t)

	var res orderv1.GetOrderResponse
	resp := getJSON(t, ts.URL+"/api/v1/orders/1001", &res)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	order := res.Order
	assert.Equal(t, "1001", order.OrderID)
	assert.Equal(t, "Keisha", order.Customer.FirstName)
	assert.Equal(t, "229 Spruce St", order.Customer.ShippingAddress.Street1)

	require.Len(t, order.Items, 3)
	require.True(t, order.Items[0].UnitPrice.Valid)
	assert.True(t, order.Items[0].UnitPrice.Decimal.Equal(decimal.RequireFromString("10.00")))
	assert.False(t, order.Items[1].UnitPrice.Valid, "sticker pack has no price")
	require.True(t, order.Items[2].UnitPrice.Valid)
	assert.True(t, order.Items[2].UnitPrice.Decimal.Equal(decimal.RequireFromString("5.50")))
}

func TestGetOrder_NotFound(t *testing.T) {
	ts := newTestServer(t)

	var er httpx.ErrorResponse
	resp := getJSON(t, ts.URL+"/api/v1/orders/9999", &er)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "order_not_found", er.Error)
}

func putTracking(t *testing.T, url, trackingNumber string) *http.Response {
	t.Helper()
	body, err := json.Marshal(orderv1.UpdateTrackingRequest{TrackingNumber: trackingNumber})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestUpdateTrackingNumber(t *testing.T) {
	ts := newTestServer(t)

	resp := putTracking(t, ts.URL+"/api/v1/orders/1002/tracking-number", "TRK-TEST-01")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res orderv1.UpdateTrackingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Contains(t, res.Confirmation, "TRK-TEST-01")

	// A tracked order is no longer pending.
	var pending orderv1.PendingOrdersResponse
	getJSON(t, ts.URL+"/api/v1/orders/pending", &pending)
	require.Len(t, pending.Orders, 2)
	for _, summary := range pending.Orders {
		assert.NotEqual(t, "1002", summary.OrderID)
	}
}

func TestUpdateTrackingNumber_Rejections(t *testing.T) {
	ts := newTestServer(t)

	resp := putTracking(t, ts.URL+"/api/v1/orders/1001/tracking-number", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = putTracking(t, ts.URL+"/api/v1/orders/9999/tracking-number", "TRK-X")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/orders/pending", nil)
	require.NoError(t, err)
	req.Header.Set(httpx.HeaderRequestID, "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "req-123", resp.Header.Get(httpx.HeaderRequestID))
}
