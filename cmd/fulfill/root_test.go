package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/order-fulfillment/internal/fulfillment/runlog"
	"github.com/jcmexdev/order-fulfillment/internal/fulfillment/runlog/sqlite"
	"github.com/jcmexdev/order-fulfillment/internal/orderservice"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/httpx"
	"github.com/jcmexdev/order-fulfillment/internal/shippingservice"
)

// headerRecorder captures the request id each incoming request carries
// before the service's own middleware gets a chance to mint one.
type headerRecorder struct {
	mu   sync.Mutex
	ids  []string
	next http.Handler
}

func (h *headerRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.ids = append(h.ids, r.Header.Get(httpx.HeaderRequestID))
	h.mu.Unlock()
	h.next.ServeHTTP(w, r)
}

func TestRunStampsOneRequestIDOnEveryCall(t *testing.T) {
	orderRec := &headerRecorder{next: orderservice.New(nil).Routes()}
	shipRec := &headerRecorder{next: shippingservice.New().Routes()}

	orderTS := httptest.NewServer(orderRec)
	defer orderTS.Close()
	shipTS := httptest.NewServer(shipRec)
	defer shipTS.Close()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"--order-service", orderTS.URL,
		"--shipping-service", shipTS.URL,
		"--labels-dir", filepath.Join(t.TempDir(), "labels"),
		"--run-log", "",
		"--count", "1",
	})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Processed 1 of 3 pending orders.")

	// list pending, get order, publish tracking on the order side; one
	// label call on the shipping side. Every call carries the same id.
	require.Len(t, orderRec.ids, 3)
	require.Len(t, shipRec.ids, 1)

	runID := orderRec.ids[0]
	require.NotEmpty(t, runID)
	for _, id := range append(orderRec.ids, shipRec.ids...) {
		assert.Equal(t, runID, id)
	}
}

func TestStatusReportsLatestRunLogEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")

	repo, err := sqlite.Open(path)
	require.NoError(t, err)
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(context.Background(), &runlog.Entry{
		OrderID:   "1001",
		Status:    runlog.StatusStarted,
		UpdatedAt: base,
	}))
	require.NoError(t, repo.Save(context.Background(), &runlog.Entry{
		OrderID:        "1001",
		Status:         runlog.StatusCompleted,
		Stage:          "TrackingPublished",
		TrackingNumber: "TRK-001",
		UpdatedAt:      base.Add(2 * time.Second),
	}))
	require.NoError(t, repo.Close())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"status", "1001", "--run-log", path})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Order 1001: COMPLETED")
	assert.Contains(t, out.String(), "Last stage: TrackingPublished")
	assert.Contains(t, out.String(), "Tracking number: TRK-001")
}

func TestStatusUnknownOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"status", "9999", "--run-log", path})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "9999")
}
