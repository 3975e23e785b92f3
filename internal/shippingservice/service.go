// Package shippingservice implements the Shipping service the pipeline
// consumes: it assigns a tracking number and renders the label document for
// a label request.
package shippingservice

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/jcmexdev/order-fulfillment/internal/api/shippingv1"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/httpx"
)

// Service serves the label-generation API.
type Service struct{}

func New() *Service {
	return &Service{}
}

// Routes builds the HTTP surface of the Shipping service.
func (s *Service) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(httpx.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/api/v1/labels", s.handleCreateLabel)
	return r
}

func (s *Service) handleCreateLabel(w http.ResponseWriter, r *http.Request) {
	var req shippingv1.LabelRequest
	if err := httpx.Decode(r.Body, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	// A label with no destination is unprintable. Product lines may be
	// empty; that just yields a label with no contents section entries.
	if req.Customer.ShippingAddress.Street1 == "" || req.Customer.ShippingAddress.City == "" {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "shipping_address_required", "")
		return
	}

	trackingNumber := NewTrackingNumber()
	html, err := renderLabel(trackingNumber, req)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "label_render_failed", err.Error())
		return
	}

	slog.InfoContext(r.Context(), "label generated",
		"tracking_number", trackingNumber,
		"products", len(req.Products),
	)
	httpx.WriteJSON(w, http.StatusOK, shippingv1.LabelResponse{
		TrackingNumber: trackingNumber,
		HTML:           html,
	})
}

// NewTrackingNumber mints a carrier-style identifier. Uniqueness comes from
// the uuid; the label store keys artifacts on it.
func NewTrackingNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TRK-" + raw[:12]
}
