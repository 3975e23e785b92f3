package orderservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/order-fulfillment/internal/api/orderv1"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/httpx"
)

// Routes builds the HTTP surface of the Order service.
func (s *Service) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(httpx.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/pending", s.handleListPending)
		r.Get("/{id}", s.handleGetOrder)
		r.Put("/{id}/tracking-number", s.handleUpdateTracking)
	})
	return r
}

func (s *Service) handleListPending(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, orderv1.PendingOrdersResponse{
		Orders: s.pendingSummaries(),
	})
}

func (s *Service) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if order, ok := s.cachedOrder(r.Context(), id); ok {
		httpx.WriteJSON(w, http.StatusOK, orderv1.GetOrderResponse{Order: order})
		return
	}

	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "order_not_found", fmt.Sprintf("order %s not found", id))
		return
	}

	s.cacheOrder(r.Context(), id, rec.order)
	httpx.WriteJSON(w, http.StatusOK, orderv1.GetOrderResponse{Order: rec.order})
}

func (s *Service) handleUpdateTracking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req orderv1.UpdateTrackingRequest
	if err := httpx.Decode(r.Body, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.TrackingNumber == "" {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "tracking_number_required", "")
		return
	}

	s.mu.Lock()
	rec, ok := s.records[id]
	if ok {
		rec.trackingNumber = req.TrackingNumber
	}
	s.mu.Unlock()
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "order_not_found", fmt.Sprintf("order %s not found", id))
		return
	}

	// The cached copy predates the update; drop it.
	s.invalidateOrder(r.Context(), id)

	slog.InfoContext(r.Context(), "tracking number updated", "order_id", id, "tracking_number", req.TrackingNumber)
	httpx.WriteJSON(w, http.StatusOK, orderv1.UpdateTrackingResponse{
		Confirmation: fmt.Sprintf("Order %s updated with tracking number %s.", id, req.TrackingNumber),
	})
}

func (s *Service) cachedOrder(ctx context.Context, id string) (orderv1.Order, bool) {
	if s.cache == nil {
		return orderv1.Order{}, false
	}
	raw, err := s.cache.Get(ctx, s.cache.GenerateKey("get_order", id))
	if err != nil {
		slog.WarnContext(ctx, "cache get failed", "order_id", id, "error", err)
		return orderv1.Order{}, false
	}
	if raw == "" {
		return orderv1.Order{}, false
	}
	var order orderv1.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return orderv1.Order{}, false
	}
	return order, true
}

func (s *Service) cacheOrder(ctx context.Context, id string, order orderv1.Order) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(order)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.GenerateKey("get_order", id), raw, orderCacheTTL); err != nil {
		slog.WarnContext(ctx, "cache set failed", "order_id", id, "error", err)
	}
}

func (s *Service) invalidateOrder(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cache.GenerateKey("get_order", id)); err != nil {
		slog.WarnContext(ctx, "cache delete failed", "order_id", id, "error", err)
	}
}
