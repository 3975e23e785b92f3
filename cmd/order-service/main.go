package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcmexdev/order-fulfillment/internal/orderservice"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/cache"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger("order-service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "order-service"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	var orderCache cache.Cache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		orderCache = cache.NewRedisCache(redisAddr, "order")
		slog.Info("order cache enabled", "redis_addr", redisAddr)
	}

	addr := ":" + getEnv("PORT", "9090")
	srv := &http.Server{
		Addr:    addr,
		Handler: orderservice.New(orderCache).Routes(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}()

	slog.Info("order service running", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("failed to serve", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
