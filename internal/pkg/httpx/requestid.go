package httpx

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID is the header that carries a request id across service
// boundaries.
const HeaderRequestID = "X-Request-Id"

// ctxKey is unexported so no other package can collide with our context keys.
type ctxKey string

const requestIDKey ctxKey = "request_id"

// ContextWithRequestID stores a request id in the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestID is a server middleware that adopts the caller's X-Request-Id or
// mints a fresh one, stores it in the context, and echoes it in the
// response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := ContextWithRequestID(r.Context(), id)
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestIDTransport propagates the request id from the context onto
// outgoing requests.
type requestIDTransport struct {
	next http.RoundTripper
}

// NewRequestIDTransport wraps next so every outgoing request carries the
// request id stored in its context, if any.
func NewRequestIDTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &requestIDTransport{next: next}
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if id := RequestIDFromContext(req.Context()); id != "" && req.Header.Get(HeaderRequestID) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(HeaderRequestID, id)
	}
	return t.next.RoundTrip(req)
}
