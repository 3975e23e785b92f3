// Package httpx holds the small JSON and request-id helpers shared by the
// HTTP services and client adapters.
package httpx

import (
	"encoding/json"
	"io"
	"net/http"
)

// ErrorResponse is the envelope every service returns on failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Decode reads a JSON body into v, rejecting unknown fields so schema drift
// between collaborators surfaces as an error instead of silent data loss.
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a machine-readable error code plus a human message.
func WriteError(w http.ResponseWriter, status int, code, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: code, Message: msg})
}
