package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error kinds shared across all endpoints. Every handler maps service
// errors onto this taxonomy; clients never see anything else.
const (
	KindInvalidInput       = "InvalidInput"
	KindUnauthenticated    = "Unauthenticated"
	KindForbidden          = "Forbidden"
	KindNotFound           = "NotFound"
	KindConflict           = "Conflict"
	KindPayloadTooLarge    = "PayloadTooLarge"
	KindUnsupportedMedia   = "UnsupportedMedia"
	KindRateLimited        = "RateLimited"
	KindInternal           = "Internal"
	KindStorageUnavailable = "StorageUnavailable"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// WriteError writes the standardized JSON error envelope
func WriteError(w http.ResponseWriter, statusCode int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: errorBody{Kind: kind, Message: message}}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// WriteJSON writes a JSON success response
func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already sent; nothing to do but log.
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteInternal logs the unexpected error and writes the opaque 500 body
// so internal details never leak to clients.
func WriteInternal(w http.ResponseWriter, err error) {
	slog.Error("unexpected handler error", "error", err)
	WriteError(w, http.StatusInternalServerError, KindInternal, "An internal error occurred")
}
