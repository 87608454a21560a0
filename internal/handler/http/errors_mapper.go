package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cryptatrack/cryptatrack/internal/adapter"
	"github.com/cryptatrack/cryptatrack/internal/store"
)

var errorStatusMap = map[error]int{
	adapter.ErrCredentialsMissing: http.StatusInternalServerError,
	adapter.ErrUpstreamCompute:    http.StatusBadGateway,
	adapter.ErrEmptyAggregation:   http.StatusBadRequest,

	store.ErrHistoryDisabled: http.StatusServiceUnavailable,
	store.ErrInvalidLimit:    http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeJSON writes v with the given status. Encoding failures are logged by
// the caller's middleware through the response writer's error path.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the {"error": …} body the relay's consumers expect.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
