// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package http

import (
	"net/http"
	"strconv"

	"github.com/cryptatrack/cryptatrack/internal/logger"
)

const defaultHistoryLimit = 100

// pricesHistory serves recorded price observations, newest first. Feeds the
// dashboard's performance chart.
func (h *Handler) pricesHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "price history disabled")
		return
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	history, err := h.history.GetHistory(r.Context(), symbol, limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pricesHistory").Str("symbol", symbol).Msg("error reading price history")
		writeError(w, statusFromError(err), "error reading price history")
		return
	}

	writeJSON(w, http.StatusOK, history)
}
