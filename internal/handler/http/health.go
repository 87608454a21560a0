// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package http

import (
	"net/http"

	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

// healthRelay always answers 200. Missing credentials and upstream failures
// both collapse into offline zeroed metrics; the dashboard renders that state
// instead of an error page.
func (h *Handler) healthRelay(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.network.Health(r.Context())
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("health check failed, reporting offline")
		metrics = models.OfflineMetrics()
	}

	writeJSON(w, http.StatusOK, metrics)
}
