// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package http

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

// pnlRelay computes profit-and-loss. Encrypted mode forwards to the remote
// network; plaintext mode is the one documented path where this server
// computes on unencrypted values, and it works without network credentials.
func (h *Handler) pnlRelay(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PnLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.pnlRelay").Msg("Invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.EncryptedMode {
		resp, err := h.network.ComputePnL(r.Context(), req)
		if err != nil {
			log.Err(err).Str("func", "*Handler.pnlRelay").Msg("error computing encrypted pnl upstream")
			writeError(w, statusFromError(err), "calculation failed")
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	initial := decimal.NewFromFloat(req.InitialValue)
	if initial.IsZero() {
		writeError(w, http.StatusBadRequest, "initialValue must be non-zero")
		return
	}

	current := decimal.NewFromFloat(req.CurrentValue)
	pnl := current.Sub(initial)
	pnlPercent := pnl.Div(initial).Mul(decimal.NewFromInt(100))

	writeJSON(w, http.StatusOK, models.PnLResponse{
		PnL:        pnl.InexactFloat64(),
		PnLPercent: pnlPercent.InexactFloat64(),
		Status:     "calculated",
	})
}
