// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package http

import (
	"encoding/json"
	"net/http"

	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

// encryptRelay asks the remote network to encrypt a value under its key.
// Unlike computeRelay this path fails loudly: a caller who cannot get a real
// network encryption is expected to fall back to its local codec, so a mock
// here would be worse than an error.
func (h *Handler) encryptRelay(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.EncryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.encryptRelay").Msg("Invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Data == "" {
		writeError(w, http.StatusBadRequest, "data is required")
		return
	}

	encrypted, err := h.network.Encrypt(r.Context(), req.Data)
	if err != nil {
		log.Err(err).Str("func", "*Handler.encryptRelay").Msg("error encrypting via remote network")
		writeError(w, statusFromError(err), "encryption failed")
		return
	}

	writeJSON(w, http.StatusOK, encrypted)
}
