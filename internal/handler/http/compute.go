// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package http

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cryptatrack/cryptatrack/internal/adapter"
	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

const sessionIDHeader = "X-Session-ID"

// computeRelay forwards a compute request to the remote network. The failure
// contract is deliberate: ANY upstream problem answers HTTP 200 with a tagged
// mock payload, so gateway clients never branch on an error status for this
// path.
func (h *Handler) computeRelay(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.computeRelay").Msg("Invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	sessionID := r.Header.Get(sessionIDHeader)

	resp, err := h.network.Compute(r.Context(), sessionID, req)
	if err != nil {
		log.Warn().Err(err).Str("operation", string(req.Operation)).Msg("upstream compute failed, serving mock")
		resp = mockComputeResponse(err)
	}

	writeJSON(w, http.StatusOK, resp)
}

// mockComputeResponse is the server-side stand-in result. The literal
// signature and the placeholder payload are part of the wire contract.
func mockComputeResponse(cause error) models.ComputeResponse {
	placeholder, _ := json.Marshal(map[string]string{"result": "computed"})
	nonce := make([]byte, 12)
	_, _ = rand.Read(nonce)

	return models.ComputeResponse{
		Result: models.EncryptedValue{
			Encrypted: base64.StdEncoding.EncodeToString(placeholder),
			Nonce:     hex.EncodeToString(nonce),
			PublicKey: adapter.ServerPublicKey,
		},
		Timestamp:  time.Now(),
		Signature:  models.MockSignature,
		Mock:       true,
		MockReason: cause.Error(),
	}
}
