package models

import "time"

// ComputeOperation names an operation the remote network can run over
// encrypted inputs.
type ComputeOperation string

const (
	OpCalculatePnL     ComputeOperation = "calculate_pnl"
	OpAggregateValue   ComputeOperation = "aggregate_value"
	OpComputeAnalytics ComputeOperation = "compute_analytics"
)

// MockSignature is the literal signature carried by a synthesized response.
// It is the visible marker, alongside the Mock flag, that the result was
// fabricated locally because the remote network was unreachable.
const MockSignature = "mock-signature-verified"

// ComputeRequest is the body of POST /compute-relay.
type ComputeRequest struct {
	Operation     ComputeOperation `json:"operation"`
	EncryptedData EncryptedValue   `json:"encryptedData"`
	Parameters    map[string]any   `json:"parameters,omitempty"`
}

// ComputeResponse is the result of a compute invocation. Mock and MockReason
// tag synthesized fallback results explicitly so callers can choose whether
// to trust them; genuine upstream results carry Mock=false.
type ComputeResponse struct {
	Result     EncryptedValue `json:"result"`
	Timestamp  time.Time      `json:"timestamp"`
	Signature  string         `json:"signature"`
	Mock       bool           `json:"mock,omitempty"`
	MockReason string         `json:"mockReason,omitempty"`
}

// IsMock reports whether the response was synthesized rather than computed
// by the remote network.
func (r ComputeResponse) IsMock() bool {
	return r.Mock || r.Signature == MockSignature
}

// EncryptRequest is the body of POST /encrypt-relay.
type EncryptRequest struct {
	Data string `json:"data"`
}

// PnLRequest is the body of POST /pnl-relay. When EncryptedMode is false the
// relay computes on plaintext server-side, a documented non-private
// convenience mode.
type PnLRequest struct {
	InitialValue  float64 `json:"initialValue"`
	CurrentValue  float64 `json:"currentValue"`
	EncryptedMode bool    `json:"encryptedMode"`
}

// PnLResponse is the plaintext-mode result of POST /pnl-relay.
type PnLResponse struct {
	PnL        float64 `json:"pnl"`
	PnLPercent float64 `json:"pnlPercent"`
	Status     string  `json:"status"`
}
