// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

func newTestGateway(t *testing.T, serverURL string) ComputeGateway {
	t.Helper()
	return NewComputeGateway(GatewayConfig{BaseURL: serverURL, Timeout: 2 * time.Second}, logger.Nop())
}

// ── ComputeOnEncrypted ──────────────────────────────────────────────────────

func TestComputeOnEncrypted_Success(t *testing.T) {
	genuine := models.ComputeResponse{
		Result:    models.EncryptedValue{Encrypted: "blob", Nonce: "n", PublicKey: ClientPublicKey},
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Signature: "real-signature",
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/compute-relay", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Session-ID"))

		var req models.ComputeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.OpComputeAnalytics, req.Operation)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(genuine)
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	resp, err := g.ComputeOnEncrypted(context.Background(), models.ComputeRequest{
		Operation:     models.OpComputeAnalytics,
		EncryptedData: models.EncryptedValue{Encrypted: "in"},
	})

	require.NoError(t, err)
	assert.Equal(t, "real-signature", resp.Signature)
	assert.False(t, resp.IsMock())
}

func TestComputeOnEncrypted_UnreachableServerYieldsMock(t *testing.T) {
	// A server that is already closed: every call fails at transport level.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	g := newTestGateway(t, srv.URL)
	resp, err := g.ComputeOnEncrypted(context.Background(), models.ComputeRequest{
		Operation: models.OpCalculatePnL,
	})

	require.NoError(t, err, "compute must resolve, not fail")
	assert.Equal(t, models.MockSignature, resp.Signature)
	assert.True(t, resp.Mock)
	assert.NotEmpty(t, resp.MockReason)
	assert.Equal(t, ClientPublicKey, resp.Result.PublicKey)
	assert.NotEmpty(t, resp.Result.Encrypted)
}

func TestComputeOnEncrypted_NonOKStatusYieldsMock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	resp, err := g.ComputeOnEncrypted(context.Background(), models.ComputeRequest{
		Operation: models.OpAggregateValue,
	})

	require.NoError(t, err)
	assert.True(t, resp.IsMock())
	assert.Contains(t, resp.MockReason, "502")
}

// ── AggregateEncryptedValues ────────────────────────────────────────────────

func TestAggregateEncryptedValues_EmptyInputFailsFast(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.AggregateEncryptedValues(context.Background(), nil)

	require.ErrorIs(t, err, ErrEmptyAggregation)
	assert.False(t, called, "no network traffic expected for empty input")
}

func TestAggregateEncryptedValues_EmptyInputFailsEvenWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.AggregateEncryptedValues(context.Background(), []models.EncryptedValue{})

	require.ErrorIs(t, err, ErrEmptyAggregation)
}

func TestAggregateEncryptedValues_SplitsFirstAndRest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.ComputeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		assert.Equal(t, models.OpAggregateValue, req.Operation)
		assert.Equal(t, "v0", req.EncryptedData.Encrypted)
		assert.ElementsMatch(t, []any{"v1", "v2"}, req.Parameters["additionalValues"])
		assert.Equal(t, "sum", req.Parameters["operation"])

		_ = json.NewEncoder(w).Encode(models.ComputeResponse{
			Result:    models.EncryptedValue{Encrypted: "sum-result"},
			Signature: "sig",
		})
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	result, err := g.AggregateEncryptedValues(context.Background(), []models.EncryptedValue{
		{Encrypted: "v0"}, {Encrypted: "v1"}, {Encrypted: "v2"},
	})

	require.NoError(t, err)
	assert.Equal(t, "sum-result", result.Encrypted)
}

// ── EncryptRemote ───────────────────────────────────────────────────────────

func TestEncryptRemote_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/encrypt-relay", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.EncryptedValue{
			Encrypted: "remote-blob", Nonce: "n", PublicKey: ServerPublicKey,
		})
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	ev, err := g.EncryptRemote(context.Background(), "123.45")

	require.NoError(t, err)
	assert.Equal(t, "remote-blob", ev.Encrypted)
}

func TestEncryptRemote_ServerErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Missing Arcium credentials"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.EncryptRemote(context.Background(), "data")

	require.Error(t, err, "encrypt failures must propagate for the codec fallback")
}

// ── CheckNetworkHealth ──────────────────────────────────────────────────────

func TestCheckNetworkHealth_Healthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Metrics{
			MPCNodes:      12,
			NetworkHealth: models.HealthHealthy,
		})
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	m := g.CheckNetworkHealth(context.Background())

	assert.Equal(t, 12, m.MPCNodes)
	assert.Equal(t, models.HealthHealthy, m.NetworkHealth)
}

func TestCheckNetworkHealth_UnreachableIsOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	g := newTestGateway(t, srv.URL)
	m := g.CheckNetworkHealth(context.Background())

	assert.Equal(t, models.HealthOffline, m.NetworkHealth)
	assert.Zero(t, m.MPCNodes)
	assert.Zero(t, m.ActiveConnections)
}

// ── Misc ────────────────────────────────────────────────────────────────────

func TestVerifyComputationIntegrity(t *testing.T) {
	ok := models.ComputeResponse{
		Signature: "sig",
		Result:    models.EncryptedValue{PublicKey: ClientPublicKey},
	}
	assert.True(t, VerifyComputationIntegrity(ok))

	noSig := ok
	noSig.Signature = ""
	assert.False(t, VerifyComputationIntegrity(noSig))

	wrongKey := ok
	wrongKey.Result.PublicKey = "someone-else"
	assert.False(t, VerifyComputationIntegrity(wrongKey))
}

func TestSessionID_StablePerGateway(t *testing.T) {
	g := newTestGateway(t, "http://localhost:1")

	first := g.SessionID()
	assert.NotEmpty(t, first)
	assert.Equal(t, first, g.SessionID())

	other := newTestGateway(t, "http://localhost:1")
	assert.NotEqual(t, first, other.SessionID())
}
