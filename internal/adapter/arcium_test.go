package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptatrack/cryptatrack/internal/config"
	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

func newTestNetwork(serverURL string) ArciumNetwork {
	return NewArciumNetwork(config.App{
		ArciumAPIKey:    "test-key",
		ArciumPublicKey: "test-pub",
		ArciumBaseURL:   serverURL,
	}, logger.Nop())
}

func TestArciumCompute_AttachesCredentialAndSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/compute", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "session-1", r.Header.Get("X-Session-ID"))

		_ = json.NewEncoder(w).Encode(models.ComputeResponse{Signature: "sig"})
	}))
	defer srv.Close()

	n := newTestNetwork(srv.URL)
	resp, err := n.Compute(context.Background(), "session-1", models.ComputeRequest{Operation: models.OpAggregateValue})

	require.NoError(t, err)
	assert.Equal(t, "sig", resp.Signature)
}

func TestArciumCompute_WithoutCredentials(t *testing.T) {
	n := NewArciumNetwork(config.App{}, logger.Nop())

	_, err := n.Compute(context.Background(), "s", models.ComputeRequest{})
	require.ErrorIs(t, err, ErrCredentialsMissing)

	_, err = n.Encrypt(context.Background(), "data")
	require.ErrorIs(t, err, ErrCredentialsMissing)

	_, err = n.Health(context.Background())
	require.ErrorIs(t, err, ErrCredentialsMissing)
}

func TestArciumCompute_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	n := newTestNetwork(srv.URL)
	_, err := n.Compute(context.Background(), "s", models.ComputeRequest{})

	require.ErrorIs(t, err, ErrUpstreamCompute)
}

func TestArciumHealth_MapsUpstreamSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"nodeCount":      32,
			"connections":    7,
			"operations":     1900,
			"avgComputeTime": 41.5,
			"encryptionType": "MPC",
			"status":         "healthy",
		})
	}))
	defer srv.Close()

	n := newTestNetwork(srv.URL)
	m, err := n.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 32, m.MPCNodes)
	assert.Equal(t, 7, m.ActiveConnections)
	assert.Equal(t, 1900, m.FHEOperationsCount)
	assert.InDelta(t, 41.5, m.AverageComputeTime, 1e-9)
	assert.Equal(t, "MPC", m.EncryptionType)
	assert.Equal(t, models.HealthHealthy, m.NetworkHealth)
}

func TestArciumHealth_NonHealthyStatusIsDegraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "syncing"})
	}))
	defer srv.Close()

	n := newTestNetwork(srv.URL)
	m, err := n.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.HealthDegraded, m.NetworkHealth)
	assert.Equal(t, "Hybrid", m.EncryptionType, "defaulted when upstream omits it")
}

func TestArciumEncrypt_SubmitsNetworkPublicKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/encrypt", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-pub", body["publicKey"])
		assert.Equal(t, "42.0", body["data"])

		_ = json.NewEncoder(w).Encode(models.EncryptedValue{Encrypted: "x", PublicKey: "test-pub"})
	}))
	defer srv.Close()

	n := newTestNetwork(srv.URL)
	ev, err := n.Encrypt(context.Background(), "42.0")

	require.NoError(t, err)
	assert.Equal(t, "x", ev.Encrypted)
}
