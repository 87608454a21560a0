package adapter

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

const (
	sessionIDHeader = "X-Session-ID"

	// ClientPublicKey tags values and mock results produced on the client
	// side of the relay.
	ClientPublicKey = "client-public-key"
)

type GatewayConfig struct {
	BaseURL string
	Timeout time.Duration
}

type computeGateway struct {
	client    *resty.Client
	sessionID string
	logger    *logger.Logger
}

// NewComputeGateway builds a [ComputeGateway] talking to the relay at
// cfg.BaseURL. Each gateway carries one session identifier for its lifetime,
// attached to every compute call.
func NewComputeGateway(cfg GatewayConfig, log *logger.Logger) ComputeGateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &computeGateway{
		client:    cli,
		sessionID: NewSessionID(),
		logger:    log,
	}
}

func (g *computeGateway) SessionID() string {
	return g.sessionID
}

// ComputeOnEncrypted implements [ComputeGateway]. The error return is always
// nil for transport and upstream failures; those resolve to a mock response
// carrying the failure in MockReason. Only a caller-side marshalling bug can
// surface as an error.
func (g *computeGateway) ComputeOnEncrypted(ctx context.Context, req models.ComputeRequest) (models.ComputeResponse, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(sessionIDHeader, g.sessionID).
		SetBody(req).
		Post("/compute-relay")
	if err != nil {
		g.logger.Warn().Err(err).Str("operation", string(req.Operation)).Msg("compute request failed, serving mock")
		return g.mockResponse(fmt.Errorf("%w: %w", ErrUpstreamCompute, err)), nil
	}
	if resp.StatusCode() != http.StatusOK {
		g.logger.Warn().Int("status", resp.StatusCode()).Str("operation", string(req.Operation)).Msg("compute returned non-OK, serving mock")
		return g.mockResponse(fmt.Errorf("%w: http %d", ErrUpstreamCompute, resp.StatusCode())), nil
	}

	var out models.ComputeResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		g.logger.Warn().Err(err).Msg("compute response undecodable, serving mock")
		return g.mockResponse(fmt.Errorf("%w: decode response: %w", ErrUpstreamCompute, err)), nil
	}

	return out, nil
}

// CalculateEncryptedPnL implements [ComputeGateway].
func (g *computeGateway) CalculateEncryptedPnL(ctx context.Context, initial, current models.EncryptedValue) (models.EncryptedValue, error) {
	req := models.ComputeRequest{
		Operation:     models.OpCalculatePnL,
		EncryptedData: initial,
		Parameters: map[string]any{
			"currentValue":    current.Encrypted,
			"computationType": "absolute_and_percentage",
		},
	}

	resp, err := g.ComputeOnEncrypted(ctx, req)
	if err != nil {
		return models.EncryptedValue{}, err
	}
	return resp.Result, nil
}

// AggregateEncryptedValues implements [ComputeGateway]. Zero inputs fail
// fast with ErrEmptyAggregation before any network traffic.
func (g *computeGateway) AggregateEncryptedValues(ctx context.Context, values []models.EncryptedValue) (models.EncryptedValue, error) {
	if len(values) == 0 {
		return models.EncryptedValue{}, ErrEmptyAggregation
	}

	additional := make([]string, 0, len(values)-1)
	for _, v := range values[1:] {
		additional = append(additional, v.Encrypted)
	}

	req := models.ComputeRequest{
		Operation:     models.OpAggregateValue,
		EncryptedData: values[0],
		Parameters: map[string]any{
			"additionalValues": additional,
			"operation":        "sum",
		},
	}

	resp, err := g.ComputeOnEncrypted(ctx, req)
	if err != nil {
		return models.EncryptedValue{}, err
	}
	return resp.Result, nil
}

// EncryptRemote implements [ComputeGateway]. Failures here are real errors:
// portfolio assembly falls back to the local codec on them.
func (g *computeGateway) EncryptRemote(ctx context.Context, data string) (models.EncryptedValue, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.EncryptRequest{Data: data}).
		Post("/encrypt-relay")
	if err != nil {
		return models.EncryptedValue{}, fmt.Errorf("encrypt request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.EncryptedValue{}, fmt.Errorf("%w: http %d: %s", ErrUpstreamCompute, resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	var out models.EncryptedValue
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.EncryptedValue{}, fmt.Errorf("decode encrypt response: %w", err)
	}
	return out, nil
}

// CheckNetworkHealth implements [ComputeGateway]. It never fails; any error
// collapses into offline metrics with zeroed counters.
func (g *computeGateway) CheckNetworkHealth(ctx context.Context) models.Metrics {
	resp, err := g.client.R().
		SetContext(ctx).
		Get("/health-relay")
	if err != nil || resp.StatusCode() != http.StatusOK {
		return models.OfflineMetrics()
	}

	var out models.Metrics
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.OfflineMetrics()
	}
	return out
}

// CalculatePnL implements [ComputeGateway].
func (g *computeGateway) CalculatePnL(ctx context.Context, req models.PnLRequest) (models.PnLResponse, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/pnl-relay")
	if err != nil {
		return models.PnLResponse{}, fmt.Errorf("pnl request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.PnLResponse{}, fmt.Errorf("pnl: http %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	var out models.PnLResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.PnLResponse{}, fmt.Errorf("decode pnl response: %w", err)
	}
	return out, nil
}

// VerifyComputationIntegrity checks the visible integrity signals of a
// compute response: a non-empty signature and the expected public-key tag.
func VerifyComputationIntegrity(resp models.ComputeResponse) bool {
	return resp.Signature != "" && resp.Result.PublicKey == ClientPublicKey
}

// mockResponse synthesizes the stand-in result served when the upstream is
// unreachable. The placeholder payload and the literal signature are part of
// the contract; tests assert against both.
func (g *computeGateway) mockResponse(cause error) models.ComputeResponse {
	placeholder, _ := json.Marshal(map[string]string{"result": "computed"})

	return models.ComputeResponse{
		Result: models.EncryptedValue{
			Encrypted: base64.StdEncoding.EncodeToString(placeholder),
			Nonce:     randomNonceTag(),
			PublicKey: ClientPublicKey,
		},
		Timestamp:  time.Now(),
		Signature:  models.MockSignature,
		Mock:       true,
		MockReason: cause.Error(),
	}
}

// NewSessionID mints a compute-session identifier. The format matches what
// the remote network logs expect: a millisecond timestamp plus a short random
// suffix.
func NewSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func randomNonceTag() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
