package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cryptatrack/cryptatrack/internal/config"
	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

// ServerPublicKey tags mock results synthesized on the relay side, as
// opposed to [ClientPublicKey] for client-side fallbacks.
const ServerPublicKey = "server-public-key"

const defaultArciumBaseURL = "https://api.arcium.com"

// arciumNetwork is the relay's authenticated client for the remote compute
// network. It attaches the server-held bearer credential to every request;
// the credential never leaves the relay process.
type arciumNetwork struct {
	client    *resty.Client
	apiKey    string
	publicKey string
	logger    *logger.Logger
}

func NewArciumNetwork(cfg config.App, log *logger.Logger) ArciumNetwork {
	baseURL := cfg.ArciumBaseURL
	if baseURL == "" {
		baseURL = defaultArciumBaseURL
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30 * time.Second)

	return &arciumNetwork{
		client:    cli,
		apiKey:    cfg.ArciumAPIKey,
		publicKey: cfg.ArciumPublicKey,
		logger:    log,
	}
}

// Compute implements [ArciumNetwork].
func (a *arciumNetwork) Compute(ctx context.Context, sessionID string, req models.ComputeRequest) (models.ComputeResponse, error) {
	if a.apiKey == "" || a.publicKey == "" {
		return models.ComputeResponse{}, ErrCredentialsMissing
	}

	resp, err := a.authedRequest(ctx).
		SetHeader(sessionIDHeader, sessionID).
		SetBody(req).
		Post("/compute")
	if err != nil {
		return models.ComputeResponse{}, fmt.Errorf("%w: %w", ErrUpstreamCompute, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.ComputeResponse{}, fmt.Errorf("%w: http %d", ErrUpstreamCompute, resp.StatusCode())
	}

	var out models.ComputeResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.ComputeResponse{}, fmt.Errorf("%w: decode: %w", ErrUpstreamCompute, err)
	}
	return out, nil
}

// Encrypt implements [ArciumNetwork].
func (a *arciumNetwork) Encrypt(ctx context.Context, data string) (models.EncryptedValue, error) {
	if a.apiKey == "" || a.publicKey == "" {
		return models.EncryptedValue{}, ErrCredentialsMissing
	}

	resp, err := a.authedRequest(ctx).
		SetBody(map[string]string{
			"publicKey": a.publicKey,
			"data":      data,
		}).
		Post("/v1/encrypt")
	if err != nil {
		return models.EncryptedValue{}, fmt.Errorf("%w: %w", ErrUpstreamCompute, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.EncryptedValue{}, fmt.Errorf("%w: http %d: %s", ErrUpstreamCompute, resp.StatusCode(), resp.Status())
	}

	var out models.EncryptedValue
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.EncryptedValue{}, fmt.Errorf("%w: decode: %w", ErrUpstreamCompute, err)
	}
	return out, nil
}

// Health implements [ArciumNetwork]. The raw upstream body uses its own
// field names; they are remapped onto [models.Metrics] here so the rest of
// the system never sees the upstream schema.
func (a *arciumNetwork) Health(ctx context.Context) (models.Metrics, error) {
	if a.apiKey == "" {
		return models.Metrics{}, ErrCredentialsMissing
	}

	resp, err := a.authedRequest(ctx).Get("/health")
	if err != nil {
		return models.Metrics{}, fmt.Errorf("%w: %w", ErrUpstreamCompute, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.Metrics{}, fmt.Errorf("%w: http %d", ErrUpstreamCompute, resp.StatusCode())
	}

	var body struct {
		NodeCount      int     `json:"nodeCount"`
		Connections    int     `json:"connections"`
		Operations     int     `json:"operations"`
		AvgComputeTime float64 `json:"avgComputeTime"`
		EncryptionType string  `json:"encryptionType"`
		Status         string  `json:"status"`
	}
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.Metrics{}, fmt.Errorf("%w: decode: %w", ErrUpstreamCompute, err)
	}

	metrics := models.Metrics{
		MPCNodes:           body.NodeCount,
		ActiveConnections:  body.Connections,
		FHEOperationsCount: body.Operations,
		AverageComputeTime: body.AvgComputeTime,
		EncryptionType:     body.EncryptionType,
		NetworkHealth:      models.HealthDegraded,
	}
	if metrics.EncryptionType == "" {
		metrics.EncryptionType = "Hybrid"
	}
	if body.Status == "healthy" {
		metrics.NetworkHealth = models.HealthHealthy
	}

	return metrics, nil
}

// ComputePnL implements [ArciumNetwork]. Used only for encrypted-mode PnL
// relaying; plaintext mode is computed by the relay itself.
func (a *arciumNetwork) ComputePnL(ctx context.Context, req models.PnLRequest) (models.PnLResponse, error) {
	if a.apiKey == "" {
		return models.PnLResponse{}, ErrCredentialsMissing
	}

	resp, err := a.authedRequest(ctx).
		SetBody(map[string]any{
			"operation": models.OpCalculatePnL,
			"inputs": map[string]float64{
				"initialValue": req.InitialValue,
				"currentValue": req.CurrentValue,
			},
		}).
		Post("/v1/compute")
	if err != nil {
		return models.PnLResponse{}, fmt.Errorf("%w: %w", ErrUpstreamCompute, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.PnLResponse{}, fmt.Errorf("%w: http %d", ErrUpstreamCompute, resp.StatusCode())
	}

	var out models.PnLResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.PnLResponse{}, fmt.Errorf("%w: decode: %w", ErrUpstreamCompute, err)
	}
	return out, nil
}

func (a *arciumNetwork) authedRequest(ctx context.Context) *resty.Request {
	return a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+a.apiKey)
}
