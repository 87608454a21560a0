package service

import (
	"context"
	"errors"
	"sync"

	"github.com/cryptatrack/cryptatrack/models"
)

// stubPriceSource returns canned prices or an error; optional onFetch hooks
// let tests observe the call.
type stubPriceSource struct {
	prices  models.PriceMap
	err     error
	onFetch func(ctx context.Context, symbols []string)

	mu    sync.Mutex
	calls int
}

func (s *stubPriceSource) FetchPrices(ctx context.Context, symbols []string) (models.PriceMap, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.onFetch != nil {
		s.onFetch(ctx, symbols)
	}
	if s.err != nil {
		return nil, s.err
	}

	out := make(models.PriceMap, len(s.prices))
	for sym, pd := range s.prices {
		out[sym] = pd
	}
	return out, nil
}

func (s *stubPriceSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// stubChainReader returns canned assets or an error.
type stubChainReader struct {
	assets []models.ChainAsset
	err    error
}

func (s *stubChainReader) FetchWalletAssets(_ context.Context, _ string) ([]models.ChainAsset, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.assets, nil
}

// stubGateway implements adapter.ComputeGateway with per-method knobs.
type stubGateway struct {
	encryptErr error
	pnlResp    models.PnLResponse
	pnlErr     error
	metrics    models.Metrics

	mu             sync.Mutex
	encryptedData  []string
	aggregated     [][]models.EncryptedValue
	pnlRequests    []models.PnLRequest
	encryptedPairs [][2]models.EncryptedValue
}

func (s *stubGateway) ComputeOnEncrypted(_ context.Context, _ models.ComputeRequest) (models.ComputeResponse, error) {
	return models.ComputeResponse{Signature: "stub-signature"}, nil
}

func (s *stubGateway) CalculateEncryptedPnL(_ context.Context, initial, current models.EncryptedValue) (models.EncryptedValue, error) {
	s.mu.Lock()
	s.encryptedPairs = append(s.encryptedPairs, [2]models.EncryptedValue{initial, current})
	s.mu.Unlock()
	return models.EncryptedValue{Encrypted: "pnl-result", PublicKey: "server-public-key"}, nil
}

func (s *stubGateway) AggregateEncryptedValues(_ context.Context, values []models.EncryptedValue) (models.EncryptedValue, error) {
	if len(values) == 0 {
		return models.EncryptedValue{}, errors.New("empty aggregation")
	}
	s.mu.Lock()
	s.aggregated = append(s.aggregated, values)
	s.mu.Unlock()
	return models.EncryptedValue{Encrypted: "aggregated-total", PublicKey: "server-public-key"}, nil
}

func (s *stubGateway) EncryptRemote(_ context.Context, data string) (models.EncryptedValue, error) {
	if s.encryptErr != nil {
		return models.EncryptedValue{}, s.encryptErr
	}
	s.mu.Lock()
	s.encryptedData = append(s.encryptedData, data)
	s.mu.Unlock()
	return models.EncryptedValue{Encrypted: "remote:" + data, Nonce: "n", PublicKey: "server-public-key"}, nil
}

func (s *stubGateway) CheckNetworkHealth(_ context.Context) models.Metrics {
	return s.metrics
}

func (s *stubGateway) CalculatePnL(_ context.Context, req models.PnLRequest) (models.PnLResponse, error) {
	s.mu.Lock()
	s.pnlRequests = append(s.pnlRequests, req)
	s.mu.Unlock()
	if s.pnlErr != nil {
		return models.PnLResponse{}, s.pnlErr
	}
	return s.pnlResp, nil
}

func (s *stubGateway) SessionID() string {
	return "session_0_stub"
}
