// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cryptatrack/cryptatrack/internal/adapter"
	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

type pnlService struct {
	gateway adapter.ComputeGateway
	logger  *logger.Logger
}

// NewPnLService builds a [PnLService] over the compute gateway.
func NewPnLService(gateway adapter.ComputeGateway, log *logger.Logger) PnLService {
	return &pnlService{gateway: gateway, logger: log}
}

// EncryptedPnL implements [PnLService]. Both operands stay encrypted end to
// end; when the network is down the gateway substitutes a tagged mock result.
func (s *pnlService) EncryptedPnL(ctx context.Context, initial, current models.EncryptedValue) (models.EncryptedValue, error) {
	result, err := s.gateway.CalculateEncryptedPnL(ctx, initial, current)
	if err != nil {
		return models.EncryptedValue{}, fmt.Errorf("encrypted pnl: %w", err)
	}
	return result, nil
}

// PlainPnL implements [PnLService]. Division by the initial value happens on
// the relay; the zero check here saves a round trip for a request the relay
// would reject anyway.
func (s *pnlService) PlainPnL(ctx context.Context, initial, current decimal.Decimal) (models.PnLResponse, error) {
	if initial.IsZero() {
		return models.PnLResponse{}, ErrZeroInitialValue
	}

	resp, err := s.gateway.CalculatePnL(ctx, models.PnLRequest{
		InitialValue: initial.InexactFloat64(),
		CurrentValue: current.InexactFloat64(),
	})
	if err != nil {
		return models.PnLResponse{}, fmt.Errorf("plaintext pnl: %w", err)
	}
	return resp, nil
}
