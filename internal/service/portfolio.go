// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/cryptatrack/cryptatrack/internal/adapter"
	"github.com/cryptatrack/cryptatrack/internal/crypto"
	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

type portfolioService struct {
	chain   adapter.ChainReader
	gateway adapter.ComputeGateway
	prices  PriceFeedService
	codec   crypto.Codec
	logger  *logger.Logger
}

// NewPortfolioService wires portfolio assembly: chain for raw balances,
// prices for valuation, gateway for remote encryption and aggregation, codec
// as the local encryption fallback.
func NewPortfolioService(chain adapter.ChainReader, gateway adapter.ComputeGateway, prices PriceFeedService, codec crypto.Codec, log *logger.Logger) PortfolioService {
	return &portfolioService{
		chain:   chain,
		gateway: gateway,
		prices:  prices,
		codec:   codec,
		logger:  log,
	}
}

// FetchPortfolio implements [PortfolioService]. Holdings are encrypted
// concurrently but the result preserves on-chain asset order; the total is
// produced by the remote aggregate operation over the holdings' encrypted
// values, never by a locally stored plaintext sum.
func (s *portfolioService) FetchPortfolio(ctx context.Context, walletAddress string) (models.Portfolio, error) {
	assets, err := s.chain.FetchWalletAssets(ctx, walletAddress)
	if err != nil {
		return models.Portfolio{}, fmt.Errorf("fetch wallet assets: %w", err)
	}
	if len(assets) == 0 {
		return models.Portfolio{}, ErrEmptyWallet
	}

	prices := s.fetchPricesFor(ctx, assets)

	holdings := make([]models.Holding, len(assets))
	g, gctx := errgroup.WithContext(ctx)
	for i, asset := range assets {
		g.Go(func() error {
			h, buildErr := s.buildHolding(gctx, asset, prices)
			if buildErr != nil {
				return fmt.Errorf("holding %s: %w", asset.Symbol, buildErr)
			}
			holdings[i] = h
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return models.Portfolio{}, err
	}

	values := make([]models.EncryptedValue, 0, len(holdings))
	for _, h := range holdings {
		values = append(values, h.Value)
	}
	total, err := s.gateway.AggregateEncryptedValues(ctx, values)
	if err != nil {
		return models.Portfolio{}, fmt.Errorf("aggregate total value: %w", err)
	}

	return models.Portfolio{
		WalletAddress: walletAddress,
		TotalValue:    total,
		Holdings:      holdings,
		LastUpdated:   time.Now(),
	}, nil
}

// fetchPricesFor resolves prices for the assets' symbols. Pricing is
// best-effort: with every source down and an empty cache the portfolio is
// still assembled, valued at zero.
func (s *portfolioService) fetchPricesFor(ctx context.Context, assets []models.ChainAsset) models.PriceMap {
	symbols := make([]string, 0, len(assets))
	seen := map[string]bool{}
	for _, a := range assets {
		if !seen[a.Symbol] {
			seen[a.Symbol] = true
			symbols = append(symbols, a.Symbol)
		}
	}

	prices, err := s.prices.FetchPrices(ctx, symbols)
	if err != nil {
		s.logger.Warn().Err(err).Msg("pricing unavailable, assembling unpriced portfolio")
		return models.PriceMap{}
	}
	return prices
}

func (s *portfolioService) buildHolding(ctx context.Context, asset models.ChainAsset, prices models.PriceMap) (models.Holding, error) {
	amount, err := decimal.NewFromString(asset.Amount)
	if err != nil {
		return models.Holding{}, fmt.Errorf("parse amount %q: %w", asset.Amount, err)
	}

	pd := prices[asset.Symbol]
	value := amount.Mul(decimal.NewFromFloat(pd.Price))

	encAmount, err := s.encrypt(ctx, amount.String())
	if err != nil {
		return models.Holding{}, fmt.Errorf("encrypt amount: %w", err)
	}
	encValue, err := s.encrypt(ctx, value.StringFixed(2))
	if err != nil {
		return models.Holding{}, fmt.Errorf("encrypt value: %w", err)
	}

	holdingType := models.HoldingTypeToken
	if asset.Mint == adapter.NativeMint {
		holdingType = models.HoldingTypeNative
	}

	return models.Holding{
		ID:        asset.Mint,
		Symbol:    asset.Symbol,
		Name:      asset.Name,
		Amount:    encAmount,
		Value:     encValue,
		Change24h: pd.Change24h,
		Type:      holdingType,
		Address:   asset.Mint,
		Decimals:  asset.Decimals,
	}, nil
}

// encrypt prefers the remote network key and falls back to the local codec
// keyed by the gateway session when the relay cannot encrypt. Values from the
// two paths are not interoperable; the PublicKey tag tells them apart.
func (s *portfolioService) encrypt(ctx context.Context, data string) (models.EncryptedValue, error) {
	ev, err := s.gateway.EncryptRemote(ctx, data)
	if err == nil {
		return ev, nil
	}

	s.logger.Debug().Err(err).Msg("remote encrypt unavailable, using local codec")
	return s.codec.EncryptValue(data, s.gateway.SessionID())
}
