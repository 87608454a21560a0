package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptatrack/cryptatrack/models"
)

// PriceFeedService is the ranked-source price cache. One fetch serves all
// requested symbols from a single source; mixed-source results never happen.
type PriceFeedService interface {
	// FetchPrices resolves prices for symbols through the source ranking:
	// the first source whose result covers every requested symbol wins, and
	// its result is written to the cache. When no live source qualifies the
	// cached observations are served re-tagged as cached; with an empty
	// cache too, ErrNoPriceData is returned.
	FetchPrices(ctx context.Context, symbols []string) (models.PriceMap, error)

	// GetPrice returns the cached price for symbol.
	GetPrice(symbol string) (float64, bool)

	// GetPriceChange returns the cached 24h change for symbol.
	GetPriceChange(symbol string) (float64, bool)

	// GetCachedPrices returns a snapshot copy of the whole cache.
	GetCachedPrices() models.PriceMap

	// Subscribe registers fn to be called synchronously with a full cache
	// snapshot after every successful fetch. The returned function removes
	// the subscription; calling it more than once is harmless.
	Subscribe(fn func(models.PriceMap)) (unsubscribe func())

	// StartPolling launches a background fetch loop. A second call replaces
	// the previous loop; at most one runs at a time.
	StartPolling(ctx context.Context, symbols []string, interval time.Duration)

	// StopPolling cancels the background loop and waits for it to exit.
	// Safe to call when no loop is running.
	StopPolling()
}

// PortfolioService assembles the encrypted portfolio view for a wallet.
type PortfolioService interface {
	// FetchPortfolio reads the wallet's on-chain assets, prices them, and
	// encrypts every amount and value. A wallet with no assets yields
	// ErrEmptyWallet and no portfolio.
	FetchPortfolio(ctx context.Context, walletAddress string) (models.Portfolio, error)
}

// MonitorService reports remote network health and keeps per-session
// operation counters. Health checks never fail.
type MonitorService interface {
	// CheckNetworkHealth returns current network metrics, or offline zeroed
	// metrics when the relay or the network is unreachable. Never errors.
	CheckNetworkHealth(ctx context.Context) models.Metrics

	CreateSession() models.ComputeSession
	GetSession(sessionID string) (models.ComputeSession, bool)
	TrackOperation(sessionID string, dataSize int64)
	EndSession(sessionID string, success bool)
}

// PnLService computes profit-and-loss figures, either over encrypted values
// through the compute gateway or in the relay's plaintext convenience mode.
type PnLService interface {
	// EncryptedPnL runs the calculate_pnl operation over two encrypted
	// values without ever seeing the plaintexts.
	EncryptedPnL(ctx context.Context, initial, current models.EncryptedValue) (models.EncryptedValue, error)

	// PlainPnL delegates the plaintext mode to the relay. A zero initial
	// value is rejected locally with ErrZeroInitialValue.
	PlainPnL(ctx context.Context, initial, current decimal.Decimal) (models.PnLResponse, error)
}
