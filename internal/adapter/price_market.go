package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

// marketIDs maps ticker symbols to the market API's coin identifiers.
// Unlisted symbols fall back to the lowercased ticker.
var marketIDs = map[string]string{
	"SOL":  "solana",
	"USDC": "usd-coin",
	"JUP":  "jupiter",
	"ORCA": "orca",
	"COPE": "cope",
	"SAMO": "samoyed-coin",
}

type MarketAPIConfig struct {
	// BaseURL is the market API root, e.g. https://api.coingecko.com/api/v3.
	BaseURL string
	Timeout time.Duration
}

// marketAPISource is the secondary ranked price source: a public market-data
// REST API queried by coin id.
type marketAPISource struct {
	client *resty.Client
	logger *logger.Logger
}

func NewMarketAPISource(cfg MarketAPIConfig, log *logger.Logger) PriceSource {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &marketAPISource{client: cli, logger: log}
}

// FetchPrices implements [PriceSource]. The simple/price endpoint does not
// report 7-day change, so Change7d stays zero for this source.
func (m *marketAPISource) FetchPrices(ctx context.Context, symbols []string) (models.PriceMap, error) {
	ids := make([]string, 0, len(symbols))
	for _, s := range symbols {
		ids = append(ids, MarketID(s))
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                 strings.Join(ids, ","),
			"vs_currencies":       "usd",
			"include_24hr_change": "true",
		}).
		Get("/simple/price")
	if err != nil {
		return nil, fmt.Errorf("market api request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("market api: http %d", resp.StatusCode())
	}

	var body map[string]struct {
		USD       float64 `json:"usd"`
		USDChange float64 `json:"usd_24h_change"`
	}
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("market api: decode: %w", err)
	}

	now := time.Now()
	prices := make(models.PriceMap, len(symbols))
	for _, symbol := range symbols {
		entry, ok := body[MarketID(symbol)]
		if !ok {
			continue
		}

		prices[symbol] = models.PriceData{
			Symbol:    symbol,
			Price:     entry.USD,
			Change24h: entry.USDChange,
			Timestamp: now,
			Source:    models.SourceSecondaryAPI,
		}
	}

	return prices, nil
}

// MarketID converts a ticker symbol to the market API's coin identifier.
func MarketID(symbol string) string {
	if id, ok := marketIDs[symbol]; ok {
		return id
	}
	return strings.ToLower(symbol)
}
