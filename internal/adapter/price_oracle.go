package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

type OracleConfig struct {
	// URL is the oracle's latest-feeds endpoint, e.g.
	// https://hermes.pyth.network/api/latest_price_feeds.
	URL     string
	Timeout time.Duration
}

// oracleSource is the primary ranked price source: an on-chain oracle's HTTP
// mirror serving every published feed in one response.
type oracleSource struct {
	client *resty.Client
	url    string
	logger *logger.Logger
}

func NewOracleSource(cfg OracleConfig, log *logger.Logger) PriceSource {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &oracleSource{
		client: resty.New().SetTimeout(cfg.Timeout),
		url:    cfg.URL,
		logger: log,
	}
}

type oracleFeed struct {
	Attributes struct {
		Symbol string `json:"symbol"`
		Price  struct {
			Price string `json:"price"`
			Expo  int    `json:"expo"`
		} `json:"price"`
		PrevDayPrice string `json:"prev_day_price"`
	} `json:"attributes"`
}

// FetchPrices implements [PriceSource]. Symbols absent from the oracle's
// feed list are simply missing from the result; the caller decides whether
// a partial batch is acceptable.
func (o *oracleSource) FetchPrices(ctx context.Context, symbols []string) (models.PriceMap, error) {
	resp, err := o.client.R().
		SetContext(ctx).
		Get(o.url)
	if err != nil {
		return nil, fmt.Errorf("oracle request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("oracle: http %d", resp.StatusCode())
	}

	var feeds []oracleFeed
	if err = json.Unmarshal(resp.Body(), &feeds); err != nil {
		return nil, fmt.Errorf("oracle: decode feeds: %w", err)
	}

	bySymbol := make(map[string]oracleFeed, len(feeds))
	for _, f := range feeds {
		bySymbol[f.Attributes.Symbol] = f
	}

	now := time.Now()
	prices := make(models.PriceMap, len(symbols))
	for _, symbol := range symbols {
		feed, ok := bySymbol[symbol]
		if !ok {
			continue
		}

		raw, err := strconv.ParseFloat(feed.Attributes.Price.Price, 64)
		if err != nil {
			o.logger.Warn().Str("symbol", symbol).Msg("oracle feed carries unparsable price")
			continue
		}
		price := math.Abs(raw * math.Pow10(feed.Attributes.Price.Expo))

		data := models.PriceData{
			Symbol:    symbol,
			Price:     price,
			Timestamp: now,
			Source:    models.SourcePrimaryOracle,
		}
		if prev, err := strconv.ParseFloat(feed.Attributes.PrevDayPrice, 64); err == nil && prev > 0 {
			data.Change24h = (price - prev) / prev * 100
		}

		prices[symbol] = data
	}

	return prices, nil
}
