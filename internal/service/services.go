package service

import (
	"github.com/cryptatrack/cryptatrack/internal/adapter"
	"github.com/cryptatrack/cryptatrack/internal/crypto"
	"github.com/cryptatrack/cryptatrack/internal/logger"
)

// Services bundles the client-side service layer of the tracker.
type Services struct {
	PriceFeed PriceFeedService
	Portfolio PortfolioService
	Monitor   MonitorService
	PnL       PnLService
}

func NewServices(gateway adapter.ComputeGateway, chain adapter.ChainReader, sources []adapter.PriceSource, codec crypto.Codec, log *logger.Logger) *Services {
	priceFeed := NewPriceFeedService(sources, log)

	return &Services{
		PriceFeed: priceFeed,
		Portfolio: NewPortfolioService(chain, gateway, priceFeed, codec, log),
		Monitor:   NewMonitorService(gateway, log),
		PnL:       NewPnLService(gateway, log),
	}
}
