package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/cryptatrack/cryptatrack/internal/adapter"
	"github.com/cryptatrack/cryptatrack/internal/config"
	"github.com/cryptatrack/cryptatrack/internal/crypto"
	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/internal/service"
	"github.com/cryptatrack/cryptatrack/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	_ = godotenv.Load()

	log := logger.NewClientLogger("cryptatrack-tracker")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	gateway := adapter.NewComputeGateway(adapter.GatewayConfig{
		BaseURL: cfg.Adapter.HTTPAddress,
		Timeout: cfg.Adapter.RequestTimeout,
	}, log)
	chain := adapter.NewChainReader(adapter.ChainReaderConfig{
		RPCEndpoint: cfg.Chain.RPCEndpoint,
		Timeout:     cfg.Adapter.RequestTimeout,
	}, log)
	sources := []adapter.PriceSource{
		adapter.NewOracleSource(adapter.OracleConfig{URL: cfg.Prices.OracleURL}, log),
		adapter.NewMarketAPISource(adapter.MarketAPIConfig{BaseURL: cfg.Prices.MarketAPIURL}, log),
	}

	codec := crypto.NewCodec()
	services := service.NewServices(gateway, chain, sources, codec, log)

	ctx := context.Background()

	if len(cfg.Prices.Symbols) > 0 {
		services.PriceFeed.StartPolling(ctx, cfg.Prices.Symbols, cfg.Prices.PollInterval)
		defer services.PriceFeed.StopPolling()
	}

	ui, err := tui.New(services, codec, gateway.SessionID(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	if err = ui.Run(ctx, cfg.Wallet.Address); err != nil && !errors.Is(err, tui.ErrUserQuit) {
		log.Fatal().Err(err).Msg("tracker run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
