package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/cryptatrack/cryptatrack/internal/adapter"
	"github.com/cryptatrack/cryptatrack/internal/config"
	httphandler "github.com/cryptatrack/cryptatrack/internal/handler/http"
	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/internal/server"
	"github.com/cryptatrack/cryptatrack/internal/service"
	"github.com/cryptatrack/cryptatrack/internal/store"
	"github.com/cryptatrack/cryptatrack/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// Missing .env is fine: all settings can come from real env vars.
	_ = godotenv.Load()

	log := logger.NewLogger("cryptatrack-relay")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	var onShutdown []func()

	var history store.PriceHistoryRepository
	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	switch {
	case errors.Is(err, store.ErrHistoryDisabled):
		log.Warn().Msg("price history disabled: no database configured")
	case err != nil:
		log.Fatal().Err(err).Msg("error connecting to price history store")
	default:
		if err = db.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("error migrating price history store")
		}
		history = store.NewStorages(db, log).PriceHistory
		onShutdown = append(onShutdown, func() { _ = db.Close() })
	}

	network := adapter.NewArciumNetwork(cfg.App, log)

	sources := []adapter.PriceSource{
		adapter.NewOracleSource(adapter.OracleConfig{URL: cfg.Prices.OracleURL}, log),
		adapter.NewMarketAPISource(adapter.MarketAPIConfig{BaseURL: cfg.Prices.MarketAPIURL}, log),
	}
	priceFeed := service.NewPriceFeedService(sources, log)

	if history != nil {
		priceFeed.Subscribe(func(prices models.PriceMap) {
			for _, data := range prices {
				if recordErr := history.RecordPrice(ctx, data); recordErr != nil {
					log.Error().Err(recordErr).Str("symbol", data.Symbol).Msg("error recording price observation")
				}
			}
		})
	}
	if len(cfg.Prices.Symbols) > 0 {
		priceFeed.StartPolling(ctx, cfg.Prices.Symbols, cfg.Prices.PollInterval)
		onShutdown = append([]func(){priceFeed.StopPolling}, onShutdown...)
	}

	handlers := httphandler.NewHandler(network, history, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log, onShutdown...)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
