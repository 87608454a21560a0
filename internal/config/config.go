// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the relay
// server. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the remote compute network
	// credentials and the application version.
	App App `envPrefix:"APP_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds configuration for the price-history store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Prices holds the ranked price source endpoints and polling settings.
	Prices Prices `envPrefix:"PRICES_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the remote compute network credentials. Both keys may be empty:
// the relay then runs in demo mode, answering compute requests with tagged
// mock results and reporting the network offline.
type App struct {
	// ArciumAPIKey is the server-held credential attached to every upstream
	// request. Never exposed to browsers or clients.
	// Env: APP_ARCIUM_API_KEY
	ArciumAPIKey string `env:"ARCIUM_API_KEY"`

	// ArciumPublicKey is the network public key submitted with encrypt
	// requests.
	// Env: APP_ARCIUM_PUBLIC_KEY
	ArciumPublicKey string `env:"ARCIUM_PUBLIC_KEY"`

	// ArciumBaseURL is the remote compute network's API base URL.
	// Env: APP_ARCIUM_BASE_URL
	ArciumBaseURL string `env:"ARCIUM_BASE_URL"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound HTTP layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the price-history store.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the price-history database.
type DB struct {
	// DSN selects the backend by scheme: "postgres://…" opens pgx, anything
	// else is treated as a SQLite file path. Empty disables the store.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Prices holds the ranked price source endpoints and the polling settings
// shared by the relay and the tracker client.
type Prices struct {
	// OracleURL is the primary on-chain oracle's latest-feeds endpoint.
	// Env: PRICES_ORACLE_URL
	OracleURL string `env:"ORACLE_URL"`

	// MarketAPIURL is the secondary market-data API base URL.
	// Env: PRICES_MARKET_API_URL
	MarketAPIURL string `env:"MARKET_API_URL"`

	// PollInterval is the price polling period (e.g. "10s").
	// Env: PRICES_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// Symbols is the comma-separated list of symbols the relay polls and
	// records (e.g. "SOL,USDC,JUP,ORCA").
	// Env: PRICES_SYMBOLS
	Symbols []string `env:"SYMBOLS" envSeparator:","`
}

// GetStructuredConfig loads, merges, and validates the relay configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
