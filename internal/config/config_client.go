// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package config

import "time"

// ClientConfig is the configuration for the tracker terminal client. It is
// loaded from environment variables only; the tracker has no flag or JSON
// surface.
type ClientConfig struct {
	// Adapter holds the relay connection settings.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`

	// Chain holds the chain-read API settings.
	Chain Chain `envPrefix:"CHAIN_"`

	// Prices holds the ranked price source endpoints.
	Prices Prices `envPrefix:"PRICES_"`

	// Wallet holds the default wallet the tracker opens with.
	Wallet Wallet `envPrefix:"WALLET_"`
}

// ClientAdapter holds the tracker's relay connection settings.
type ClientAdapter struct {
	// HTTPAddress is the relay base URL (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every call to the relay.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Chain holds the read-only chain API settings.
type Chain struct {
	// RPCEndpoint is the JSON-RPC endpoint used to read wallet balances and
	// token accounts.
	// Env: CHAIN_RPC_ENDPOINT
	RPCEndpoint string `env:"RPC_ENDPOINT"`
}

// Wallet holds the tracker's wallet settings.
type Wallet struct {
	// Address is the wallet the tracker opens with. May be empty; the TUI
	// then prompts for one.
	// Env: WALLET_ADDRESS
	Address string `env:"ADDRESS"`
}

// GetClientConfig loads the tracker configuration from environment
// variables, applies defaults, and validates it.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = "http://localhost:8080"
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = 15 * time.Second
	}
	if cfg.Prices.PollInterval <= 0 {
		cfg.Prices.PollInterval = 10 * time.Second
	}

	return cfg, cfg.validate()
}
