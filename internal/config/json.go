// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		ArciumAPIKey    string `json:"arcium_api_key"`
		ArciumPublicKey string `json:"arcium_public_key"`
		ArciumBaseURL   string `json:"arcium_base_url"`
		Version         string `json:"version"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Prices struct {
		OracleURL    string   `json:"oracle_url"`
		MarketAPIURL string   `json:"market_api_url"`
		PollInterval Duration `json:"poll_interval"`
		Symbols      []string `json:"symbols"`
	} `json:"prices,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("open json config: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("decode json config: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			ArciumAPIKey:    jsonCfg.App.ArciumAPIKey,
			ArciumPublicKey: jsonCfg.App.ArciumPublicKey,
			ArciumBaseURL:   jsonCfg.App.ArciumBaseURL,
			Version:         jsonCfg.App.Version,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Prices: Prices{
			OracleURL:    jsonCfg.Prices.OracleURL,
			MarketAPIURL: jsonCfg.Prices.MarketAPIURL,
			PollInterval: time.Duration(jsonCfg.Prices.PollInterval),
			Symbols:      jsonCfg.Prices.Symbols,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
