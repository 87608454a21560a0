// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

// Package http is the relay's inbound HTTP surface. It terminates browser and
// tracker traffic, forwards compute work to the remote network with the
// server-held credentials, and serves recorded price history.
package http

import (
	"github.com/cryptatrack/cryptatrack/internal/adapter"
	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/internal/store"
)

type Handler struct {
	network adapter.ArciumNetwork

	// history is nil when the price-history store is disabled; the history
	// endpoint then answers 503.
	history store.PriceHistoryRepository

	logger *logger.Logger
}

func NewHandler(network adapter.ArciumNetwork, history store.PriceHistoryRepository, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		network: network,
		history: history,
		logger:  logger,
	}
}
