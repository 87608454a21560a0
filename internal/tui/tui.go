// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

// Package tui is the tracker's terminal dashboard. It renders the encrypted
// portfolio with masked figures and decrypts them locally only on explicit
// request; plaintext amounts never leave the process.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cryptatrack/cryptatrack/internal/crypto"
	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/internal/service"
	"github.com/cryptatrack/cryptatrack/models"
)

// ErrUserQuit is returned from Run when the user left the dashboard with the
// quit key rather than an error.
var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services   *service.Services
	codec      crypto.Codec
	decryptKey string
	logger     *logger.Logger
}

// New builds the dashboard UI. decryptKey opens envelopes produced by the
// local fallback codec; remotely sealed values stay masked.
func New(services *service.Services, codec crypto.Codec, decryptKey string, log *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errors.New("services are required")
	}
	return &TUI{services: services, codec: codec, decryptKey: decryptKey, logger: log}, nil
}

// Run starts the dashboard over walletAddress and blocks until the user
// quits. An empty walletAddress opens the connect prompt first. Price cache
// updates are pushed into the running program through a feed subscription.
func (t *TUI) Run(ctx context.Context, walletAddress string) error {
	t.logger.Debug().Str("wallet", walletAddress).Msg("starting dashboard")

	model := newAppModel(ctx, t.services, t.codec, t.decryptKey, walletAddress)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := t.services.PriceFeed.Subscribe(func(prices models.PriceMap) {
		program.Send(pricesUpdatedMsg{prices: prices})
	})
	defer unsubscribe()

	finalModel, err := program.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	return result.err
}
