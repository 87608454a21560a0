// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package tui

import "github.com/cryptatrack/cryptatrack/models"

type portfolioLoadedMsg struct {
	portfolio models.Portfolio
	err       error
}

type healthCheckedMsg struct {
	metrics models.Metrics
}

type healthTickMsg struct{}

type pricesUpdatedMsg struct {
	prices models.PriceMap
}

// revealedMsg carries the locally decrypted figures of one holding, or the
// portfolio total when holdingID is totalHoldingID.
type revealedMsg struct {
	holdingID string
	figures   plainFigures
	err       error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
