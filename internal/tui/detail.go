// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package tui

import (
	"fmt"
	"strings"

	"github.com/cryptatrack/cryptatrack/internal/crypto"
	"github.com/cryptatrack/cryptatrack/models"
)

type detailModel struct {
	holding models.Holding
}

func (m appModel) viewDetail() string {
	h := m.detail.holding
	figures, revealed := m.revealed[h.ID]

	var b strings.Builder
	b.WriteString("Symbol    : " + h.Symbol + "\n")
	b.WriteString("Name      : " + h.Name + "\n")
	b.WriteString("Type      : " + h.Type + "\n")
	b.WriteString("Address   : " + h.Address + "\n")
	b.WriteString("Decimals  : " + fmt.Sprintf("%d", h.Decimals) + "\n\n")

	b.WriteString("Amount    : " + figureCell(figures.amount, revealed) + "\n")
	b.WriteString("Value     : " + figureCell(figures.value, revealed) + "\n")
	b.WriteString("24h       : " + changeLabel(h.Change24h) + "\n\n")

	b.WriteString("Sealed by : " + sealLabel(h.Value.PublicKey) + "\n")
	b.WriteString("Nonce     : " + fitText(h.Value.Nonce, 24) + "\n")

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage(
		"HOLDING: "+h.Symbol,
		strings.TrimRight(b.String(), "\n"),
		"space: reveal │ c: copy ciphertext │ esc: back │ q: quit",
	)
}

func sealLabel(publicKey string) string {
	switch publicKey {
	case crypto.FallbackPublicKey:
		return "local codec (decryptable here)"
	case "":
		return "-"
	default:
		return "compute network key " + fitText(publicKey, 16)
	}
}
