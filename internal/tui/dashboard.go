// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/cryptatrack/cryptatrack/models"
)

type dashboardModel struct {
	idx     int
	loading bool
	spinner spinner.Model
}

func newDashboardModel() dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return dashboardModel{spinner: s}
}

func (m appModel) viewDashboard() string {
	var b strings.Builder

	b.WriteString("Wallet    : " + fitText(m.walletAddress, 44) + "\n")
	b.WriteString("Network   : " + healthLabel(m.metrics) + "\n")
	b.WriteString("Total     : " + m.totalLabel() + "\n\n")

	if m.dashboard.loading {
		b.WriteString(m.dashboard.spinner.View() + " loading portfolio...\n")
	} else if len(m.portfolio.Holdings) == 0 {
		b.WriteString("No holdings\n")
	} else {
		b.WriteString("  Symbol │ Name             │ Amount       │ Value        │ 24h\n")
		b.WriteString(headerDivider.Render("  ───────┼──────────────────┼──────────────┼──────────────┼─────────") + "\n")
		for i, h := range m.portfolio.Holdings {
			cursor := "  "
			if i == m.dashboard.idx {
				cursor = "> "
			}
			figures, revealed := m.revealed[h.ID]
			b.WriteString(fmt.Sprintf(
				"%s%-7s│ %-17s│ %s│ %s│ %s\n",
				cursor,
				fitText(h.Symbol, 7),
				fitText(h.Name, 17),
				padCell(figureCell(figures.amount, revealed), 13),
				padCell(figureCell(figures.value, revealed), 13),
				changeLabel(h.Change24h),
			))
		}
	}

	if line := m.pricesLine(); line != "" {
		b.WriteString("\n" + helpStyle.Render(line) + "\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage(
		"CRYPTATRACK",
		strings.TrimRight(b.String(), "\n"),
		"enter: detail │ r: refresh │ space: reveal total │ c: copy address │ w: wallet │ q: quit",
	)
}

func (m appModel) totalLabel() string {
	if m.portfolio.TotalValue.IsZero() {
		return maskedStyle.Render(maskedFigure)
	}
	if figures, ok := m.revealed[totalHoldingID]; ok {
		return "$" + figures.value
	}
	return maskedStyle.Render(maskedFigure)
}

// pricesLine renders the cached feed as a single status line, symbols sorted
// for a stable layout.
func (m appModel) pricesLine() string {
	if len(m.prices) == 0 {
		return ""
	}

	symbols := make([]string, 0, len(m.prices))
	for symbol := range m.prices {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	parts := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		data := m.prices[symbol]
		parts = append(parts, fmt.Sprintf("%s $%.2f", symbol, data.Price))
	}

	source := m.prices[symbols[0]].Source
	return strings.Join(parts, "  ") + "  (" + string(source) + ")"
}

func healthLabel(metrics models.Metrics) string {
	label := fmt.Sprintf("%s │ %d nodes │ %d ops │ %s", metrics.NetworkHealth, metrics.MPCNodes, metrics.FHEOperationsCount, metrics.EncryptionType)
	switch metrics.NetworkHealth {
	case models.HealthHealthy:
		return gainStyle.Render(label)
	case models.HealthOffline:
		return offlineStyle.Render(label)
	default:
		return label
	}
}

func changeLabel(change float64) string {
	label := fmt.Sprintf("%+.2f%%", change)
	if change >= 0 {
		return gainStyle.Render(label)
	}
	return lossStyle.Render(label)
}
