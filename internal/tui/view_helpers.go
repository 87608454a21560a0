// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package tui

import (
	"strings"
	"unicode/utf8"
)

const uiDivider = "──────────────────────────────────────────────────────────"

const maskedFigure = "••••••••"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		b.WriteString(data)
		b.WriteString("\n")
	} else {
		b.WriteString("-\n")
	}

	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString(helpStyle.Render(hotKeys))
	}

	return b.String()
}

// figureCell masks a monetary cell until its holding has been revealed. The
// cell stays unstyled so padded table columns keep their width.
func figureCell(plain string, revealed bool) string {
	if !revealed || plain == "" {
		return maskedFigure
	}
	return plain
}

// padCell right-pads by rune count, so the masked bullet figure aligns with
// plain ASCII cells.
func padCell(v string, width int) string {
	if n := utf8.RuneCountInString(v); n < width {
		return v + strings.Repeat(" ", width-n)
	}
	return v
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}
