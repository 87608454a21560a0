// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle      = lipgloss.NewStyle().Padding(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Bold(true)
	maskedStyle   = lipgloss.NewStyle().Faint(true)
	gainStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	lossStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	offlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	headerDivider = lipgloss.NewStyle().Faint(true)
)
