// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

type connectModel struct {
	input  textinput.Model
	errMsg string
}

func newConnectModel(walletAddress string) connectModel {
	input := textinput.New()
	input.Placeholder = "wallet address"
	input.Width = 48
	input.SetValue(walletAddress)
	input.Focus()
	return connectModel{input: input}
}

func (m connectModel) View() string {
	out := "Wallet    : [ " + m.input.View() + " ]\n"
	out += "\nOnly the address leaves this machine. Balances are read on-chain,\n"
	out += "priced, and encrypted before they are ever displayed."
	if m.errMsg != "" {
		out += "\n\n" + errorStyle.Render("Error: "+m.errMsg)
	}
	return renderPage("CONNECT WALLET", out, "enter: connect │ ctrl+c: quit")
}
