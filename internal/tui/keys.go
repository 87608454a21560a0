// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	esc     key.Binding
	quit    key.Binding
	refresh key.Binding
	reveal  key.Binding
	copy    key.Binding
	wallet  key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
	refresh: key.NewBinding(key.WithKeys("r")),
	reveal:  key.NewBinding(key.WithKeys(" ")),
	copy:    key.NewBinding(key.WithKeys("c")),
	wallet:  key.NewBinding(key.WithKeys("w")),
}
