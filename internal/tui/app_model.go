// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cryptatrack/cryptatrack/internal/crypto"
	"github.com/cryptatrack/cryptatrack/internal/service"
	"github.com/cryptatrack/cryptatrack/models"
)

type screen int

const (
	screenConnect screen = iota
	screenDashboard
	screenDetail
)

// totalHoldingID keys the revealed portfolio total in the same map as the
// per-holding figures.
const totalHoldingID = "__total__"

const healthCheckPeriod = 30 * time.Second

// plainFigures are the locally decrypted amount and value of one holding.
// They live only inside the running model and are dropped on every refresh.
type plainFigures struct {
	amount string
	value  string
}

type appModel struct {
	ctx        context.Context
	services   *service.Services
	codec      crypto.Codec
	decryptKey string

	currentScreen screen
	connect       connectModel
	dashboard     dashboardModel
	detail        detailModel

	walletAddress string
	portfolio     models.Portfolio
	prices        models.PriceMap
	metrics       models.Metrics
	sessionID     string
	revealed      map[string]plainFigures

	status string
	errMsg string
	err    error
}

func newAppModel(ctx context.Context, services *service.Services, codec crypto.Codec, decryptKey, walletAddress string) appModel {
	session := services.Monitor.CreateSession()

	m := appModel{
		ctx:           ctx,
		services:      services,
		codec:         codec,
		decryptKey:    decryptKey,
		currentScreen: screenConnect,
		connect:       newConnectModel(walletAddress),
		dashboard:     newDashboardModel(),
		walletAddress: walletAddress,
		prices:        services.PriceFeed.GetCachedPrices(),
		metrics:       models.OfflineMetrics(),
		sessionID:     session.SessionID,
		revealed:      map[string]plainFigures{},
	}

	if walletAddress != "" {
		m.currentScreen = screenDashboard
		m.dashboard.loading = true
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.cmdCheckHealth(), cmdHealthTick()}
	if m.currentScreen == screenDashboard {
		cmds = append(cmds, m.dashboard.spinner.Tick, m.cmdLoadPortfolio(m.walletAddress))
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) && m.currentScreen != screenConnect {
			m.services.Monitor.EndSession(m.sessionID, m.errMsg == "")
			return m, tea.Quit
		}
	case portfolioLoadedMsg:
		m.dashboard.loading = false
		if msg.err != nil {
			m.errMsg = portfolioErrorMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.portfolio = msg.portfolio
		m.revealed = map[string]plainFigures{}
		if m.dashboard.idx >= len(m.portfolio.Holdings) {
			m.dashboard.idx = len(m.portfolio.Holdings) - 1
		}
		if m.dashboard.idx < 0 {
			m.dashboard.idx = 0
		}
		m.services.Monitor.TrackOperation(m.sessionID, portfolioDataSize(msg.portfolio))
		return m, nil
	case healthCheckedMsg:
		m.metrics = msg.metrics
		return m, nil
	case healthTickMsg:
		return m, tea.Batch(m.cmdCheckHealth(), cmdHealthTick())
	case pricesUpdatedMsg:
		m.prices = msg.prices
		return m, nil
	case revealedMsg:
		if msg.err != nil {
			m.errMsg = "decrypt failed: value is sealed with a different key"
			return m, nil
		}
		m.errMsg = ""
		m.revealed[msg.holdingID] = msg.figures
		return m, nil
	case copiedMsg:
		m.status = "copied to clipboard"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case spinner.TickMsg:
		if m.dashboard.loading {
			var cmd tea.Cmd
			m.dashboard.spinner, cmd = m.dashboard.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenConnect:
		return m.updateConnect(msg)
	case screenDashboard:
		return m.updateDashboard(msg)
	case screenDetail:
		return m.updateDetail(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenConnect:
		body = m.connect.View()
	case screenDashboard:
		body = m.viewDashboard()
	case screenDetail:
		body = m.viewDetail()
	}
	return appStyle.Render(body)
}

func (m appModel) updateConnect(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		// "q" stays typable here: wallet addresses may contain it.
		case keyMsg.String() == "ctrl+c":
			m.err = ErrUserQuit
			m.services.Monitor.EndSession(m.sessionID, true)
			return m, tea.Quit
		case key.Matches(keyMsg, keys.enter):
			address := strings.TrimSpace(m.connect.input.Value())
			if address == "" {
				m.connect.errMsg = "wallet address is required"
				return m, nil
			}
			m.walletAddress = address
			m.connect.errMsg = ""
			m.currentScreen = screenDashboard
			m.dashboard.loading = true
			return m, tea.Batch(m.dashboard.spinner.Tick, m.cmdLoadPortfolio(address))
		}
	}

	var cmd tea.Cmd
	m.connect.input, cmd = m.connect.input.Update(msg)
	return m, cmd
}

func (m appModel) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.dashboard.idx > 0 {
			m.dashboard.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.dashboard.idx < len(m.portfolio.Holdings)-1 {
			m.dashboard.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		holding, ok := m.currentHolding()
		if !ok {
			return m, nil
		}
		m.detail.holding = holding
		m.currentScreen = screenDetail
	case key.Matches(keyMsg, keys.refresh):
		if m.dashboard.loading {
			return m, nil
		}
		m.dashboard.loading = true
		return m, tea.Batch(m.dashboard.spinner.Tick, m.cmdLoadPortfolio(m.walletAddress))
	case key.Matches(keyMsg, keys.reveal):
		return m, m.cmdRevealTotal()
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyToClipboard(m.walletAddress)
	case key.Matches(keyMsg, keys.wallet):
		m.currentScreen = screenConnect
		m.connect = newConnectModel(m.walletAddress)
	}

	return m, nil
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenDashboard
	case key.Matches(keyMsg, keys.reveal):
		return m, m.cmdRevealHolding(m.detail.holding)
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyToClipboard(m.detail.holding.Value.Encrypted)
	}

	return m, nil
}

func (m appModel) currentHolding() (models.Holding, bool) {
	holdings := m.portfolio.Holdings
	if len(holdings) == 0 || m.dashboard.idx < 0 || m.dashboard.idx >= len(holdings) {
		return models.Holding{}, false
	}
	return holdings[m.dashboard.idx], true
}

// ── commands ──────────────────────────────────────────────────────────────

func (m appModel) cmdLoadPortfolio(walletAddress string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Portfolio
	return func() tea.Msg {
		portfolio, err := svc.FetchPortfolio(ctx, walletAddress)
		return portfolioLoadedMsg{portfolio: portfolio, err: err}
	}
}

func (m appModel) cmdCheckHealth() tea.Cmd {
	ctx := m.ctx
	svc := m.services.Monitor
	return func() tea.Msg {
		return healthCheckedMsg{metrics: svc.CheckNetworkHealth(ctx)}
	}
}

func cmdHealthTick() tea.Cmd {
	return tea.Tick(healthCheckPeriod, func(time.Time) tea.Msg {
		return healthTickMsg{}
	})
}

// cmdRevealHolding decrypts one holding's figures off the update loop: the
// key derivation is deliberately slow and would freeze the UI inline.
func (m appModel) cmdRevealHolding(holding models.Holding) tea.Cmd {
	codec := m.codec
	password := m.decryptKey
	return func() tea.Msg {
		amount, err := openEnvelope(codec, holding.Amount, password)
		if err != nil {
			return revealedMsg{holdingID: holding.ID, err: err}
		}
		value, err := openEnvelope(codec, holding.Value, password)
		if err != nil {
			return revealedMsg{holdingID: holding.ID, err: err}
		}
		return revealedMsg{holdingID: holding.ID, figures: plainFigures{amount: amount, value: value}}
	}
}

func (m appModel) cmdRevealTotal() tea.Cmd {
	codec := m.codec
	password := m.decryptKey
	total := m.portfolio.TotalValue
	return func() tea.Msg {
		value, err := openEnvelope(codec, total, password)
		if err != nil {
			return revealedMsg{holdingID: totalHoldingID, err: err}
		}
		return revealedMsg{holdingID: totalHoldingID, figures: plainFigures{value: value}}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return revealedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// openEnvelope opens a locally sealed value. Remotely sealed values cannot be
// opened here: only the compute network holds their key.
func openEnvelope(codec crypto.Codec, value models.EncryptedValue, password string) (string, error) {
	if value.PublicKey != crypto.FallbackPublicKey {
		return "", fmt.Errorf("value is sealed remotely")
	}
	var plain string
	if err := codec.Decrypt(value.Encrypted, password, &plain); err != nil {
		return "", err
	}
	return plain, nil
}

func portfolioDataSize(p models.Portfolio) int64 {
	size := int64(len(p.TotalValue.Encrypted))
	for _, h := range p.Holdings {
		size += int64(len(h.Amount.Encrypted) + len(h.Value.Encrypted))
	}
	return size
}

func portfolioErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, service.ErrEmptyWallet) {
		return "wallet has no assets"
	}
	return err.Error()
}
