package models

import "time"

const (
	HoldingTypeNative = "native"
	HoldingTypeToken  = "token"
)

// Holding is one portfolio position. Monetary fields are encrypted;
// Change24h stays plaintext as a display-only metric.
type Holding struct {
	ID        string         `json:"id"`
	Symbol    string         `json:"symbol"`
	Name      string         `json:"name"`
	Amount    EncryptedValue `json:"amount"`
	Value     EncryptedValue `json:"value"`
	Change24h float64        `json:"change24h"`
	Type      string         `json:"type"`
	Address   string         `json:"address"`
	Decimals  int            `json:"decimals"`
}

// Portfolio is the assembled view for one wallet. Holdings is rebuilt
// atomically on every refresh: a failed fetch never leaves partial holdings.
type Portfolio struct {
	WalletAddress string         `json:"walletAddress"`
	TotalValue    EncryptedValue `json:"totalValue"`
	Holdings      []Holding      `json:"holdings"`
	LastUpdated   time.Time      `json:"lastUpdated"`
}

// ChainAsset is a raw on-chain balance as returned by the chain-read API,
// before pricing and encryption.
type ChainAsset struct {
	Mint     string `json:"mint"`
	Amount   string `json:"amount"`
	Decimals int    `json:"decimals"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
}
