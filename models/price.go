package models

import "time"

// PriceSource identifies which ranked source produced a PriceData entry.
type PriceSource string

const (
	SourcePrimaryOracle PriceSource = "primary-oracle"
	SourceSecondaryAPI  PriceSource = "secondary-api"
	SourceCached        PriceSource = "cached"
)

// PriceData is one observation for a symbol. Cached entries keep the
// timestamp of the fetch that produced them; last write wins.
type PriceData struct {
	Symbol    string      `json:"symbol"`
	Price     float64     `json:"price"`
	Change24h float64     `json:"change24h"`
	Change7d  float64     `json:"change7d"`
	Timestamp time.Time   `json:"timestamp"`
	Source    PriceSource `json:"source"`
}

// PriceMap maps symbol to its most recent observation.
type PriceMap map[string]PriceData
