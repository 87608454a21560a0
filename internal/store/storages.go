package store

import (
	"github.com/cryptatrack/cryptatrack/internal/logger"
)

// Storages bundles the relay's repositories.
type Storages struct {
	PriceHistory PriceHistoryRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		PriceHistory: NewPriceHistoryRepository(db, log),
	}
}
