package store

import (
	"context"

	"github.com/cryptatrack/cryptatrack/models"
)

// PriceHistoryRepository persists price observations for the performance
// chart. Only plaintext market data is ever stored here; encrypted portfolio
// values never touch the database.
type PriceHistoryRepository interface {
	// RecordPrice appends one observation.
	RecordPrice(ctx context.Context, pd models.PriceData) error

	// GetHistory returns up to limit observations for symbol, newest first.
	GetHistory(ctx context.Context, symbol string, limit int) ([]models.PriceData, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
