// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package store

import (
	"context"
	"fmt"

	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

// priceHistoryRepository is the SQL-backed implementation of
// [PriceHistoryRepository] over the "price_history" table.
type priceHistoryRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewPriceHistoryRepository constructs a [PriceHistoryRepository] backed by
// the provided database connection.
func NewPriceHistoryRepository(db *DB, log *logger.Logger) PriceHistoryRepository {
	log.Debug().Msg("creating price history repository")
	return &priceHistoryRepository{
		db:     db,
		logger: log,
	}
}

// RecordPrice implements [PriceHistoryRepository]. A transient failure
// (connection loss, deadlock rollback) is retried once; observations arrive
// every poll anyway, so one retry is all a single data point is worth.
func (r *priceHistoryRepository) RecordPrice(ctx context.Context, pd models.PriceData) error {
	_, err := r.db.ExecContext(ctx, recordPrice,
		pd.Symbol, pd.Price, pd.Change24h, pd.Change7d, string(pd.Source), pd.Timestamp)
	if err != nil && r.db.errorClassificator != nil && r.db.errorClassificator.Classify(err) == Retryable {
		r.logger.Warn().Err(err).Str("symbol", pd.Symbol).Msg("transient insert failure, retrying once")
		_, err = r.db.ExecContext(ctx, recordPrice,
			pd.Symbol, pd.Price, pd.Change24h, pd.Change7d, string(pd.Source), pd.Timestamp)
	}
	if err != nil {
		r.logger.Err(err).Str("func", "*priceHistoryRepository.RecordPrice").Str("symbol", pd.Symbol).Str("pgcode", postgresError(err)).Msg("error: insert failed")
		return fmt.Errorf("record price for %s: %w", pd.Symbol, err)
	}

	return nil
}

// GetHistory implements [PriceHistoryRepository]. Observations come back
// newest first, suitable for the performance chart to reverse as needed.
func (r *priceHistoryRepository) GetHistory(ctx context.Context, symbol string, limit int) ([]models.PriceData, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := r.db.QueryContext(ctx, getHistory, symbol, limit)
	if err != nil {
		r.logger.Err(err).Str("func", "*priceHistoryRepository.GetHistory").Str("symbol", symbol).Msg("error: select failed")
		return nil, fmt.Errorf("get history for %s: %w", symbol, err)
	}
	defer rows.Close()

	var history []models.PriceData
	for rows.Next() {
		var pd models.PriceData
		var source string
		if err = rows.Scan(&pd.Symbol, &pd.Price, &pd.Change24h, &pd.Change7d, &source, &pd.Timestamp); err != nil {
			r.logger.Err(err).Str("func", "*priceHistoryRepository.GetHistory").Msg("error: scanning error")
			return nil, err
		}
		pd.Source = models.PriceSource(source)
		history = append(history, pd)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return history, nil
}
