// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package store

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

func newMockRepo(t *testing.T) (PriceHistoryRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := &DB{DB: conn, driver: "pgx", errorClassificator: NewPostgresErrorClassifier(), logger: logger.Nop()}
	return NewPriceHistoryRepository(db, logger.Nop()), mock
}

func observation(symbol string, price float64) models.PriceData {
	return models.PriceData{
		Symbol:    symbol,
		Price:     price,
		Change24h: 2.1,
		Change7d:  -1.3,
		Timestamp: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		Source:    models.SourcePrimaryOracle,
	}
}

// ── RecordPrice ──────────────────────────────────────────────────────────────

func TestPriceHistory_RecordPrice(t *testing.T) {
	repo, mock := newMockRepo(t)
	pd := observation("SOL", 198.45)

	mock.ExpectExec(recordPrice).
		WithArgs(pd.Symbol, pd.Price, pd.Change24h, pd.Change7d, string(pd.Source), pd.Timestamp).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.RecordPrice(context.Background(), pd)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceHistory_RecordPrice_DBError(t *testing.T) {
	repo, mock := newMockRepo(t)
	pd := observation("SOL", 198.45)

	mock.ExpectExec(recordPrice).
		WithArgs(pd.Symbol, pd.Price, pd.Change24h, pd.Change7d, string(pd.Source), pd.Timestamp).
		WillReturnError(assert.AnError)

	err := repo.RecordPrice(context.Background(), pd)

	require.ErrorIs(t, err, assert.AnError)
}

func TestPriceHistory_RecordPrice_RetriesTransientFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	pd := observation("SOL", 198.45)
	args := []driver.Value{pd.Symbol, pd.Price, pd.Change24h, pd.Change7d, string(pd.Source), pd.Timestamp}

	mock.ExpectExec(recordPrice).WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected})
	mock.ExpectExec(recordPrice).WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.RecordPrice(context.Background(), pd)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── GetHistory ───────────────────────────────────────────────────────────────

func TestPriceHistory_GetHistory(t *testing.T) {
	repo, mock := newMockRepo(t)
	newer := observation("SOL", 199.01)
	older := observation("SOL", 198.45)
	older.Timestamp = newer.Timestamp.Add(-time.Minute)

	rows := sqlmock.NewRows([]string{"symbol", "price", "change_24h", "change_7d", "source", "recorded_at"}).
		AddRow(newer.Symbol, newer.Price, newer.Change24h, newer.Change7d, string(newer.Source), newer.Timestamp).
		AddRow(older.Symbol, older.Price, older.Change24h, older.Change7d, string(older.Source), older.Timestamp)

	mock.ExpectQuery(getHistory).WithArgs("SOL", 50).WillReturnRows(rows)

	history, err := repo.GetHistory(context.Background(), "SOL", 50)

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, newer, history[0], "newest observation first")
	assert.Equal(t, older, history[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceHistory_GetHistory_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"symbol", "price", "change_24h", "change_7d", "source", "recorded_at"})
	mock.ExpectQuery(getHistory).WithArgs("BTC", 10).WillReturnRows(rows)

	history, err := repo.GetHistory(context.Background(), "BTC", 10)

	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPriceHistory_GetHistory_InvalidLimit(t *testing.T) {
	repo, mock := newMockRepo(t)

	_, err := repo.GetHistory(context.Background(), "SOL", 0)

	require.ErrorIs(t, err, ErrInvalidLimit)
	assert.NoError(t, mock.ExpectationsWereMet(), "invalid limit must not hit the database")
}

func TestPriceHistory_GetHistory_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(getHistory).WithArgs("SOL", 10).WillReturnError(assert.AnError)

	_, err := repo.GetHistory(context.Background(), "SOL", 10)

	require.ErrorIs(t, err, assert.AnError)
}
