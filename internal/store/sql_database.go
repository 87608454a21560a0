// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cryptatrack/cryptatrack/internal/config"
	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/migrations"
)

// DB wraps the raw connection with the driver name (migrations need the
// dialect) and a Postgres-aware error classifier where applicable.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the price-history database, choosing the driver from the
// DSN: a postgres:// (or postgresql://) URI opens pgx, anything else is
// treated as a SQLite file path. An empty DSN returns ErrHistoryDisabled so
// the caller can run without history.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case cfg.DSN == "":
		return nil, ErrHistoryDisabled
	case strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://"):
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return NewConnectSQLite(ctx, cfg, log)
	}
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
