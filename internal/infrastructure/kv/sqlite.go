package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/entity"
	"github.com/garyjia/bizdoc/pkg/database"
)

const createEntriesTable = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);
`

// SQLiteStore keeps each collection as one row of kv_entries.
type SQLiteStore struct {
	db     *database.DB
	quota  int64
	logger *zap.Logger
}

// NewSQLiteStore creates the entries table if needed. quota <= 0 means unlimited.
func NewSQLiteStore(db *database.DB, quota int64, logger *zap.Logger) (*SQLiteStore, error) {
	if _, err := db.Exec(createEntriesTable); err != nil {
		return nil, fmt.Errorf("failed to create kv_entries table: %w", err)
	}
	return &SQLiteStore{
		db:     db,
		quota:  quota,
		logger: logger,
	}, nil
}

// Read returns the value stored under key
func (s *SQLiteStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("Failed to read entry",
			zap.String("key", key),
			zap.Error(err))
		return nil, false, fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
	}
	return value, true, nil
}

// Write replaces the value under key inside one transaction, checking the quota first
func (s *SQLiteStore) Write(ctx context.Context, key string, value []byte) error {
	err := s.db.WithTransaction(func(tx *sql.Tx) error {
		if s.quota > 0 {
			var others int64
			err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(SUM(length(value)), 0) FROM kv_entries WHERE key != ?`, key,
			).Scan(&others)
			if err != nil {
				return fmt.Errorf("failed to measure usage: %w", err)
			}
			if used := others + int64(len(value)); used > s.quota {
				return fmt.Errorf("%w: %d of %d bytes", entity.ErrStorageQuotaExceeded, used, s.quota)
			}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to upsert entry: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to write entry",
			zap.String("key", key),
			zap.Int("size", len(value)),
			zap.Error(err))
		return entity.StorageWriteError(err)
	}

	s.logger.Debug("Entry written",
		zap.String("key", key),
		zap.Int("size", len(value)))
	return nil
}

var _ port.KeyValueStore = (*SQLiteStore)(nil)
