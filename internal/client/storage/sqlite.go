package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/physicalai/companion/internal/dbx"
)

// SQLiteStore implements Store over a sqlite storage table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get storage[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set storage[%s]: %w", key, err)
	}
	return nil
}

// Update applies fn to the value under key inside one transaction, so a
// concurrent writer in the same process cannot interleave between the read
// and the write.
func (s *SQLiteStore) Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var old []byte
		err := tx.QueryRowContext(ctx, `SELECT value FROM storage WHERE key = ?`, key).Scan(&old)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to read storage[%s]: %w", key, err)
		}

		next, err := fn(old)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO storage (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, next)
		if err != nil {
			return fmt.Errorf("failed to update storage[%s]: %w", key, err)
		}
		return nil
	})
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM storage WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete storage[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM storage`)
	if err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}
