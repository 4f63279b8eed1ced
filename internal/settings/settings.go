// Package settings persists small client-side preferences: whether the item
// detail panel auto-opens on creation, and the last-active claim id. Plain
// key/value, no schema beyond that.
package settings

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	keyAutoOpenDetail = "auto_open_detail"
	keyLastClaimID    = "last_claim_id"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// AutoOpenDetail reports whether the detail panel opens automatically when
// an item is created. Defaults to true when never set.
func (s *Store) AutoOpenDetail(ctx context.Context) (bool, error) {
	v, err := s.get(ctx, keyAutoOpenDetail)
	if err != nil {
		return false, err
	}
	if v == "" {
		return true, nil
	}
	return v == "1", nil
}

func (s *Store) SetAutoOpenDetail(ctx context.Context, on bool) error {
	v := "0"
	if on {
		v = "1"
	}
	return s.set(ctx, keyAutoOpenDetail, v)
}

// LastClaimID returns the last claim the user had active, or "".
func (s *Store) LastClaimID(ctx context.Context) (string, error) {
	return s.get(ctx, keyLastClaimID)
}

func (s *Store) SetLastClaimID(ctx context.Context, claimID string) error {
	return s.set(ctx, keyLastClaimID, claimID)
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM settings WHERE key = ?
	`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
