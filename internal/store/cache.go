package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SavePartition caches the reachable targets for a solver key. The
// partition for a digit sequence never changes, so conflicting writes are
// ignored rather than updated.
func (s *Store) SavePartition(ctx context.Context, key string, possibles []int) error {
	data, err := json.Marshal(possibles)
	if err != nil {
		return fmt.Errorf("save partition %s: %w", key, err)
	}
	_, err = s.execContext(ctx, `
		INSERT INTO solver_cache (digits, possibles)
		VALUES (?, ?)
		ON CONFLICT(digits) DO NOTHING
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("save partition %s: %w", key, err)
	}
	return nil
}

// LoadPartition returns the cached reachable targets for a solver key.
//
// A missing row reports ok=false. So does a row that fails to decode:
// cache corruption is treated as a cache miss, and the caller recomputes.
func (s *Store) LoadPartition(ctx context.Context, key string) (possibles []int, ok bool, err error) {
	var data string
	err = s.db.QueryRowContext(ctx, `
		SELECT possibles FROM solver_cache WHERE digits = ?
	`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load partition %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(data), &possibles); err != nil {
		return nil, false, nil
	}
	return possibles, true, nil
}
