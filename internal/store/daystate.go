package store

import (
	"context"
	"fmt"
)

// WriteAnswer records an accepted answer for a day.
//
// ON CONFLICT DO NOTHING makes the write idempotent: a target already
// answered for that date is left untouched and inserted reports false.
// Equations are never updated or removed; the day's record only grows.
func (s *Store) WriteAnswer(ctx context.Context, date string, target int, equation string, seq int64) (inserted bool, err error) {
	n, err := s.execContext(ctx, `
		INSERT INTO day_answers (date, target, equation, seq)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date, target) DO NOTHING
	`, date, target, equation, seq)
	if err != nil {
		return false, fmt.Errorf("write answer: %w", err)
	}
	return n > 0, nil
}

// ReadDay returns the accepted answers for a date as a target→equation
// map. A date with no record returns an empty map, not an error.
func (s *Store) ReadDay(ctx context.Context, date string) (map[int]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT target, equation FROM day_answers
		WHERE date = ?
		ORDER BY seq
	`, date)
	if err != nil {
		return nil, fmt.Errorf("read day %s: %w", date, err)
	}
	defer rows.Close()

	answers := map[int]string{}
	for rows.Next() {
		var target int
		var equation string
		if err := rows.Scan(&target, &equation); err != nil {
			return nil, fmt.Errorf("read day %s: %w", date, err)
		}
		answers[target] = equation
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read day %s: %w", date, err)
	}
	return answers, nil
}
