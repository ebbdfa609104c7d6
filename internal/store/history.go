package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DayScore is one row of the score history.
type DayScore struct {
	Date      string `json:"date"`
	Score     int    `json:"score"`
	FullClear bool   `json:"full_clear"`
	Closed    bool   `json:"closed"`
}

// EnsureHistory creates the history row for a date if it doesn't exist.
// Called when a day is first opened, so a day counts as played (score 0)
// from the first interaction onward.
func (s *Store) EnsureHistory(ctx context.Context, date string) error {
	_, err := s.execContext(ctx, `
		INSERT INTO history (date, score, full_clear, closed)
		VALUES (?, 0, 0, 0)
		ON CONFLICT(date) DO NOTHING
	`, date)
	if err != nil {
		return fmt.Errorf("ensure history %s: %w", date, err)
	}
	return nil
}

// RecordScore updates the running score for an open day. Closed rows are
// frozen and never modified; recording against a closed date is a no-op.
func (s *Store) RecordScore(ctx context.Context, date string, score int, fullClear bool) error {
	_, err := s.execContext(ctx, `
		INSERT INTO history (date, score, full_clear, closed)
		VALUES (?, ?, ?, 0)
		ON CONFLICT(date) DO UPDATE
		SET score = excluded.score, full_clear = excluded.full_clear
		WHERE history.closed = 0
	`, date, score, boolToInt(fullClear))
	if err != nil {
		return fmt.Errorf("record score %s: %w", date, err)
	}
	return nil
}

// CloseBefore freezes every open history row dated strictly before the
// given date, returning how many rows it closed.
//
// Closing is write-once and idempotent: a second rollover for the same
// date finds no open rows and closes nothing, so a day can never produce
// duplicate history entries.
func (s *Store) CloseBefore(ctx context.Context, date string) (int, error) {
	n, err := s.execContext(ctx, `
		UPDATE history SET closed = 1
		WHERE date < ? AND closed = 0
	`, date)
	if err != nil {
		return 0, fmt.Errorf("close days before %s: %w", date, err)
	}
	return int(n), nil
}

// Scores returns the full history in chronological order.
func (s *Store) Scores(ctx context.Context) ([]DayScore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, score, full_clear, closed FROM history
		ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	defer rows.Close()

	var scores []DayScore
	for rows.Next() {
		var ds DayScore
		var fullClear, closed int
		if err := rows.Scan(&ds.Date, &ds.Score, &fullClear, &closed); err != nil {
			return nil, fmt.Errorf("read scores: %w", err)
		}
		ds.FullClear = fullClear != 0
		ds.Closed = closed != 0
		scores = append(scores, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	return scores, nil
}

// Score returns the history row for a date, with ok=false when the date
// was never played.
func (s *Store) Score(ctx context.Context, date string) (DayScore, bool, error) {
	var ds DayScore
	var fullClear, closed int
	err := s.db.QueryRowContext(ctx, `
		SELECT date, score, full_clear, closed FROM history
		WHERE date = ?
	`, date).Scan(&ds.Date, &ds.Score, &fullClear, &closed)
	if errors.Is(err, sql.ErrNoRows) {
		return DayScore{}, false, nil
	}
	if err != nil {
		return DayScore{}, false, fmt.Errorf("read score %s: %w", date, err)
	}
	ds.FullClear = fullClear != 0
	ds.Closed = closed != 0
	return ds, true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
