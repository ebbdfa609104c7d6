package store

import (
	"context"
	"fmt"
)

// Submission is one journal entry: what was typed, when in the session,
// and what the validator decided.
type Submission struct {
	ID           string `json:"id"`            // UUIDv7
	SessionToken string `json:"session_token"` // UUIDv7 of the owning session
	Date         string `json:"date"`
	Input        string `json:"input"`
	Verdict      string `json:"verdict"` // "ACCEPTED" or a reject code
	Target       int    `json:"target"`  // 0 when the input had no value
	Seq          int64  `json:"seq"`
}

// WriteSubmission appends a journal entry. Duplicate IDs are silently
// ignored, so a retried write cannot double-record.
func (s *Store) WriteSubmission(ctx context.Context, sub Submission) error {
	_, err := s.execContext(ctx, `
		INSERT INTO submissions (id, session_token, date, input, verdict, target, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, sub.ID, sub.SessionToken, sub.Date, sub.Input, sub.Verdict, sub.Target, sub.Seq)
	if err != nil {
		return fmt.Errorf("write submission: %w", err)
	}
	return nil
}

// Submissions returns a date's journal entries in submission order.
func (s *Store) Submissions(ctx context.Context, date string) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_token, date, input, verdict, target, seq
		FROM submissions
		WHERE date = ?
		ORDER BY seq
	`, date)
	if err != nil {
		return nil, fmt.Errorf("read submissions %s: %w", date, err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.SessionToken, &sub.Date, &sub.Input, &sub.Verdict, &sub.Target, &sub.Seq); err != nil {
			return nil, fmt.Errorf("read submissions %s: %w", date, err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read submissions %s: %w", date, err)
	}
	return subs, nil
}
