// Package game drives one player's puzzle: the event-driven session that
// consumes keystrokes, validates submissions, and keeps the persisted
// day state and score history in step.
//
// Everything is single-threaded: each input, backspace, or submit event is
// handled to completion before the next, so there is no locking beyond
// what the store provides.
package game

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/RobOwenKing/twenty-eight/internal/expr"
	"github.com/RobOwenKing/twenty-eight/internal/solver"
	"github.com/RobOwenKing/twenty-eight/internal/store"
	"github.com/RobOwenKing/twenty-eight/internal/variant"
)

// Session is the live state of today's puzzle.
//
// Lifecycle: created (or rehydrated from the store) for today's date,
// updated and synchronously persisted on every accepted answer, and
// superseded internally when the clock rolls over to a new day. The
// session notices stale dates on its own; callers never manage rollover.
type Session struct {
	store   *store.Store
	clock   Clock
	variant variant.Variant

	// token identifies this session in the submission journal.
	// UUIDv7, so journal rows sort by session creation time.
	token string
	seq   int64

	date      string
	digits    []int
	partition *solver.Partition

	input    string
	value    float64
	hasValue bool

	answers map[int]string
}

// Result is the outcome of a Submit.
type Result struct {
	Accepted bool
	Target   int
	Equation string

	// Reject carries the reason when Accepted is false. A nil Reject on
	// a rejected result means the submission was discarded by rollover.
	Reject *RejectError

	// RolledOver reports that the calendar day changed underneath this
	// submission; the pending input was discarded with the old puzzle.
	RolledOver bool
}

// NewSession opens (or resumes) the puzzle for the clock's current day.
//
// Any prior days still open in the history are closed first, then today's
// digits are fixed, the solvability partition is computed (or loaded from
// the persistent cache), and existing progress for today is rehydrated. A
// failed progress read degrades to an empty day rather than failing.
func NewSession(ctx context.Context, st *store.Store, clock Clock, v variant.Variant) (*Session, error) {
	s := &Session{
		store:   st,
		clock:   clock,
		variant: v,
		token:   uuid.Must(uuid.NewV7()).String(),
	}
	if err := s.openDay(ctx, clock.Today()); err != nil {
		return nil, err
	}
	return s, nil
}

// openDay points the session at a date: closes older history rows,
// derives digits, resolves the partition, and rehydrates progress.
func (s *Session) openDay(ctx context.Context, date string) error {
	if _, err := s.store.CloseBefore(ctx, date); err != nil {
		return fmt.Errorf("close prior days: %w", err)
	}

	s.date = date
	s.digits = s.variant.Digits.ForDate(date)
	s.partition = s.resolvePartition(ctx)

	answers, err := s.store.ReadDay(ctx, date)
	if err != nil {
		// Unreadable progress is treated as no progress; the game
		// must come up regardless.
		answers = map[int]string{}
	}
	s.answers = answers

	if err := s.store.EnsureHistory(ctx, date); err != nil {
		return fmt.Errorf("open day %s: %w", date, err)
	}
	if len(s.answers) > 0 {
		if err := s.recordScore(ctx); err != nil {
			return err
		}
	}

	s.resetInput()
	return nil
}

// resolvePartition returns today's partition, consulting the persistent
// cache so the search runs once per install per digit sequence.
func (s *Session) resolvePartition(ctx context.Context) *solver.Partition {
	low, high := s.variant.TargetLow, s.variant.TargetHigh
	key := solver.Key(s.digits, low, high)

	if possibles, ok, err := s.store.LoadPartition(ctx, key); err == nil && ok {
		return solver.FromPossibles(s.digits, low, high, possibles)
	}

	p := solver.Solve(s.digits, low, high)
	// Cache write is best-effort; a failure just means re-solving later.
	_ = s.store.SavePartition(ctx, key, p.Possibles)
	return p
}

// Input appends one typed character and re-evaluates.
//
// Characters not on the keypad are dropped, matching a calculator that
// simply has no such button.
func (s *Session) Input(r rune) {
	switch {
	case r >= '0' && r <= '9':
	case r == '+' || r == '-' || r == '*' || r == '/':
	case r == '(' || r == ')':
	default:
		return
	}
	s.input += string(r)
	s.reevaluate()
}

// Backspace removes the last typed character and re-evaluates. Editing
// never touches the answer record.
func (s *Session) Backspace() {
	if s.input == "" {
		return
	}
	runes := []rune(s.input)
	s.input = string(runes[:len(runes)-1])
	s.reevaluate()
}

// Submit validates the current input against today's puzzle.
//
// The current day is recomputed first, never trusted from an earlier
// event. If it changed, the open day rolls over: the prior day's
// score is already frozen by the history close, a fresh day state begins,
// and the pending input is discarded with the old puzzle.
//
// On acceptance the answer is durably written before the result is
// returned. Rejections change nothing. Every submission, either way, is
// journaled with its verdict.
func (s *Session) Submit(ctx context.Context) (Result, error) {
	today := s.clock.Today()
	if today != s.date {
		if err := s.openDay(ctx, today); err != nil {
			return Result{}, err
		}
		return Result{RolledOver: true}, nil
	}

	s.seq++
	target, err := Validate(s.input, s.digits, s.variant.TargetLow, s.variant.TargetHigh, s.answers)
	if err != nil {
		rej, ok := AsReject(err)
		if !ok {
			return Result{}, err
		}
		s.journal(ctx, string(rej.Code), rej.Target)
		return Result{Reject: rej}, nil
	}

	inserted, err := s.store.WriteAnswer(ctx, s.date, target, s.input, s.seq)
	if err != nil {
		return Result{}, fmt.Errorf("persist answer: %w", err)
	}
	if !inserted {
		// Another writer (a second window, say) got there first.
		rej := &RejectError{Code: RejectDuplicate, Message: "target already answered", Target: target}
		s.journal(ctx, string(rej.Code), target)
		return Result{Reject: rej}, nil
	}

	equation := s.input
	s.answers[target] = equation
	if err := s.recordScore(ctx); err != nil {
		return Result{}, err
	}
	s.journal(ctx, "ACCEPTED", target)
	s.resetInput()

	return Result{Accepted: true, Target: target, Equation: equation}, nil
}

// recordScore pushes the current score into today's history row.
func (s *Session) recordScore(ctx context.Context) error {
	if err := s.store.RecordScore(ctx, s.date, len(s.answers), s.FullClear()); err != nil {
		return fmt.Errorf("record score: %w", err)
	}
	return nil
}

// journal appends this submission's verdict. Best-effort: the journal is
// diagnostics, not game state, and must never fail a submission.
func (s *Session) journal(ctx context.Context, verdict string, target int) {
	_ = s.store.WriteSubmission(ctx, store.Submission{
		ID:           uuid.Must(uuid.NewV7()).String(),
		SessionToken: s.token,
		Date:         s.date,
		Input:        s.input,
		Verdict:      verdict,
		Target:       target,
		Seq:          s.seq,
	})
}

func (s *Session) reevaluate() {
	v, err := expr.Evaluate(s.input)
	s.value, s.hasValue = v, err == nil
}

func (s *Session) resetInput() {
	s.input = ""
	s.value = 0
	s.hasValue = false
}

// Date returns the calendar day this session is playing.
func (s *Session) Date() string { return s.date }

// Token returns the session's journal token.
func (s *Session) Token() string { return s.token }

// Digits returns today's digits in generation order.
func (s *Session) Digits() []int {
	return append([]int(nil), s.digits...)
}

// Partition returns today's solvability partition.
func (s *Session) Partition() *solver.Partition { return s.partition }

// Text returns the current typed expression.
func (s *Session) Text() string { return s.input }

// Value returns the current evaluated value; ok is false when the text
// has no value yet.
func (s *Session) Value() (v float64, ok bool) {
	return s.value, s.hasValue
}

// Score returns how many targets have been answered today.
func (s *Session) Score() int { return len(s.answers) }

// FullClear reports whether every reachable target has been answered.
func (s *Session) FullClear() bool {
	return len(s.answers) == len(s.partition.Possibles)
}

// Found returns today's answered targets in ascending order.
func (s *Session) Found() []int {
	found := make([]int, 0, len(s.answers))
	for n := range s.answers {
		found = append(found, n)
	}
	sort.Ints(found)
	return found
}

// Answers returns a copy of today's target→equation record.
func (s *Session) Answers() map[int]string {
	out := make(map[int]string, len(s.answers))
	for n, eq := range s.answers {
		out[n] = eq
	}
	return out
}

// Snapshot is the full presentation-facing view of the session.
type Snapshot struct {
	Date        string         `json:"date"`
	Variant     string         `json:"variant"`
	Digits      []int          `json:"digits"`
	Input       string         `json:"input"`
	Value       float64        `json:"value"`
	HasValue    bool           `json:"has_value"`
	Score       int            `json:"score"`
	FullClear   bool           `json:"full_clear"`
	Found       []int          `json:"found"`
	Answers     map[int]string `json:"answers"`
	Possibles   []int          `json:"possibles"`
	Impossibles []int          `json:"impossibles"`
}

// Snapshot captures everything the presentation layer renders.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Date:        s.date,
		Variant:     s.variant.Name,
		Digits:      s.Digits(),
		Input:       s.input,
		Value:       s.value,
		HasValue:    s.hasValue,
		Score:       s.Score(),
		FullClear:   s.FullClear(),
		Found:       s.Found(),
		Answers:     s.Answers(),
		Possibles:   s.partition.Possibles,
		Impossibles: s.partition.Impossibles,
	}
}
