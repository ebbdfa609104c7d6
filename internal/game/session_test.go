package game

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobOwenKing/twenty-eight/internal/digits"
	"github.com/RobOwenKing/twenty-eight/internal/store"
	"github.com/RobOwenKing/twenty-eight/internal/testutil"
	"github.com/RobOwenKing/twenty-eight/internal/variant"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "game.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestSession(t *testing.T, st *store.Store, clock Clock) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), st, clock, variant.Default()[variant.DefaultName])
	require.NoError(t, err)
	return s
}

func typeIn(s *Session, text string) {
	for _, r := range text {
		s.Input(r)
	}
}

func TestNewSession_FixesTodaysPuzzle(t *testing.T) {
	st := openTestStore(t)
	s := newTestSession(t, st, testutil.NewClock("2022-03-14"))

	assert.Equal(t, "2022-03-14", s.Date())
	assert.Equal(t, []int{6, 1, 5, 9}, s.Digits())
	assert.Equal(t, 0, s.Score())

	p := s.Partition()
	require.NotNil(t, p)
	assert.Equal(t, []int{5, 13, 17}, p.Impossibles)
}

func TestSession_InputEvaluatesPerKeystroke(t *testing.T) {
	st := openTestStore(t)
	s := newTestSession(t, st, testutil.NewClock("2022-03-14"))

	typeIn(s, "6+1")
	v, ok := s.Value()
	require.True(t, ok)
	assert.InDelta(t, 7.0, v, 1e-9)

	s.Input('+')
	_, ok = s.Value()
	assert.False(t, ok, "trailing operator means no current value")

	typeIn(s, "5+9")
	v, ok = s.Value()
	require.True(t, ok)
	assert.InDelta(t, 21.0, v, 1e-9)
	assert.Equal(t, "6+1+5+9", s.Text())
}

func TestSession_IgnoresForeignKeys(t *testing.T) {
	st := openTestStore(t)
	s := newTestSession(t, st, testutil.NewClock("2022-03-14"))

	typeIn(s, "6a!+\n1")
	assert.Equal(t, "6+1", s.Text())
}

func TestSession_BackspaceNeverMutatesAnswers(t *testing.T) {
	st := openTestStore(t)
	s := newTestSession(t, st, testutil.NewClock("2022-03-14"))

	typeIn(s, "6+1+5+9")
	_, err := s.Submit(context.Background())
	require.NoError(t, err)

	typeIn(s, "6*5")
	s.Backspace()
	s.Backspace()
	s.Backspace()
	s.Backspace() // one extra on empty input is a no-op

	assert.Equal(t, "", s.Text())
	assert.Equal(t, 1, s.Score())
}

func TestSession_SubmitAcceptPersistsImmediately(t *testing.T) {
	st := openTestStore(t)
	clock := testutil.NewClock("2022-03-14")
	s := newTestSession(t, st, clock)

	typeIn(s, "6+1+5+9")
	res, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, res.Accepted)
	assert.Equal(t, 21, res.Target)
	assert.Equal(t, "6+1+5+9", res.Equation)
	assert.Equal(t, "", s.Text(), "input clears after an accepted answer")

	// A reload mid-day rehydrates exactly the recorded progress.
	reloaded := newTestSession(t, st, clock)
	assert.Equal(t, 1, reloaded.Score())
	assert.Equal(t, map[int]string{21: "6+1+5+9"}, reloaded.Answers())
}

func TestSession_DuplicateTargetIsSilentNoOp(t *testing.T) {
	st := openTestStore(t)
	s := newTestSession(t, st, testutil.NewClock("2022-03-14"))
	ctx := context.Background()

	typeIn(s, "6+1+5+9")
	_, err := s.Submit(ctx)
	require.NoError(t, err)

	// A different equation for the same 21.
	typeIn(s, "6*5-9*1")
	res, err := s.Submit(ctx)
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	require.NotNil(t, res.Reject)
	assert.Equal(t, RejectDuplicate, res.Reject.Code)

	assert.Equal(t, 1, s.Score())
	assert.Equal(t, "6+1+5+9", s.Answers()[21], "original equation must survive")

	stored, err := st.ReadDay(ctx, "2022-03-14")
	require.NoError(t, err)
	assert.Equal(t, map[int]string{21: "6+1+5+9"}, stored)
}

func TestSession_RejectionChangesNothing(t *testing.T) {
	st := openTestStore(t)
	s := newTestSession(t, st, testutil.NewClock("2022-03-14"))
	ctx := context.Background()

	for _, text := range []string{"1+2+3+4", "6+1+5/9", "6*5*1*9", "6+1+"} {
		typeIn(s, text)
		res, err := s.Submit(ctx)
		require.NoError(t, err, "submit %q", text)
		assert.False(t, res.Accepted, "submit %q", text)

		// Rejected input stays on screen for editing.
		assert.Equal(t, text, s.Text())
		for s.Text() != "" {
			s.Backspace()
		}
	}

	assert.Equal(t, 0, s.Score())
	ds, ok, err := st.Score(ctx, "2022-03-14")
	require.NoError(t, err)
	require.True(t, ok, "opening the day should have created its history row")
	assert.Equal(t, 0, ds.Score)
}

func TestSession_JournalRecordsEveryVerdict(t *testing.T) {
	st := openTestStore(t)
	s := newTestSession(t, st, testutil.NewClock("2022-03-14"))
	ctx := context.Background()

	typeIn(s, "1+2+3+4")
	_, err := s.Submit(ctx)
	require.NoError(t, err)
	for s.Text() != "" {
		s.Backspace()
	}

	typeIn(s, "6+1+5+9")
	_, err = s.Submit(ctx)
	require.NoError(t, err)

	subs, err := st.Submissions(ctx, "2022-03-14")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, string(RejectDigitUsage), subs[0].Verdict)
	assert.Equal(t, "ACCEPTED", subs[1].Verdict)
	assert.Equal(t, 21, subs[1].Target)
	assert.Equal(t, s.Token(), subs[1].SessionToken)
}

func TestSession_RolloverFreezesExactlyOneHistoryEntry(t *testing.T) {
	st := openTestStore(t)
	clock := testutil.NewClock("2022-03-14")
	ctx := context.Background()

	day1 := newTestSession(t, st, clock)
	typeIn(day1, "6+1+5+9")
	_, err := day1.Submit(ctx)
	require.NoError(t, err)

	clock.Advance(1)

	day2 := newTestSession(t, st, clock)
	assert.Equal(t, "2022-03-15", day2.Date())
	assert.Equal(t, 0, day2.Score(), "new day starts with an empty record")
	assert.Equal(t, day2.Digits(), variant.Default()[variant.DefaultName].Digits.ForDate("2022-03-15"),
		"new day gets freshly generated digits")

	scores, err := st.Scores(ctx)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, store.DayScore{Date: "2022-03-14", Score: 1, Closed: true}, scores[0])
	assert.False(t, scores[1].Closed)

	// Opening yet another session must not close 03-14 twice or change
	// its frozen score.
	_ = newTestSession(t, st, clock)
	scores, err = st.Scores(ctx)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 1, scores[0].Score)
}

func TestSession_SubmitDetectsMidSessionRollover(t *testing.T) {
	st := openTestStore(t)
	clock := testutil.NewClock("2022-03-14")
	s := newTestSession(t, st, clock)
	ctx := context.Background()

	typeIn(s, "6+1+5+9")
	clock.Advance(1)

	res, err := s.Submit(ctx)
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.True(t, res.RolledOver)
	assert.Equal(t, "2022-03-15", s.Date())
	assert.Equal(t, "", s.Text(), "stale input is discarded with the old puzzle")

	ds, ok, err := st.Score(ctx, "2022-03-14")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, ds.Closed)
}

func TestSession_FullClear(t *testing.T) {
	st := openTestStore(t)
	clock := testutil.NewClock("2022-03-14")

	// A toy variant small enough to clear in-test: fixed 1,1,1,1 keypad
	// reaches exactly 1-4; cap targets at 3.
	v := variant.Variant{
		Name:       "toy",
		Title:      "Toy",
		TargetLow:  1,
		TargetHigh: 3,
		Digits:     digits.Policy{Count: 4, Fixed: []int{1, 1, 1, 1}},
	}
	s, err := NewSession(context.Background(), st, clock, v)
	require.NoError(t, err)
	ctx := context.Background()

	assert.Equal(t, []int{1, 2, 3}, s.Partition().Possibles)

	for _, text := range []string{"1*1*1*1", "1/1+1/1", "1+1+1*1"} {
		typeIn(s, text)
		res, err := s.Submit(ctx)
		require.NoError(t, err)
		require.True(t, res.Accepted, "submit %q", text)
	}

	assert.True(t, s.FullClear())
	ds, _, err := st.Score(ctx, "2022-03-14")
	require.NoError(t, err)
	assert.True(t, ds.FullClear)
	assert.Equal(t, 3, ds.Score)
}

func TestSession_PartitionComesFromCacheOnReload(t *testing.T) {
	st := openTestStore(t)
	clock := testutil.NewClock("2022-03-14")
	ctx := context.Background()

	first := newTestSession(t, st, clock)
	want := first.Partition().Possibles

	// The cache row must exist and a rehydrated session must agree.
	key := "6,1,5,9|1-28"
	cached, ok, err := st.LoadPartition(ctx, key)
	require.NoError(t, err)
	require.True(t, ok, "partition should be cached after first open")
	assert.Equal(t, want, cached)

	second := newTestSession(t, st, clock)
	assert.Equal(t, want, second.Partition().Possibles)
	assert.Equal(t, first.Partition().Impossibles, second.Partition().Impossibles)
}
