package store

import (
	"context"
	"testing"
)

func TestWriteAnswer_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	inserted, err := s.WriteAnswer(ctx, "2022-03-14", 21, "6+1+5+9", 1)
	if err != nil {
		t.Fatalf("WriteAnswer() failed: %v", err)
	}
	if !inserted {
		t.Error("first write should insert")
	}

	// Same target again, different equation: the original must win.
	inserted, err = s.WriteAnswer(ctx, "2022-03-14", 21, "(6-1)*5-9+5", 2)
	if err != nil {
		t.Fatalf("second WriteAnswer() failed: %v", err)
	}
	if inserted {
		t.Error("duplicate target should not insert")
	}

	answers, err := s.ReadDay(ctx, "2022-03-14")
	if err != nil {
		t.Fatalf("ReadDay() failed: %v", err)
	}
	if got := answers[21]; got != "6+1+5+9" {
		t.Errorf("answer for 21 = %q, want the first equation", got)
	}
}

func TestReadDay_EmptyForUnknownDate(t *testing.T) {
	s := openTestStore(t)

	answers, err := s.ReadDay(context.Background(), "1999-12-31")
	if err != nil {
		t.Fatalf("ReadDay() failed: %v", err)
	}
	if len(answers) != 0 {
		t.Errorf("unknown date returned %d answers, want 0", len(answers))
	}
}

func TestReadDay_IsolatedByDate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	mustWrite := func(date string, target int, eq string, seq int64) {
		t.Helper()
		if _, err := s.WriteAnswer(ctx, date, target, eq, seq); err != nil {
			t.Fatalf("WriteAnswer(%s, %d) failed: %v", date, target, err)
		}
	}
	mustWrite("2022-03-14", 21, "6+1+5+9", 1)
	mustWrite("2022-03-14", 8, "9-6+5*1", 2)
	mustWrite("2022-03-15", 10, "1+2+3+4", 1)

	answers, err := s.ReadDay(ctx, "2022-03-14")
	if err != nil {
		t.Fatalf("ReadDay() failed: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("got %d answers for 2022-03-14, want 2", len(answers))
	}
	if answers[8] != "9-6+5*1" {
		t.Errorf("answer for 8 = %q", answers[8])
	}
}
