package store

import (
	"context"
	"testing"
)

func TestPartitionCache_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	key := "6,1,5,9|1-28"
	possibles := []int{1, 2, 3, 4, 6, 7, 8, 9, 10}

	if err := s.SavePartition(ctx, key, possibles); err != nil {
		t.Fatalf("SavePartition() failed: %v", err)
	}

	got, ok, err := s.LoadPartition(ctx, key)
	if err != nil {
		t.Fatalf("LoadPartition() failed: %v", err)
	}
	if !ok {
		t.Fatal("cached partition not found")
	}
	if len(got) != len(possibles) {
		t.Fatalf("got %d possibles, want %d", len(got), len(possibles))
	}
	for i := range got {
		if got[i] != possibles[i] {
			t.Errorf("possibles[%d] = %d, want %d", i, got[i], possibles[i])
		}
	}
}

func TestPartitionCache_Miss(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.LoadPartition(context.Background(), "9,9,9,9|1-28")
	if err != nil {
		t.Fatalf("LoadPartition() failed: %v", err)
	}
	if ok {
		t.Error("missing key reported as hit")
	}
}

// Corrupt cache rows read as misses, never as errors: the caller just
// recomputes the partition.
func TestPartitionCache_CorruptRowIsMiss(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO solver_cache (digits, possibles) VALUES (?, ?)
	`, "1,2,3,4|1-28", "{not json"); err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	_, ok, err := s.LoadPartition(ctx, "1,2,3,4|1-28")
	if err != nil {
		t.Fatalf("LoadPartition() failed: %v", err)
	}
	if ok {
		t.Error("corrupt row reported as hit")
	}
}

func TestPartitionCache_FirstWriteWins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SavePartition(ctx, "k", []int{1, 2}); err != nil {
		t.Fatalf("SavePartition() failed: %v", err)
	}
	if err := s.SavePartition(ctx, "k", []int{9}); err != nil {
		t.Fatalf("second SavePartition() failed: %v", err)
	}

	got, ok, err := s.LoadPartition(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("LoadPartition() = ok=%v, err=%v", ok, err)
	}
	if len(got) != 2 {
		t.Errorf("partition overwritten: got %v", got)
	}
}
