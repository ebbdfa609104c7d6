package digits

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForDate_Deterministic(t *testing.T) {
	dates := []string{"2022-03-14", "2024-01-01", "2026-08-31"}

	for _, date := range dates {
		first := Default.ForDate(date)
		second := Default.ForDate(date)
		assert.Equal(t, first, second, "digits for %s changed between calls", date)
	}
}

// Pinned outputs of the documented derivation (FNV-1a 64 seed, splitmix64
// stream, digits in 1-9). These values were verified against an independent
// implementation of the same chain; if this test breaks, the daily digits
// changed for every player.
func TestForDate_KnownValues(t *testing.T) {
	tests := []struct {
		date string
		want []int
	}{
		{"2022-03-14", []int{6, 1, 5, 9}},
		{"2024-01-01", []int{1, 7, 1, 8}},
		{"2025-12-25", []int{5, 4, 9, 2}},
		{"2026-08-31", []int{6, 2, 3, 8}},
		{"2026-09-01", []int{8, 6, 2, 3}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Default.ForDate(tt.date), "date %s", tt.date)
	}
}

func TestForDate_DigitsInRange(t *testing.T) {
	// A year of days; every digit must land in [Low, High].
	for _, date := range yearOfDates(t) {
		got := Default.ForDate(date)
		require.Len(t, got, Default.Count)
		for i, d := range got {
			if d < Default.Low || d > Default.High {
				t.Fatalf("date %s digit %d = %d, outside [%d,%d]", date, i, d, Default.Low, Default.High)
			}
		}
	}
}

func TestForDate_DatesDiffer(t *testing.T) {
	// Distinct dates should (overwhelmingly) give distinct sequences.
	// Over a year, identical neighbours are possible but full-year
	// uniformity collapse is not.
	seen := map[string]int{}
	for _, date := range yearOfDates(t) {
		seen[fmt.Sprint(Default.ForDate(date))]++
	}
	assert.Greater(t, len(seen), 100, "digit sequences over a year look degenerate")
}

func TestForDate_FixedPolicy(t *testing.T) {
	p := Policy{Count: 4, Fixed: []int{1, 2, 3, 4}}

	a := p.ForDate("2022-03-14")
	b := p.ForDate("2026-08-31")
	assert.Equal(t, []int{1, 2, 3, 4}, a)
	assert.Equal(t, a, b, "fixed policy must ignore the date")

	// Returned slice must be a copy, not the policy's backing array.
	a[0] = 9
	assert.Equal(t, []int{1, 2, 3, 4}, p.Fixed)
}

func TestSeed_Stable(t *testing.T) {
	assert.Equal(t, Seed("2022-03-14"), Seed("2022-03-14"))
	assert.NotEqual(t, Seed("2022-03-14"), Seed("2022-03-15"))
}

func yearOfDates(t *testing.T) []string {
	t.Helper()
	dates := make([]string, 0, 365)
	months := []int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	for m, days := range months {
		for d := 1; d <= days; d++ {
			dates = append(dates, fmt.Sprintf("2025-%02d-%02d", m+1, d))
		}
	}
	return dates
}
