// Package stats folds the score history into the figures the stats page
// shows: days played, high score, running average, the last-seven-days
// strip, and the all-time counts bucketed by score band.
package stats

import (
	"github.com/RobOwenKing/twenty-eight/internal/store"
	"github.com/RobOwenKing/twenty-eight/internal/variant"
)

// BandCount is one bucket of the all-time chart.
type BandCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`

	// Current marks the band holding the most recent day's score, so
	// the chart can highlight where today landed.
	Current bool `json:"current"`
}

// Summary is the aggregate view over a player's whole history.
type Summary struct {
	// DaysPlayed counts days with a nonzero score. A day that was only
	// opened, never scored, doesn't count as played.
	DaysPlayed int `json:"days_played"`

	// Today is the current day's running score.
	Today int `json:"today"`

	// Highest is the best score across all recorded days.
	Highest int `json:"highest"`

	// Average is the mean score over days actually played (nonzero
	// scores only). Zero when nothing has been played.
	Average float64 `json:"average"`

	// LastSeven is the most recent seven days' scores in chronological
	// order, zero-padded on the left when fewer days exist.
	LastSeven [7]int `json:"last_seven"`

	// Bands counts played days per score band.
	Bands []BandCount `json:"bands"`
}

// Compute aggregates a chronological score sequence. The final element is
// the current day, open or closed; the fold doesn't care.
func Compute(scores []int, bands []variant.Band) Summary {
	var sum Summary
	if len(scores) == 0 {
		sum.Bands = bandCounts(nil, -1, bands)
		return sum
	}

	sum.Today = scores[len(scores)-1]

	total := 0
	for _, score := range scores {
		if score > sum.Highest {
			sum.Highest = score
		}
		if score > 0 {
			sum.DaysPlayed++
			total += score
		}
	}
	if sum.DaysPlayed > 0 {
		sum.Average = float64(total) / float64(sum.DaysPlayed)
	}

	// Zero-padding on the left keeps the strip aligned to "today is
	// rightmost" even for brand-new players.
	for i := 0; i < 7; i++ {
		idx := len(scores) - 7 + i
		if idx >= 0 {
			sum.LastSeven[i] = scores[idx]
		}
	}

	sum.Bands = bandCounts(scores, scores[len(scores)-1], bands)
	return sum
}

// FromHistory is the store-facing convenience: flattens history rows and
// aggregates them. The final row must be the current day; callers reading
// raw history without an open session use FromHistoryAt instead.
func FromHistory(rows []store.DayScore, bands []variant.Band) Summary {
	scores := make([]int, len(rows))
	for i, row := range rows {
		scores[i] = row.Score
	}
	return Compute(scores, bands)
}

// FromHistoryAt aggregates history rows as of the given date. When no row
// exists for that date yet (a new day before any play), a zero score is
// appended so Today and the band highlight reflect the current day, not
// the last day played.
func FromHistoryAt(rows []store.DayScore, today string, bands []variant.Band) Summary {
	scores := make([]int, 0, len(rows)+1)
	for _, row := range rows {
		scores = append(scores, row.Score)
	}
	if len(rows) == 0 || rows[len(rows)-1].Date != today {
		scores = append(scores, 0)
	}
	return Compute(scores, bands)
}

// bandCounts buckets nonzero scores, flagging the band holding latest.
func bandCounts(scores []int, latest int, bands []variant.Band) []BandCount {
	counts := make([]BandCount, len(bands))
	for i, band := range bands {
		counts[i] = BandCount{Label: band.Label, Current: band.Contains(latest)}
		for _, score := range scores {
			if score > 0 && band.Contains(score) {
				counts[i].Count++
			}
		}
	}
	return counts
}
