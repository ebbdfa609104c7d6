// Package digits derives the puzzle digits for a calendar day.
//
// The derivation is fully specified so independent implementations produce
// identical digits for the same day:
//
//  1. seed = FNV-1a 64 over "twentyeight/digits/v1" + 0x00 + date
//  2. a splitmix64 stream seeded with that value draws one 64-bit word
//     per digit
//  3. each digit is low + (word mod (high-low+1))
//
// The domain prefix with null separator prevents boundary ambiguity between
// the domain and the date string, and leaves room to version the algorithm
// without silently changing every player's history.
package digits

import "hash/fnv"

// seedDomain versions the digit derivation. Changing the algorithm means
// changing this string.
const seedDomain = "twentyeight/digits/v1"

// Policy describes how a day's digits are drawn.
//
// Low and High bound each drawn digit inclusively. When Fixed is non-empty
// the same digits are used every day and no drawing happens (the original
// Forty-Two release shipped with a fixed 1-4 keypad).
type Policy struct {
	Count int   `json:"count"`
	Low   int   `json:"low"`
	High  int   `json:"high"`
	Fixed []int `json:"fixed,omitempty"`
}

// Default is the standard policy: four digits, each in 1-9.
// Digits are kept nonzero so no day degenerates into division-by-zero traps.
var Default = Policy{Count: 4, Low: 1, High: 9}

// ForDate returns the digits for a calendar date.
//
// date must already be normalized to a local calendar day string
// ("2006-01-02"); timezone handling is the caller's concern. The result is a
// pure function of the date string and the policy. Never fails.
func (p Policy) ForDate(date string) []int {
	if len(p.Fixed) > 0 {
		out := make([]int, len(p.Fixed))
		copy(out, p.Fixed)
		return out
	}

	span := uint64(p.High - p.Low + 1)
	state := Seed(date)

	out := make([]int, p.Count)
	for i := range out {
		out[i] = p.Low + int(splitmix64(&state)%span)
	}
	return out
}

// Seed returns the 64-bit seed for a date string.
//
// Exposed so tests and external tooling can verify the derivation chain
// independently of digit drawing.
func Seed(date string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(seedDomain))
	h.Write([]byte{0x00})
	h.Write([]byte(date))
	return h.Sum64()
}

// splitmix64 advances the state and returns the next word of the stream.
// Constants are from Steele, Lea & Flood's published SplitMix64.
func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
