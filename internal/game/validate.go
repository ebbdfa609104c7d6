package game

import (
	"github.com/RobOwenKing/twenty-eight/internal/expr"
)

// Validate applies the game rules to a submitted expression.
//
// A submission is accepted iff it
//  1. uses only keypad characters,
//  2. evaluates to an integer (under the fixed tolerance),
//  3. falls inside the target range,
//  4. names a target not already answered today, and
//  5. uses exactly the day's digit multiset, each digit once.
//
// The exact-multiset rule is enforced deliberately: the very first release
// only checked the evaluated value, but the rules as published have always
// said each digit button is used exactly once.
//
// On success the evaluated target is returned. On failure the error is
// always a *RejectError carrying the specific reason.
func Validate(text string, dayDigits []int, low, high int, found map[int]string) (int, error) {
	used, err := expr.UsedDigits(text)
	if err != nil {
		return 0, &RejectError{Code: RejectCharacter, Message: err.Error(), Err: err}
	}

	v, err := expr.Evaluate(text)
	if err != nil {
		return 0, &RejectError{Code: RejectNoValue, Message: "expression has no value", Err: err}
	}

	n, ok := expr.AsInteger(v)
	if !ok {
		return 0, reject(RejectNonInteger, "%s = %v, not an integer", text, v)
	}
	if n < low || n > high {
		return 0, &RejectError{Code: RejectOutOfRange, Message: "target out of range", Target: n}
	}
	if _, dup := found[n]; dup {
		return 0, &RejectError{Code: RejectDuplicate, Message: "target already answered", Target: n}
	}
	if !sameMultiset(used, dayDigits) {
		return 0, reject(RejectDigitUsage, "used digits %v, today's are %v (each exactly once)", used, dayDigits)
	}
	return n, nil
}

// sameMultiset compares digit usage counts. Order doesn't matter,
// multiplicity does: a day with digits [1,7,1,8] needs two 1s.
func sameMultiset(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	var counts [10]int
	for _, d := range a {
		counts[d]++
	}
	for _, d := range b {
		counts[d]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}
