// Package solver establishes which targets are reachable from a day's
// digits.
//
// The search is exhaustive: every way to combine all digits, each used
// exactly once, with the four binary operators under every
// parenthesization. Operands are tracked by position, not value, so days
// with duplicate digits cannot lose combinations. For four digits this is
// a few thousand evaluated expressions, cheap enough to run synchronously
// at load, and the result is memoized per digit sequence so nothing is
// recomputed per keystroke.
package solver

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/RobOwenKing/twenty-eight/internal/expr"
)

// Partition splits a target range by reachability from a digit sequence.
//
// Recomputing from the same digits always yields the identical partition:
// the enumeration order is fixed and the integer tolerance is the single
// policy constant in package expr. Partitions are immutable after
// construction and safe to share.
type Partition struct {
	Digits      []int `json:"digits"`
	Low         int   `json:"low"`
	High        int   `json:"high"`
	Possibles   []int `json:"possibles"`
	Impossibles []int `json:"impossibles"`

	witnesses map[int]string
}

var (
	memoMu sync.Mutex
	memo   = map[string]*Partition{}
)

// Solve computes the possibles/impossibles partition of [low, high] for a
// digit sequence. Results are memoized per (digits, range); repeated calls
// return the same *Partition.
func Solve(digs []int, low, high int) *Partition {
	key := Key(digs, low, high)

	memoMu.Lock()
	defer memoMu.Unlock()
	if p, ok := memo[key]; ok {
		return p
	}

	p := enumerate(digs, low, high)
	memo[key] = p
	return p
}

// Key is the memoization key for a digit sequence and range. Also used by
// the persistent partition cache.
func Key(digs []int, low, high int) string {
	parts := make([]string, len(digs))
	for i, d := range digs {
		parts[i] = fmt.Sprint(d)
	}
	return fmt.Sprintf("%s|%d-%d", strings.Join(parts, ","), low, high)
}

// FromPossibles rebuilds a partition from a cached possibles list.
//
// The impossibles set is the complement within the range. Cached values
// outside the range, and repeats, are dropped: a damaged cache row must
// not produce a partition whose possibles escape [low, high]. Witness
// expressions are not cached, so Witness reports nothing on a rebuilt
// partition; callers that need witnesses use Solve.
func FromPossibles(digs []int, low, high int, possibles []int) *Partition {
	p := &Partition{
		Digits: append([]int(nil), digs...),
		Low:    low,
		High:   high,
	}

	isPossible := map[int]bool{}
	p.Possibles = make([]int, 0, len(possibles))
	for _, n := range possibles {
		if n < low || n > high || isPossible[n] {
			continue
		}
		isPossible[n] = true
		p.Possibles = append(p.Possibles, n)
	}
	sort.Ints(p.Possibles)

	p.Impossibles = make([]int, 0, high-low+1-len(p.Possibles))
	for n := low; n <= high; n++ {
		if !isPossible[n] {
			p.Impossibles = append(p.Impossibles, n)
		}
	}
	return p
}

// Possible reports whether target n is reachable.
func (p *Partition) Possible(n int) bool {
	i := sort.SearchInts(p.Possibles, n)
	return i < len(p.Possibles) && p.Possibles[i] == n
}

// Witness returns one expression reaching target n, when known. The
// witness is deterministic for a given digit sequence: the first
// expression the fixed enumeration order finds.
func (p *Partition) Witness(n int) (string, bool) {
	w, ok := p.witnesses[n]
	return w, ok
}

// Size returns the number of targets in the range.
func (p *Partition) Size() int {
	return p.High - p.Low + 1
}

// operand is a value in the search together with the expression that
// produced it, for witness reporting.
type operand struct {
	val  float64
	text string
}

// enumerate runs the exhaustive search.
//
// At each step every ordered pair of remaining operands is combined with
// every operator, each node evaluated strictly as (left op right); taking
// ordered pairs covers both operand orders of the non-commutative
// operators, and repeated reduction to a single operand covers all
// permutations and all binary tree shapes over the digits. Division by a
// (tolerance-)zero denominator prunes that branch. Final values are
// deduplicated by integer value.
func enumerate(digs []int, low, high int) *Partition {
	p := &Partition{
		Digits:    append([]int(nil), digs...),
		Low:       low,
		High:      high,
		witnesses: map[int]string{},
	}

	ops := make([]operand, len(digs))
	for i, d := range digs {
		ops[i] = operand{val: float64(d), text: fmt.Sprint(d)}
	}

	p.Possibles = make([]int, 0, high-low+1)
	p.Impossibles = make([]int, 0, high-low+1)

	reach := map[int]bool{}
	combine(ops, func(o operand) {
		n, ok := expr.AsInteger(o.val)
		if !ok || n < low || n > high {
			return
		}
		if !reach[n] {
			reach[n] = true
			p.witnesses[n] = trimOuterParens(o.text)
		}
	})

	for n := low; n <= high; n++ {
		if reach[n] {
			p.Possibles = append(p.Possibles, n)
		} else {
			p.Impossibles = append(p.Impossibles, n)
		}
	}
	return p
}

// combine reduces the operand list pair by pair, emitting every fully
// combined value. Iteration order (i ascending, j ascending, operators
// + - * /) is fixed so witness selection is reproducible.
func combine(ops []operand, emit func(operand)) {
	if len(ops) == 1 {
		emit(ops[0])
		return
	}

	rest := make([]operand, 0, len(ops)-1)
	for i := 0; i < len(ops); i++ {
		for j := 0; j < len(ops); j++ {
			if i == j {
				continue
			}
			a, b := ops[i], ops[j]

			rest = rest[:0]
			for k := 0; k < len(ops); k++ {
				if k != i && k != j {
					rest = append(rest, ops[k])
				}
			}

			for _, op := range [...]rune{'+', '-', '*', '/'} {
				v, ok := apply(a.val, b.val, op)
				if !ok {
					continue
				}
				node := operand{
					val:  v,
					text: "(" + a.text + string(op) + b.text + ")",
				}
				combine(append(rest, node), emit)
			}
		}
	}
}

// apply evaluates a op b, reporting false for pruned branches.
func apply(a, b float64, op rune) (float64, bool) {
	switch op {
	case '+':
		return a + b, true
	case '-':
		return a - b, true
	case '*':
		return a * b, true
	default:
		if math.Abs(b) < expr.IntegerTolerance {
			return 0, false
		}
		return a / b, true
	}
}

// trimOuterParens strips the redundant outermost parentheses a combined
// witness always carries.
func trimOuterParens(s string) string {
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		return s[1 : len(s)-1]
	}
	return s
}
