// apps/go-solver/internal/eval/eval.go
//
// Guess evaluation: partition a possibility set by the feedback a candidate
// guess would produce against each remaining possibility, and reduce the
// partition to a comparable metric under the selected strategy.

package eval

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/score"
)

// Eval is the raw metric pair for one guess against one possibility set.
// Count is the number of distinct feedback buckets. Size is the negated size
// of the largest bucket, so that bigger is better for both fields.
type Eval struct {
	Count int
	Size  int
}

// Strategy selects which field dominates when comparing Evals.
type Strategy int

const (
	// GroupSize minimizes the largest surviving bucket; bucket count breaks
	// ties.
	GroupSize Strategy = iota
	// GroupCount maximizes the number of distinct buckets; worst-case bucket
	// size breaks ties.
	GroupCount
)

// ParseStrategy maps a configuration string onto a Strategy. Unrecognized
// names are a configuration-time error.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "groupsize":
		return GroupSize, nil
	case "groupcount":
		return GroupCount, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (strategies are 'groupsize' and 'groupcount')", s)
	}
}

func (st Strategy) String() string {
	if st == GroupCount {
		return "groupcount"
	}
	return "groupsize"
}

// Key returns the lexicographic comparison key for e under st.
func (st Strategy) Key(e Eval) (int, int) {
	if st == GroupCount {
		return e.Count, e.Size
	}
	return e.Size, e.Count
}

// Compare orders two Evals under st: negative if a < b, zero if equal,
// positive if a > b.
func (st Strategy) Compare(a, b Eval) int {
	a1, a2 := st.Key(a)
	b1, b2 := st.Key(b)
	if a1 != b1 {
		if a1 < b1 {
			return -1
		}
		return 1
	}
	if a2 != b2 {
		if a2 < b2 {
			return -1
		}
		return 1
	}
	return 0
}

// Worst is an Eval that loses to every real one; use as the initial best when
// scanning candidates.
func Worst() Eval {
	return Eval{Count: -1 << 30, Size: -1 << 30}
}

// Guess scores one candidate guess against the possibility list.
//
// For each possible solution, compute what feedback this guess would get if
// that were the actual solution, and count how many possibilities land in
// each feedback bucket.
func Guess(guess string, possibilities []string) Eval {
	var groups [score.NumScores]int
	for _, p := range possibilities {
		groups[score.Compute(guess, p)]++
	}

	count, largest := 0, 0
	for _, g := range groups {
		if g == 0 {
			continue
		}
		count++
		if g > largest {
			largest = g
		}
	}
	return Eval{Count: count, Size: -largest}
}

// GuessBounded is Guess with early termination against a best score seen so
// far. It returns ok=false as soon as the candidate provably cannot match
// best under st:
//
//   - GroupSize: the running largest bucket only grows, so once it exceeds
//     best's largest bucket the candidate is strictly worse.
//   - GroupCount: the final bucket count is at most buckets-so-far plus
//     possibilities not yet scanned, so once that upper bound drops below
//     best's count the candidate is strictly worse.
//
// When ok is true the returned Eval is identical to Guess's; pruning is an
// optimization only and never changes which guesses win.
func GuessBounded(guess string, possibilities []string, st Strategy, best Eval) (Eval, bool) {
	var groups [score.NumScores]int
	count, largest := 0, 0
	maxAllowed := -best.Size

	for i, p := range possibilities {
		b := score.Compute(guess, p)
		if groups[b] == 0 {
			count++
		}
		groups[b]++
		if groups[b] > largest {
			largest = groups[b]
		}

		switch st {
		case GroupSize:
			if largest > maxAllowed {
				return Eval{}, false
			}
		case GroupCount:
			if remaining := len(possibilities) - i - 1; count+remaining < best.Count {
				return Eval{}, false
			}
		}
	}
	return Eval{Count: count, Size: -largest}, true
}

// Reduce combines two Evals when evaluating a single guess across multiple
// boards. Bucket counts add (more distinct outcomes overall is strictly
// better); negated largest-bucket sizes take the max (the joint worst case is
// the worst individual board).
func Reduce(a, b Eval) Eval {
	e := Eval{Count: a.Count + b.Count, Size: a.Size}
	if b.Size > e.Size {
		e.Size = b.Size
	}
	return e
}
