// apps/go-solver/internal/score/score.go
//
// Score codec for guess feedback.
// Responsibilities:
//   - Compute the feedback a guess earns against a solution (two-pass,
//     repeated-letter aware).
//   - Pack the five per-letter marks into a single base-3 byte.
//   - Encode/decode the compact a/p/c text form.
//   - Enumerate all 243 score values for the evaluators.

package score

import (
	"errors"
	"strings"
)

// Mark is the evaluation result for a single letter in a guess.
type Mark uint8

const (
	Absent  Mark = iota // letter does not appear (or all copies used up)
	Present             // letter appears elsewhere in the solution
	Correct             // letter is in the right position
)

const (
	// WordLen is the fixed word length. Nothing in this module supports any
	// other length.
	WordLen = 5

	// NumScores is 3^WordLen, the size of the full score space.
	NumScores = 243
)

// Score packs five Marks base-3, first letter most significant. The all-Correct
// score is therefore NumScores-1.
type Score uint8

// ErrBadScore is returned by Parse for anything that is not exactly five
// characters from {a, p, c}.
var ErrBadScore = errors.New("score must be 5 characters, each 'a' (absent), 'p' (present), or 'c' (correct)")

const letters = "apc"

// Pack folds five marks into a Score.
func Pack(marks [WordLen]Mark) Score {
	var n uint8
	for _, m := range marks {
		n = n*3 + uint8(m)
	}
	return Score(n)
}

// Marks unpacks a Score back into its five per-position marks.
func (s Score) Marks() [WordLen]Mark {
	var marks [WordLen]Mark
	n := uint8(s)
	for i := WordLen - 1; i >= 0; i-- {
		marks[i] = Mark(n % 3)
		n /= 3
	}
	return marks
}

// IsWin reports whether every position is Correct.
func (s Score) IsWin() bool {
	return s == NumScores-1
}

// String renders the compact text form, e.g. "apcca".
func (s Score) String() string {
	var b strings.Builder
	b.Grow(WordLen)
	for _, m := range s.Marks() {
		b.WriteByte(letters[m])
	}
	return b.String()
}

// Parse decodes the compact text form produced by String. Position order is
// preserved; anything malformed is rejected, never coerced.
func Parse(text string) (Score, error) {
	if len(text) != WordLen {
		return 0, ErrBadScore
	}
	var marks [WordLen]Mark
	for i := 0; i < WordLen; i++ {
		switch text[i] {
		case 'a':
			marks[i] = Absent
		case 'p':
			marks[i] = Present
		case 'c':
			marks[i] = Correct
		default:
			return 0, ErrBadScore
		}
	}
	return Pack(marks), nil
}

// Compute returns the feedback for guess against solution. Both words must be
// WordLen lowercase letters; catalogs are validated at load time.
//
// Two passes over the word, with a per-letter remaining-count table so that
// repeated letters behave like the real game: a correct position reserves its
// letter first, and each Present consumes one remaining copy. A guess with two
// copies of a letter when the solution has one yields exactly one
// Correct-or-Present, never two.
func Compute(guess, solution string) Score {
	var marks [WordLen]Mark
	var remaining [26]int

	for i := 0; i < WordLen; i++ {
		remaining[solution[i]-'a']++
	}
	for i := 0; i < WordLen; i++ {
		if guess[i] == solution[i] {
			marks[i] = Correct
			remaining[guess[i]-'a']--
		}
	}
	for i := 0; i < WordLen; i++ {
		if marks[i] == Correct {
			continue
		}
		if c := guess[i] - 'a'; remaining[c] > 0 {
			marks[i] = Present
			remaining[c]--
		}
	}
	return Pack(marks)
}

// all is built once at package init and never mutated. It over-enumerates:
// some values are unachievable for any guess/solution pair, but those simply
// never match anything during search.
var all = buildAll()

func buildAll() [NumScores]Score {
	var scores [NumScores]Score
	for i := range scores {
		scores[i] = Score(i)
	}
	return scores
}

// All returns every representable Score value. The returned slice aliases an
// immutable package table; callers must not modify it.
func All() []Score {
	return all[:]
}

// EntropyLost is a total order on scores used to break ties between feedback
// values that eliminate equally many possibilities. Lower means less
// information revealed. Ordered by (correct count, present count, then the
// packed per-position ranks, Correct > Present > Absent). Integer arithmetic
// only, so the order is exact and platform independent.
func (s Score) EntropyLost() int {
	correct, present := 0, 0
	for _, m := range s.Marks() {
		switch m {
		case Correct:
			correct++
		case Present:
			present++
		}
	}
	return ((correct*(WordLen+1))+present)*NumScores + int(s)
}
