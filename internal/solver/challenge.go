// apps/go-solver/internal/solver/challenge.go
//
// Challenge-mode solver for Absurdle-style adversarial play.
//
// The judge has no committed answer: for each guess it returns whichever
// feedback eliminates the fewest remaining possibilities, breaking ties
// toward the lower-information score (smaller EntropyLost). The true target
// is fixed externally for validation, so the search must find a guess
// sequence that forces a win even against that worst-case judge.
//
// The search keeps an explicit stack of candidate-guess levels, one per
// turn, ordered worst-to-best within a level. On a dead end it pops its way
// back up; the full possibility/history state is rebuilt by replaying the
// stacked guess path from scratch. Depth is small enough that the O(depth²)
// replay cost is irrelevant, and replay is far harder to get wrong than
// incremental undo.

package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/score"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// ErrSearchExhausted means the backtracking stack emptied: no guess sequence
// beats the judge for this target under these catalogs. A legitimate (if
// rare) outcome, not a bug.
var ErrSearchExhausted = errors.New("search exhausted: no winning guess sequence")

// Challenge is the adversarial-judge solver for one target word.
type Challenge struct {
	target        string
	possibilities []string
	history       []guessScore

	solutions []string
	guessable []string
	hardMode  bool
}

// NewChallenge validates the target against the solution catalog and sets up
// the search. A target outside the catalog is a configuration error.
func NewChallenge(target string, lists *words.Lists, hardMode bool) (*Challenge, error) {
	if !lists.IsSolution(target) {
		return nil, fmt.Errorf("target word %q is not in the solutions list", target)
	}
	return &Challenge{
		target:        target,
		possibilities: append([]string(nil), lists.Solutions...),
		solutions:     lists.Solutions,
		guessable:     lists.Guessable,
		hardMode:      hardMode,
	}, nil
}

// Solve searches for a guess sequence that ends with the target as the sole
// remaining possibility. It returns the winning sequence (ending in the
// target itself) or ErrSearchExhausted.
func (c *Challenge) Solve() ([]string, error) {
	// Invariant: every level of the stack is a non-empty candidate list, and
	// the last element of each level is the guess currently being played.
	var stack [][]string

	for {
		next := c.nextGuesses()

		switch {
		case len(next) == 0:
			// Dead end. The guess on top of the stack led here; drop it, and
			// keep popping while that empties levels.
			log.Debug().Int("depth", len(stack)).Msg("dead end, backtracking")
			if len(stack) == 0 {
				return nil, ErrSearchExhausted
			}
			stack[len(stack)-1] = dropLast(stack[len(stack)-1])
			for len(stack[len(stack)-1]) == 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return nil, ErrSearchExhausted
				}
				stack[len(stack)-1] = dropLast(stack[len(stack)-1])
			}

		case len(next) == 1 && next[0] == c.target:
			path := make([]string, 0, len(stack)+1)
			for _, level := range stack {
				path = append(path, level[len(level)-1])
			}
			return append(path, c.target), nil

		default:
			// Neither a win nor a loss: descend.
			stack = append(stack, next)
		}

		// Rebuild state for the current guess path from scratch.
		c.reset()
		for _, level := range stack {
			guess := level[len(level)-1]
			if err := c.respond(guess, score.Compute(guess, c.target)); err != nil {
				// The judge's score never eliminates the target, so replay
				// cannot empty the set.
				return nil, err
			}
		}
	}
}

// nextGuesses computes the viable guesses at the current depth: those whose
// judge-assigned feedback eliminates the most possibilities while still
// matching the feedback the literal target would produce. The returned slice
// is ordered worst-to-best (quality never decreases along it).
func (c *Challenge) nextGuesses() []string {
	if len(c.possibilities) == 1 {
		return append([]string(nil), c.possibilities...)
	}

	var guesses []string
	bestEliminated := 0

nextGuess:
	for _, guess := range c.guessCatalog() {
		// Never guess the target outright; the sole-possibility case above
		// covers the winning move.
		if guess == c.target {
			continue
		}
		if c.hardMode && !c.consistentWithHistory(guess) {
			continue
		}

		minEliminated := math.MaxInt
		var judgeScore score.Score
		haveScore := false

		for _, sc := range score.All() {
			eliminated := 0
			for _, p := range c.possibilities {
				if score.Compute(guess, p) != sc {
					eliminated++
				}
				// eliminated only grows; once past the minimum this score
				// cannot be the judge's pick.
				if eliminated > minEliminated {
					break
				}
			}
			if eliminated > minEliminated {
				continue
			}

			if eliminated < minEliminated {
				minEliminated = eliminated
				judgeScore = sc
				haveScore = true
			} else if haveScore && judgeScore.EntropyLost() > sc.EntropyLost() {
				// Equal elimination: the judge returns the lower-information
				// score.
				judgeScore = sc
			}

			// minEliminated only shrinks; once below the best guess so far
			// this guess cannot matter.
			if minEliminated < bestEliminated {
				continue nextGuess
			}
		}

		if haveScore && score.Compute(guess, c.target) != judgeScore {
			// The judge's reply to this guess would eliminate the target.
			continue
		}

		if minEliminated > bestEliminated {
			bestEliminated = minEliminated
		}
		if minEliminated == bestEliminated {
			guesses = append(guesses, guess)
		}
	}

	if bestEliminated == 0 {
		// The judge can answer every viable guess without conceding a single
		// possibility, so descending here would repeat this exact state
		// forever. Report a dead end instead and let the search backtrack.
		return nil
	}

	return guesses
}

func (c *Challenge) respond(guess string, sc score.Score) error {
	kept := c.possibilities[:0]
	for _, p := range c.possibilities {
		if score.Compute(guess, p) == sc {
			kept = append(kept, p)
		}
	}
	c.possibilities = kept
	if len(c.possibilities) == 0 {
		return fmt.Errorf("%w after %q scored %s", ErrNoPossibilities, guess, sc)
	}
	c.history = append(c.history, guessScore{guess: guess, score: sc})
	return nil
}

func (c *Challenge) reset() {
	c.possibilities = append(c.possibilities[:0:0], c.solutions...)
	c.history = c.history[:0]
}

func (c *Challenge) consistentWithHistory(candidate string) bool {
	for _, h := range c.history {
		if score.Compute(h.guess, candidate) != h.score {
			return false
		}
	}
	return true
}

// guessCatalog iterates guessable-only words first, then solutions.
func (c *Challenge) guessCatalog() []string {
	out := make([]string, 0, len(c.guessable)+len(c.solutions))
	out = append(out, c.guessable...)
	return append(out, c.solutions...)
}

func dropLast(level []string) []string {
	return level[:len(level)-1]
}
