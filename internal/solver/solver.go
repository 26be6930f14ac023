// apps/go-solver/internal/solver/solver.go
//
// Single-board solver.
// Responsibilities:
//   - Track the live possibility set (solutions consistent with all feedback
//     received so far).
//   - Pick the next guess by evaluating every catalog word under the selected
//     strategy.
//   - Apply feedback, shrinking the possibility set; enforce hard mode via
//     the guess/score history.
//
// The solver never panics on bad feedback: an emptied possibility set is
// reported as ErrNoPossibilities so the caller can decide what to do.

package solver

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/eval"
	"github.com/robalobadob/wordle/apps/go-solver/internal/score"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// ErrNoPossibilities means the feedback stream is inconsistent with every
// word in the solution catalog: operator error or a corrupted catalog.
// The solve cannot continue.
var ErrNoPossibilities = errors.New("no possibilities left")

type guessScore struct {
	guess string
	score score.Score
}

// Solver drives one board turn by turn.
type Solver struct {
	// Possible solutions that haven't been eliminated yet.
	possibilities []string

	// Full catalogs; guesses are drawn from solutions ∪ guessable.
	solutions []string
	guessable []string

	// Guesses made so far and the scores they got. Only kept in hard mode.
	history []guessScore

	// Only allowed to guess words consistent with scores seen so far.
	hardMode bool

	strategy eval.Strategy
}

// New constructs a solver over the given catalogs. The possibility set starts
// as the whole solution catalog.
func New(lists *words.Lists, hardMode bool, strategy eval.Strategy) *Solver {
	return &Solver{
		possibilities: append([]string(nil), lists.Solutions...),
		solutions:     lists.Solutions,
		guessable:     lists.Guessable,
		hardMode:      hardMode,
		strategy:      strategy,
	}
}

// Possibilities exposes the live possibility set. Callers must not modify it.
func (s *Solver) Possibilities() []string {
	return s.possibilities
}

// NextGuess returns the word to guess next. With one possibility left, that
// word is returned unconditionally. Otherwise every catalog word is scored
// and the best tuple wins; among tied best guesses, one that is still a
// possible answer is preferred — failing that, any tied guess is returned,
// trading a possible win this turn for maximal information.
func (s *Solver) NextGuess() string {
	if len(s.possibilities) == 1 {
		return s.possibilities[0]
	}

	best := eval.Worst()
	var bestGuesses []string

	for _, guess := range s.catalog() {
		if s.hardMode && !s.consistentWithHistory(guess) {
			continue
		}
		e, ok := eval.GuessBounded(guess, s.possibilities, s.strategy, best)
		if !ok {
			continue
		}
		switch cmp := s.strategy.Compare(e, best); {
		case cmp > 0:
			best = e
			bestGuesses = append(bestGuesses[:0], guess)
		case cmp == 0:
			bestGuesses = append(bestGuesses, guess)
		}
	}

	for _, g := range bestGuesses {
		if s.isPossible(g) {
			return g
		}
	}
	log.Debug().Str("guess", bestGuesses[0]).Msg("guessing a word that is not a possible solution")
	return bestGuesses[0]
}

// RespondToScore whittles down the possibility set given the actual score for
// a guess. The guess does not have to be one NextGuess returned; it can be
// anything. Returns ErrNoPossibilities if the set empties.
func (s *Solver) RespondToScore(guess string, sc score.Score) error {
	if s.hardMode {
		s.history = append(s.history, guessScore{guess: guess, score: sc})
	}

	kept := s.possibilities[:0]
	for _, p := range s.possibilities {
		if score.Compute(guess, p) == sc {
			kept = append(kept, p)
		}
	}
	s.possibilities = kept

	if len(s.possibilities) == 0 {
		return fmt.Errorf("%w after %q scored %s", ErrNoPossibilities, guess, sc)
	}

	if len(s.possibilities) <= 10 {
		log.Debug().Strs("possibilities", s.possibilities).Msg("possibilities left")
	} else {
		log.Debug().Int("count", len(s.possibilities)).Msg("possibilities left")
	}
	return nil
}

// catalog iterates solutions first, then guessable-only words.
func (s *Solver) catalog() []string {
	out := make([]string, 0, len(s.solutions)+len(s.guessable))
	out = append(out, s.solutions...)
	return append(out, s.guessable...)
}

// consistentWithHistory applies the hard-mode rule: a candidate guess must
// earn exactly the recorded score against every prior guess, i.e. it has to
// be a word we could still believe is the answer.
func (s *Solver) consistentWithHistory(candidate string) bool {
	for _, h := range s.history {
		if score.Compute(h.guess, candidate) != h.score {
			return false
		}
	}
	return true
}

func (s *Solver) isPossible(guess string) bool {
	for _, p := range s.possibilities {
		if p == guess {
			return true
		}
	}
	return false
}
