// apps/go-solver/internal/solver/multi.go
//
// Multi-board solver for the Quordle/Duotrigordle family: several
// independently-progressing boards share one guess stream. Per-board
// evaluations are reduced into one joint metric per candidate guess.

package solver

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/eval"
	"github.com/robalobadob/wordle/apps/go-solver/internal/score"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Multi coordinates count boards solved in lockstep from a single guess per
// round. Hard mode is not meaningful here: one guess cannot be consistent
// with every board's history at once.
type Multi struct {
	solvers   []*Solver
	responded []bool
	done      []bool

	solutions []string
	guessable []string
	strategy  eval.Strategy
}

// NewMulti builds count independent boards over the same catalogs.
func NewMulti(count int, lists *words.Lists, strategy eval.Strategy) *Multi {
	solvers := make([]*Solver, count)
	for i := range solvers {
		solvers[i] = New(lists, false, strategy)
	}
	return &Multi{
		solvers:   solvers,
		responded: make([]bool, count),
		done:      make([]bool, count),
		solutions: lists.Solutions,
		guessable: lists.Guessable,
		strategy:  strategy,
	}
}

// Boards returns the number of boards.
func (m *Multi) Boards() int {
	return len(m.solvers)
}

// IndexNeedingResponse returns the first unfinished board that has not yet
// received feedback this round, or -1 when the round is complete.
func (m *Multi) IndexNeedingResponse() int {
	for i := range m.responded {
		if !m.responded[i] && !m.done[i] {
			return i
		}
	}
	return -1
}

// AllDone reports whether every board has been won.
func (m *Multi) AllDone() bool {
	for _, d := range m.done {
		if !d {
			return false
		}
	}
	return true
}

// NextGuess picks one guess for all unfinished boards. If any unfinished
// board is already down to a single possibility, that word is returned
// immediately — it wins a board for sure. Otherwise each catalog word's
// per-board evaluations are reduced into a joint metric and the best tuple
// wins.
//
// Once every board has been won there is nothing left to guess and the empty
// string is returned; callers end the round loop on AllDone.
func (m *Multi) NextGuess() string {
	for i, s := range m.solvers {
		if !m.done[i] && len(s.Possibilities()) == 1 {
			return s.Possibilities()[0]
		}
	}

	active := m.activeBoards()
	if len(active) == 0 {
		return ""
	}

	best := eval.Worst()
	var bestGuesses []string

	catalog := make([]string, 0, len(m.solutions)+len(m.guessable))
	catalog = append(catalog, m.solutions...)
	catalog = append(catalog, m.guessable...)

	for _, guess := range catalog {
		joint := eval.Guess(guess, active[0].Possibilities())
		for _, s := range active[1:] {
			joint = eval.Reduce(joint, eval.Guess(guess, s.Possibilities()))
		}
		switch cmp := m.strategy.Compare(joint, best); {
		case cmp > 0:
			best = joint
			bestGuesses = append(bestGuesses[:0], guess)
		case cmp == 0:
			bestGuesses = append(bestGuesses, guess)
		}
	}

	// Mirror the single-board tie-break: prefer a guess that is still a
	// possible answer on some unfinished board.
	for _, g := range bestGuesses {
		for _, s := range active {
			if s.isPossible(g) {
				return g
			}
		}
	}
	return bestGuesses[0]
}

// RespondToScore applies feedback to exactly one board. A board whose
// feedback is all-Correct is marked done and excluded from later rounds.
func (m *Multi) RespondToScore(index int, guess string, sc score.Score) error {
	if index < 0 || index >= len(m.solvers) {
		return fmt.Errorf("board index %d out of range", index)
	}
	if m.responded[index] {
		return fmt.Errorf("board %d already responded this round", index)
	}
	if err := m.solvers[index].RespondToScore(guess, sc); err != nil {
		return fmt.Errorf("board %d: %w", index, err)
	}
	m.responded[index] = true
	if sc.IsWin() {
		m.done[index] = true
	}
	return nil
}

// NextRound clears the per-round response bookkeeping.
func (m *Multi) NextRound() {
	for i := range m.responded {
		m.responded[i] = false
	}
}

// activeBoards returns boards that still need narrowing down. Boards with a
// single possibility are excluded: the early return in NextGuess handles
// them, and their evaluations would only add noise to the joint metric.
func (m *Multi) activeBoards() []*Solver {
	var active []*Solver
	for i, s := range m.solvers {
		if !m.done[i] && len(s.Possibilities()) > 1 {
			active = append(active, s)
		}
	}
	return active
}
