// apps/go-solver/internal/stats/stats.go
//
// Solve-all benchmark harness.
// Runs the solver against every word in the solution catalog, under both
// strategies, collecting a histogram of how many guesses each answer took.
// The work is split into contiguous shards, one goroutine per shard; each
// worker owns its own solver state and the per-worker count arrays are merged
// by elementwise addition once all workers finish.

package stats

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/eval"
	"github.com/robalobadob/wordle/apps/go-solver/internal/score"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// MaxGuesses caps the histogram; a solve this long indicates a degenerate
// catalog and is reported rather than counted.
const MaxGuesses = 10

// AnswerResult is the per-answer outcome under both strategies.
type AnswerResult struct {
	Answer     string
	GroupSize  int // guesses taken under the groupsize strategy
	GroupCount int // guesses taken under the groupcount strategy
}

// Summary aggregates a whole run. Index i of a histogram counts the answers
// that took exactly i guesses.
type Summary struct {
	GroupSize  [MaxGuesses]int
	GroupCount [MaxGuesses]int

	// Record compares the strategies head to head:
	// [0] answers where groupcount took fewer guesses,
	// [1] answers where groupsize took fewer guesses,
	// [2] ties.
	Record [3]int

	Answers []AnswerResult
}

// Run solves every catalog answer with both strategies across workers
// goroutines and merges the counts.
func Run(lists *words.Lists, workers int, hardMode bool) (*Summary, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(lists.Solutions) {
		workers = len(lists.Solutions)
	}

	results := make(chan *Summary, workers)
	perWorker := len(lists.Solutions) / workers

	start := 0
	for i := 0; i < workers; i++ {
		end := start + perWorker
		if i == workers-1 {
			end = len(lists.Solutions)
		}
		go shard(results, lists, hardMode, start, end)
		start = end
	}

	total := &Summary{}
	for i := 0; i < workers; i++ {
		part := <-results
		if part == nil {
			return nil, fmt.Errorf("stats: worker failed; see log for the inconsistent answer")
		}
		for j := 0; j < MaxGuesses; j++ {
			total.GroupSize[j] += part.GroupSize[j]
			total.GroupCount[j] += part.GroupCount[j]
		}
		for j := range total.Record {
			total.Record[j] += part.Record[j]
		}
		total.Answers = append(total.Answers, part.Answers...)
	}
	return total, nil
}

// shard solves answers[start:end] and sends its partial summary. A worker
// that hits an inconsistent state sends nil; that is a programming error, not
// a runtime condition to retry.
func shard(results chan<- *Summary, lists *words.Lists, hardMode bool, start, end int) {
	part := &Summary{}

	for _, answer := range lists.Solutions[start:end] {
		sizeGuesses, err := solveOne(lists, answer, hardMode, eval.GroupSize)
		if err != nil {
			log.Error().Err(err).Str("answer", answer).Msg("groupsize solve failed")
			results <- nil
			return
		}
		countGuesses, err := solveOne(lists, answer, hardMode, eval.GroupCount)
		if err != nil {
			log.Error().Err(err).Str("answer", answer).Msg("groupcount solve failed")
			results <- nil
			return
		}

		part.GroupSize[sizeGuesses]++
		part.GroupCount[countGuesses]++
		part.Answers = append(part.Answers, AnswerResult{
			Answer:     answer,
			GroupSize:  sizeGuesses,
			GroupCount: countGuesses,
		})
		switch {
		case countGuesses < sizeGuesses:
			part.Record[0]++
		case sizeGuesses < countGuesses:
			part.Record[1]++
		default:
			part.Record[2]++
		}
		log.Debug().
			Str("answer", answer).
			Int("groupsize", sizeGuesses).
			Int("groupcount", countGuesses).
			Msg("solved")
	}

	results <- part
}

// solveOne plays a full game against a known answer and returns the guess
// count.
func solveOne(lists *words.Lists, answer string, hardMode bool, strategy eval.Strategy) (int, error) {
	s := solver.New(lists, hardMode, strategy)
	for guesses := 1; guesses < MaxGuesses; guesses++ {
		guess := s.NextGuess()
		sc := score.Compute(guess, answer)
		if sc.IsWin() {
			return guesses, nil
		}
		if err := s.RespondToScore(guess, sc); err != nil {
			return 0, err
		}
	}
	return 0, fmt.Errorf("answer %q not solved within %d guesses", answer, MaxGuesses)
}
