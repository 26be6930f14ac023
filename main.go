// apps/go-solver/main.go
//
// Entry point for the solver tools. One binary, several modes:
//
//	go-solver                          interactive single-board assistant
//	go-solver -boards 4                interactive multi-board assistant
//	go-solver -challenge -target tares adversarial-judge challenge search
//	go-solver -solve-all               benchmark both strategies on every answer
//	go-solver -serve                   HTTP API (PORT env, default 5176)
//
// Word catalogs come from -guessable/-solutions paths; empty paths use the
// embedded defaults.

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/eval"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/score"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/stats"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		guessablePath = flag.String("guessable", "", "path to guessable-words file (default: embedded list)")
		solutionsPath = flag.String("solutions", "", "path to solution-words file (default: embedded list)")
		strategyName  = flag.String("strategy", "groupsize", "guess strategy: groupsize or groupcount")
		hardMode      = flag.Bool("hard", false, "hard mode: guesses must be consistent with prior feedback")
		boards        = flag.Int("boards", 1, "number of simultaneous boards")
		challenge     = flag.Bool("challenge", false, "solve against the adversarial judge")
		target        = flag.String("target", "", "target word for -challenge")
		solveAll      = flag.Bool("solve-all", false, "benchmark both strategies over every answer")
		workers       = flag.Int("workers", runtime.NumCPU(), "worker goroutines for -solve-all")
		dbPath        = flag.String("db", "", "SQLite file to persist -solve-all results (optional)")
		serve         = flag.Bool("serve", false, "run the HTTP API")
	)
	flag.Parse()

	lists, err := words.Load(*guessablePath, *solutionsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	solutionCount, guessableCount := lists.Stats()
	log.Info().Int("solutions", solutionCount).Int("guessable", guessableCount).Msg("catalogs loaded")

	strategy, err := eval.ParseStrategy(*strategyName)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -strategy")
	}

	switch {
	case *serve:
		runServe(lists, *dbPath)
	case *solveAll:
		runSolveAll(lists, *workers, *hardMode, *dbPath)
	case *challenge:
		runChallenge(lists, *target, *hardMode)
	case *boards > 1:
		runMulti(lists, *boards, strategy)
	default:
		runSingle(lists, *hardMode, strategy)
	}
}

// runSingle drives one interactive game: print the recommendation, read the
// real feedback, repeat until the win score arrives.
func runSingle(lists *words.Lists, hardMode bool, strategy eval.Strategy) {
	s := solver.New(lists, hardMode, strategy)
	in := bufio.NewReader(os.Stdin)

	for round := 1; ; round++ {
		guess := s.NextGuess()
		fmt.Printf("round %d: guess %q (%d possibilities)\n", round, guess, len(s.Possibilities()))
		sc := readScore(in, fmt.Sprintf("score for %q", guess))
		if sc.IsWin() {
			fmt.Printf("solved in %d guesses\n", round)
			return
		}
		if err := s.RespondToScore(guess, sc); err != nil {
			if errors.Is(err, solver.ErrNoPossibilities) {
				log.Fatal().Err(err).Msg("feedback is inconsistent with the catalog")
			}
			log.Fatal().Err(err).Msg("solver failed")
		}
	}
}

// runMulti drives the shared-guess protocol: one guess per round, then one
// score per unfinished board.
func runMulti(lists *words.Lists, boards int, strategy eval.Strategy) {
	m := solver.NewMulti(boards, lists, strategy)
	in := bufio.NewReader(os.Stdin)

	for round := 1; !m.AllDone(); round++ {
		guess := m.NextGuess()
		fmt.Printf("round %d: guess %q\n", round, guess)
		for {
			i := m.IndexNeedingResponse()
			if i < 0 {
				break
			}
			sc := readScore(in, fmt.Sprintf("board %d score for %q", i+1, guess))
			if err := m.RespondToScore(i, guess, sc); err != nil {
				log.Fatal().Err(err).Msg("multi-board solve failed")
			}
			if sc.IsWin() {
				fmt.Printf("board %d solved\n", i+1)
			}
		}
		m.NextRound()
	}
	fmt.Println("all boards solved")
}

// runChallenge searches for a sequence that beats the adversarial judge.
func runChallenge(lists *words.Lists, target string, hardMode bool) {
	if target == "" {
		log.Fatal().Msg("-challenge requires -target")
	}
	c, err := solver.NewChallenge(target, lists, hardMode)
	if err != nil {
		log.Fatal().Err(err).Msg("bad challenge target")
	}

	begin := time.Now()
	path, err := c.Solve()
	if err != nil {
		if errors.Is(err, solver.ErrSearchExhausted) {
			fmt.Printf("no winning sequence exists for %q\n", target)
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("challenge solve failed")
	}
	fmt.Printf("beat the judge for %q in %d guesses (%s):\n", target, len(path), time.Since(begin).Round(time.Millisecond))
	for i, g := range path {
		fmt.Printf("  %2d. %s\n", i+1, g)
	}
}

// runSolveAll benchmarks both strategies over the whole answer catalog and
// prints the guess-count histograms.
func runSolveAll(lists *words.Lists, workers int, hardMode bool, dbPath string) {
	begin := time.Now()
	summary, err := stats.Run(lists, workers, hardMode)
	if err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}

	fmt.Printf("solved %d answers in %s (workers=%d hard=%v)\n",
		len(summary.Answers), time.Since(begin).Round(time.Millisecond), workers, hardMode)
	fmt.Println("guesses  groupsize  groupcount")
	for i := 1; i < stats.MaxGuesses; i++ {
		if summary.GroupSize[i] == 0 && summary.GroupCount[i] == 0 {
			continue
		}
		fmt.Printf("%7d  %9d  %10d\n", i, summary.GroupSize[i], summary.GroupCount[i])
	}
	fmt.Printf("head-to-head: groupcount fewer %d, groupsize fewer %d, ties %d\n",
		summary.Record[0], summary.Record[1], summary.Record[2])

	if dbPath == "" {
		return
	}
	rs, err := results.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", dbPath).Msg("failed to open results db")
	}
	defer rs.Close()
	id, err := rs.InsertRun(context.Background(), begin, hardMode, workers, summary)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to persist run")
	}
	log.Info().Int64("run", id).Str("db", dbPath).Msg("run persisted")
}

// runServe wires the session store, optional results DB, and HTTP router.
func runServe(lists *words.Lists, dbPath string) {
	var rs *results.Store
	if dbPath != "" {
		var err error
		if rs, err = results.Open(dbPath); err != nil {
			log.Fatal().Err(err).Str("db", dbPath).Msg("failed to open results db")
		}
		defer rs.Close()
	}

	srv := httpserver.New(store.NewMemoryStore(), lists, rs)
	port := getEnv("PORT", "5176")
	log.Info().Str("port", port).Msg("starting go-solver")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// readScore prompts until it gets five of a/p/c. Typos re-prompt instead of
// aborting a half-finished game.
func readScore(in *bufio.Reader, prompt string) score.Score {
	for {
		fmt.Printf("%s (a=absent p=present c=correct): ", prompt)
		line, err := in.ReadString('\n')
		if err != nil {
			log.Fatal().Err(err).Msg("stdin closed")
		}
		sc, err := score.Parse(strings.TrimSpace(line))
		if err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}
		return sc
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
