// apps/go-solver/internal/words/words.go
//
// Word catalog loading for the solver.
//
// Two separate catalogs exist:
//   - "solutions": words that may actually be the answer.
//   - "guessable": extra words that are valid guesses but never answers.
//
// Guesses are drawn from the union; answers only from solutions. Catalogs are
// loaded once per run and treated as immutable afterwards.
//
// Files are one word per line, exactly 5 lowercase ASCII letters. A malformed
// line is a load-time error, not something the solver has to cope with later.
//
// When a path is empty the embedded small defaults are used, so the tools run
// without any configuration.

package words

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed default_small_solutions.txt
var embeddedSolutions string

//go:embed default_small_guessable.txt
var embeddedGuessable string

// WordLen is the only word length the solver supports.
const WordLen = 5

// Lists holds the two catalogs for one run.
type Lists struct {
	Solutions []string
	Guessable []string

	solutionSet map[string]struct{}
	guessSet    map[string]struct{}
}

// New builds Lists from in-memory catalogs, validating every word. Used by
// tests and by callers that assemble catalogs themselves.
func New(solutions, guessable []string) (*Lists, error) {
	for _, w := range solutions {
		if err := validate(w); err != nil {
			return nil, fmt.Errorf("solutions: %w", err)
		}
	}
	for _, w := range guessable {
		if err := validate(w); err != nil {
			return nil, fmt.Errorf("guessable: %w", err)
		}
	}
	if len(solutions) == 0 {
		return nil, fmt.Errorf("words: solutions list is empty")
	}
	return &Lists{
		Solutions:   solutions,
		Guessable:   guessable,
		solutionSet: toSet(solutions),
		guessSet:    toSet(guessable),
	}, nil
}

// Load reads both catalogs. Empty paths fall back to the embedded defaults.
func Load(guessablePath, solutionsPath string) (*Lists, error) {
	var (
		solutions, guessable []string
		err                  error
	)

	if solutionsPath != "" {
		solutions, err = readWordFile(solutionsPath)
	} else {
		solutions, err = parseLines(embeddedSolutions, "embedded solutions")
	}
	if err != nil {
		return nil, err
	}

	if guessablePath != "" {
		guessable, err = readWordFile(guessablePath)
	} else {
		guessable, err = parseLines(embeddedGuessable, "embedded guessable")
	}
	if err != nil {
		return nil, err
	}

	return New(solutions, guessable)
}

// readWordFile loads one word per line; any invalid line fails the load.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		w := strings.TrimRight(sc.Text(), "\r")
		if err := validate(w); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// parseLines handles the embedded defaults, which follow the same format.
func parseLines(s, name string) ([]string, error) {
	var out []string
	for i, line := range strings.Split(strings.TrimSpace(s), "\n") {
		w := strings.TrimSpace(line)
		if w == "" {
			continue
		}
		if err := validate(w); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, i+1, err)
		}
		out = append(out, w)
	}
	return out, nil
}

func validate(w string) error {
	if len(w) != WordLen || !isLower(w) {
		return fmt.Errorf("invalid word %q (must be %d lowercase letters)", w, WordLen)
	}
	return nil
}

func isLower(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// IsSolution reports whether w may be an answer.
func (l *Lists) IsSolution(w string) bool {
	_, ok := l.solutionSet[w]
	return ok
}

// IsGuessable reports whether w is a valid guess (solutions ∪ guessable).
func (l *Lists) IsGuessable(w string) bool {
	if _, ok := l.solutionSet[w]; ok {
		return true
	}
	_, ok := l.guessSet[w]
	return ok
}

// Stats returns catalog sizes: (solutions, guessable-only).
func (l *Lists) Stats() (solutionCount, guessableCount int) {
	return len(l.Solutions), len(l.Guessable)
}
