package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	t.Parallel()
	st, err := ParseStrategy("groupsize")
	require.NoError(t, err)
	assert.Equal(t, GroupSize, st)

	st, err = ParseStrategy("groupcount")
	require.NoError(t, err)
	assert.Equal(t, GroupCount, st)

	_, err = ParseStrategy("entropy")
	assert.Error(t, err)
}

func TestGuessPartitions(t *testing.T) {
	t.Parallel()
	possibilities := []string{"abcde", "edcba"}

	// "abcde" splits the pair into two buckets of one (ccccc vs the rest).
	split := Guess("abcde", possibilities)
	assert.Equal(t, Eval{Count: 2, Size: -1}, split)

	// A guess sharing no letters lumps both into one bucket of two.
	lump := Guess("fghij", possibilities)
	assert.Equal(t, Eval{Count: 1, Size: -2}, lump)

	// The splitting guess wins under both strategies.
	assert.Positive(t, GroupSize.Compare(split, lump))
	assert.Positive(t, GroupCount.Compare(split, lump))
}

func TestCompareIsLexicographic(t *testing.T) {
	t.Parallel()
	a := Eval{Count: 3, Size: -2}
	b := Eval{Count: 2, Size: -1}

	// GroupSize: b's smaller worst case wins despite fewer buckets.
	assert.Negative(t, GroupSize.Compare(a, b))
	// GroupCount: a's extra bucket wins despite the bigger worst case.
	assert.Positive(t, GroupCount.Compare(a, b))

	assert.Zero(t, GroupSize.Compare(a, a))
	assert.Negative(t, GroupSize.Compare(Worst(), a))
	assert.Negative(t, GroupCount.Compare(Worst(), a))
}

func TestGuessBoundedMatchesGuess(t *testing.T) {
	t.Parallel()
	possibilities := []string{"crane", "slate", "stare", "maker", "grape", "bread"}
	guesses := []string{"crane", "slate", "adieu", "zzzzz", "maker"}

	for _, st := range []Strategy{GroupSize, GroupCount} {
		best := Worst()
		for _, g := range guesses {
			want := Guess(g, possibilities)
			got, ok := GuessBounded(g, possibilities, st, best)
			if ok {
				// Pruning must never change a surviving result.
				assert.Equal(t, want, got, "strategy %s guess %s", st, g)
				if st.Compare(got, best) > 0 {
					best = got
				}
			} else {
				// Only strictly worse candidates may be abandoned.
				assert.Negative(t, st.Compare(want, best), "strategy %s guess %s", st, g)
			}
		}
	}
}

func TestReduce(t *testing.T) {
	t.Parallel()
	a := Eval{Count: 3, Size: -4}
	b := Eval{Count: 2, Size: -1}
	got := Reduce(a, b)
	// Counts add, worst cases take the max of the negated sizes.
	assert.Equal(t, Eval{Count: 5, Size: -1}, got)
	assert.Equal(t, got, Reduce(b, a))
}
