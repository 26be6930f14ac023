package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func TestRunCoversEveryAnswer(t *testing.T) {
	t.Parallel()
	solutions := []string{"crane", "slate", "stare", "maker", "grape", "bread", "mango"}
	lists, err := words.New(solutions, []string{"adieu"})
	require.NoError(t, err)

	summary, err := Run(lists, 3, false)
	require.NoError(t, err)

	// Every answer is counted exactly once per strategy.
	sizeTotal, countTotal := 0, 0
	for i := 0; i < MaxGuesses; i++ {
		sizeTotal += summary.GroupSize[i]
		countTotal += summary.GroupCount[i]
	}
	assert.Equal(t, len(solutions), sizeTotal)
	assert.Equal(t, len(solutions), countTotal)
	assert.Equal(t, len(solutions), summary.Record[0]+summary.Record[1]+summary.Record[2])
	assert.Len(t, summary.Answers, len(solutions))

	seen := map[string]bool{}
	for _, r := range summary.Answers {
		assert.Contains(t, solutions, r.Answer)
		assert.False(t, seen[r.Answer], "answer %q counted twice", r.Answer)
		seen[r.Answer] = true
		assert.Greater(t, r.GroupSize, 0)
		assert.Greater(t, r.GroupCount, 0)
	}
}

func TestRunSingleWorkerMatchesMany(t *testing.T) {
	t.Parallel()
	solutions := []string{"crane", "slate", "stare", "maker"}
	lists, err := words.New(solutions, nil)
	require.NoError(t, err)

	one, err := Run(lists, 1, false)
	require.NoError(t, err)
	many, err := Run(lists, 4, false)
	require.NoError(t, err)

	// The shard split must not change the aggregate counts.
	assert.Equal(t, one.GroupSize, many.GroupSize)
	assert.Equal(t, one.GroupCount, many.GroupCount)
	assert.Equal(t, one.Record, many.Record)
}

func TestRunMoreWorkersThanAnswers(t *testing.T) {
	t.Parallel()
	lists, err := words.New([]string{"crane", "slate"}, nil)
	require.NoError(t, err)

	summary, err := Run(lists, 16, false)
	require.NoError(t, err)
	assert.Len(t, summary.Answers, 2)
}
