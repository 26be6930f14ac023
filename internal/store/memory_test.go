package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/eval"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	lists, err := words.New([]string{"crane", "slate"}, nil)
	require.NoError(t, err)
	return NewSession(solver.New(lists, false, eval.GroupSize))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()
	m := NewMemoryStore()
	ctx := context.Background()
	sess := newTestSession(t)

	require.NoError(t, m.Save(ctx, sess))

	got, err := m.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	require.NoError(t, m.Delete(ctx, sess.ID))
	_, err = m.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreMissing(t *testing.T) {
	t.Parallel()
	m := NewMemoryStore()
	ctx := context.Background()

	_, err := m.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, "nope"), ErrNotFound)
}

func TestSessionIDsUnique(t *testing.T) {
	t.Parallel()
	a := newTestSession(t)
	b := newTestSession(t)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 32)
}
