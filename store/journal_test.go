package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/store"
	"github.com/njchilds90/mathsolve/symbolic"
)

func newJournal(t *testing.T) *store.Journal {
	t.Helper()
	j, err := store.NewInMemory(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_RecordAndGet(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t)
	proc := mathsolve.NewProcessor(symbolic.NewEngine())

	tr := proc.Process(ctx, "x^2 - 4 = 0")
	require.NoError(t, j.Record(ctx, tr))

	e, err := j.Get(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, tr.ID, e.ID)
	assert.Equal(t, "x^2 - 4 = 0", e.Input)
	assert.Equal(t, "x**2 - 4 = 0", e.Normalized)
	assert.Equal(t, mathsolve.CategoryEquation, e.Category)
	assert.Equal(t, "[-2, 2]", e.Result)
	assert.Equal(t, "-2, 2", e.Markup)
	assert.True(t, e.Success)
	assert.Empty(t, e.Error)
	assert.True(t, tr.Started.Equal(e.CreatedAt))

	_, err = j.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestJournal_RecordsFailures(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t)
	tr := mathsolve.NewProcessor(symbolic.NewEngine()).Process(ctx, "(x + 1")
	require.NoError(t, j.Record(ctx, tr))

	e, err := j.Get(ctx, tr.ID)
	require.NoError(t, err)
	assert.False(t, e.Success)
	assert.Contains(t, e.Error, "parse error")
	assert.NotEmpty(t, e.Diagnostics)
	assert.Empty(t, e.Result)
}

func TestJournal_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	j := newJournal(t)
	proc := mathsolve.NewProcessor(symbolic.NewEngine())
	for _, in := range []string{"sqrt(16)", "2*x + 3 = 7", "factorial(5)"} {
		require.NoError(t, j.Record(ctx, proc.Process(ctx, in)))
	}

	n, err := j.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	recent, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "factorial(5)", recent[0].Input)
	assert.Equal(t, "2*x + 3 = 7", recent[1].Input)

	none, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJournal_OpenFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "journal.db")
	tr := mathsolve.NewProcessor(symbolic.NewEngine()).Process(ctx, "pi + E")

	j, err := store.Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, tr))
	require.NoError(t, j.Close())

	j, err = store.Open(path, nil)
	require.NoError(t, err)
	defer j.Close()
	e, err := j.Get(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "5.85987448204884", e.Result)
}
