package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/term/internal/game"
)

var dict = []string{"crane", "crate", "dough", "slate"}

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestRecordAndRecent(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	won := game.NewRound("crane", dict)
	for _, g := range []string{"slate", "crate", "crane"} {
		_, err := won.Guess(g)
		require.NoError(t, err)
	}
	require.NoError(t, s.Record(ctx, won, "random"))

	lost := game.NewRound("crane", dict)
	for range game.MaxAttempts {
		_, err := lost.Guess("dough")
		require.NoError(t, err)
	}
	require.NoError(t, s.Record(ctx, lost, "daily"))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, lost.ID, entries[0].ID)
	assert.False(t, entries[0].Won)
	assert.Equal(t, "daily", entries[0].Mode)
	assert.Equal(t, game.MaxAttempts, entries[0].Attempts)

	assert.Equal(t, won.ID, entries[1].ID)
	assert.True(t, entries[1].Won)
	assert.Equal(t, 3, entries[1].Attempts)
	assert.Equal(t, []string{"slate", "crate", "crane"}, entries[1].Guesses)
	assert.False(t, entries[1].FinishedAt.IsZero())
}

func TestRecord_RejectsUnfinished(t *testing.T) {
	s, _ := openTemp(t)
	r := game.NewRound("crane", dict)
	assert.Error(t, s.Record(context.Background(), r, "random"))
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	s, path := openTemp(t)
	require.NoError(t, s.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()

	var n int
	require.NoError(t, again.db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}
