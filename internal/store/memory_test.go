package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/term/internal/game"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	r := game.NewRound("crane", []string{"crane"})

	_, err := st.Get(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Save(ctx, r))
	got, err := st.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Same(t, r, got)

	require.NoError(t, st.Delete(ctx, r.ID))
	_, err = st.Get(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
