package cart

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	store, err := NewBadgerStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBadgerStore_PutGetDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "session-1", []byte(`[{"quantity":1}]`)))

	data, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"quantity":1}]`), data)

	require.NoError(t, store.Delete(ctx, "session-1"))

	_, err = store.Get(ctx, "session-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadgerStore_GetAbsentKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "never-written")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadgerStore_DeleteAbsentKeyIsNotAnError(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Delete(context.Background(), "never-written"))
}

func TestBadgerStore_OverwriteReplacesValue(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "session-1", []byte("first")))
	require.NoError(t, store.Put(ctx, "session-1", []byte("second")))

	data, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}
