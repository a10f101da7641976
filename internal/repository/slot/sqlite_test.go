package slot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"plantshop/internal/domain"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "slots.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLite_GetMissing(t *testing.T) {
	store := openTestSQLite(t)

	_, err := store.Get(context.Background(), "cart:nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLite_PutOverwrites(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "cart:s1", []byte(`[{"quantity":1}]`)))
	require.NoError(t, store.Put(ctx, "cart:s1", []byte(`[]`)))

	got, err := store.Get(ctx, "cart:s1")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestSQLite_KeysAreIndependent(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "cart:a", []byte("a")))
	require.NoError(t, store.Put(ctx, "theme:a", []byte("dark")))

	got, err := store.Get(ctx, "theme:a")
	require.NoError(t, err)
	assert.Equal(t, "dark", string(got))
	assert.NoError(t, store.Ping(ctx))
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.db")
	ctx := context.Background()

	first, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "cart:s1", []byte("payload")))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "cart:s1")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}
