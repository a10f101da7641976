package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"plantshop/internal/config"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{StoreDriver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "nested", "shop.db")}

	store, closeFn, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, store.Put(ctx, "cart:a", []byte(`[]`)))
	got, err := store.Get(ctx, "cart:a")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestOpen_Redis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	store, closeFn, err := Open(ctx, config.Config{StoreDriver: DriverRedis, RedisAddr: mr.Addr()}, nil)
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, store.Put(ctx, "theme:a", []byte("dark")))
	assert.True(t, mr.Exists("plantshop:slot:theme:a"))
	assert.NoError(t, store.Ping(ctx))
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := Open(context.Background(), config.Config{StoreDriver: DriverRedis, RedisAddr: addr}, nil)
	assert.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.Config{StoreDriver: "mongo"}, nil)
	assert.ErrorContains(t, err, "mongo")
}
