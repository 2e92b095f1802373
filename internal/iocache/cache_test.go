package iocache_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/soweego-go/soweego/internal/iocache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string
	Score float64
}

func openTestStore(t *testing.T) *iocache.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := iocache.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	key := iocache.Key{Kind: "featurevector", Catalog: "discogs", Entity: "musician", Goal: "train", Chunk: 0}

	changed, err := iocache.Put(ctx, store, key, sample{Name: "bowie", Score: 0.9})
	require.NoError(t, err)
	assert.True(t, changed)

	got, ok, err := iocache.Get[sample](ctx, store, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bowie", got.Name)
	assert.Equal(t, 0.9, got.Score)
}

func TestGetMissingReturnsFalse(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	key := iocache.Key{Kind: "featurevector", Catalog: "discogs", Entity: "musician", Goal: "train", Chunk: 7}

	_, ok, err := iocache.Get[sample](ctx, store, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutOverwritesExisting(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	key := iocache.Key{Kind: "model", Catalog: "imdb", Entity: "actor", Goal: "train", Chunk: 0}

	changed, err := iocache.Put(ctx, store, key, sample{Name: "v1"})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = iocache.Put(ctx, store, key, sample{Name: "v2"})
	require.NoError(t, err)
	assert.True(t, changed, "different payload must report changed=true")

	changed, err = iocache.Put(ctx, store, key, sample{Name: "v2"})
	require.NoError(t, err)
	assert.False(t, changed, "identical payload must report changed=false")

	got, ok, err := iocache.Get[sample](ctx, store, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", got.Name)
}

func TestDeleteRemovesAllChunks(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for chunk := 0; chunk < 3; chunk++ {
		key := iocache.Key{Kind: "pairindex", Catalog: "discogs", Entity: "musician", Goal: "link", Chunk: chunk}
		_, err := iocache.Put(ctx, store, key, sample{Name: "x"})
		require.NoError(t, err)
	}

	has, err := store.Has(ctx, "pairindex", "discogs", "musician", "link")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, store.Delete(ctx, "pairindex", "discogs", "musician", "link"))

	has, err = store.Has(ctx, "pairindex", "discogs", "musician", "link")
	require.NoError(t, err)
	assert.False(t, has)
}
