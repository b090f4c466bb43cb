package filestore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AhmedMostafa129/Mahd/core/session"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	storage := New(path)

	_, err := storage.Get(ctx, "token")
	assert.Equal(t, session.ErrNotFound, err)
	require.NoError(t, storage.Delete(ctx, "token"))

	require.NoError(t, storage.Set(ctx, "token", "abc"))
	require.NoError(t, storage.Set(ctx, "user", `{"userId":"u1"}`))

	// survives a new process
	reopened := New(path)
	got, err := reopened.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, reopened.Delete(ctx, "token", "user"))
	_, err = storage.Get(ctx, "user")
	assert.Equal(t, session.ErrNotFound, err)
}

func TestStorage_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	store := session.NewStore(New(path), nil)
	assert.Error(t, store.Load(context.Background()))
	assert.False(t, store.IsAuthenticated())
}

func TestStorage_Concurrent(t *testing.T) {
	ctx := context.Background()
	storage := New(filepath.Join(t.TempDir(), "session.json"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ns := session.Namespace(storage, string(rune('a'+i)))
			assert.NoError(t, ns.Set(ctx, "token", "t"))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		got, err := storage.Get(ctx, string(rune('a'+i))+":token")
		require.NoError(t, err)
		assert.Equal(t, "t", got)
	}
}
