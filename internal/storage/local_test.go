package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()

	store, err := NewLocalStore(filepath.Join(t.TempDir(), "uploads"), "winner", "/uploads")
	require.NoError(t, err)

	name, err := store.Save(ctx, "photo.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(name, "winner_"))

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	require.Equal(t, "image-bytes", string(data))

	require.Equal(t, "/uploads/"+name, store.URL(name))

	require.NoError(t, store.Delete(ctx, name))
	_, err = os.Stat(filepath.Join(store.Dir(), name))
	require.True(t, os.IsNotExist(err))

	// Deleting a file that is already gone reports the error to the caller.
	require.Error(t, store.Delete(ctx, name))
}

func TestLocalStoreSaveStripsTraversal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewLocalStore(filepath.Join(dir, "uploads"), "", "/id_uploads")
	require.NoError(t, err)

	name, err := store.Save(ctx, "../../escape.png", strings.NewReader("x"))
	require.NoError(t, err)
	require.NotContains(t, name, "/")
	require.True(t, strings.HasSuffix(name, "_escape.png"))

	_, err = os.Stat(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
}
