package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/metadesigner/pkg/workspace"
)

func newTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	root := t.TempDir()
	return &workspace.Workspace{
		RootPath:  root,
		CachePath: filepath.Join(root, "cache"),
	}
}

func TestFileDatasetStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	ws := newTestWorkspace(t)
	store := NewFileDatasetStore(ws)
	hash := "0123456789abcdef"

	assert.False(t, store.Exists(ctx, hash))
	require.NoError(t, store.Create(ctx, hash))
	assert.True(t, store.Exists(ctx, hash))

	require.NoError(t, store.Put(ctx, hash, "image_002.jpg", strings.NewReader("second")))
	require.NoError(t, store.Put(ctx, hash, "image_001.png", strings.NewReader("first")))

	files, err := store.List(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, []string{"image_001.png", "image_002.jpg"}, files)

	data, err := os.ReadFile(ws.ImagePath(hash, "image_001.png"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	hashes, err := store.ListHashes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{hash}, hashes)

	require.NoError(t, store.Remove(ctx, hash))
	assert.False(t, store.Exists(ctx, hash))
	assert.DirExists(t, ws.CachePath)
}

func TestFileDatasetStore_CreateExistingFails(t *testing.T) {
	ctx := context.Background()
	store := NewFileDatasetStore(newTestWorkspace(t))

	require.NoError(t, store.Create(ctx, "0123456789abcdef"))
	assert.Error(t, store.Create(ctx, "0123456789abcdef"))
}

func TestFileDatasetStore_PutRejectsPaths(t *testing.T) {
	ctx := context.Background()
	store := NewFileDatasetStore(newTestWorkspace(t))
	require.NoError(t, store.Create(ctx, "0123456789abcdef"))

	err := store.Put(ctx, "0123456789abcdef", "../escape.png", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestFileDatasetStore_PutDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewFileDatasetStore(newTestWorkspace(t))
	require.NoError(t, store.Create(ctx, "0123456789abcdef"))

	require.NoError(t, store.Put(ctx, "0123456789abcdef", "image_001.png", strings.NewReader("a")))
	assert.Error(t, store.Put(ctx, "0123456789abcdef", "image_001.png", strings.NewReader("b")))
}

func TestFileDatasetStore_ListHashesMissingCache(t *testing.T) {
	store := NewFileDatasetStore(newTestWorkspace(t))

	hashes, err := store.ListHashes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, hashes)
}

func TestFileDatasetStore_RemoveRefusesRoot(t *testing.T) {
	ws := newTestWorkspace(t)
	require.NoError(t, ws.Initialize())

	assert.Error(t, NewFileDatasetStore(ws).Remove(context.Background(), ""))
	assert.DirExists(t, ws.CachePath)
}
