package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/straye-as/facility-api/internal/config"
	"github.com/straye-as/facility-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStorageInterfaceCompliance(t *testing.T) {
	var _ storage.Storage = (*storage.LocalStorage)(nil)
	var _ storage.Storage = (*storage.AzureBlobStorage)(nil)
	var _ storage.Storage = (*storage.GCSStorage)(nil)
}

func TestNewLocalStorage_CreatesDirectory(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), "uploads")

	ls, err := storage.NewLocalStorage(basePath, "/storage")
	require.NoError(t, err)
	assert.NotNil(t, ls)

	info, err := os.Stat(basePath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalStorage_StoreOpenDelete(t *testing.T) {
	ctx := context.Background()
	ls, err := storage.NewLocalStorage(t.TempDir(), "/storage/")
	require.NoError(t, err)

	content := []byte("%PDF-1.4 test")
	key, size, err := ls.Store(ctx, "projects/abc/file.pdf", "application/pdf", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "projects/abc/file.pdf", key)
	assert.Equal(t, int64(len(content)), size)

	reader, err := ls.Open(ctx, key)
	require.NoError(t, err)
	got, err := io.ReadAll(reader)
	require.NoError(t, reader.Close())
	require.NoError(t, err)
	assert.Equal(t, content, got)

	assert.Equal(t, "/storage/projects/abc/file.pdf", ls.URL(key))

	require.NoError(t, ls.Delete(ctx, key))
	_, err = ls.Open(ctx, key)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestLocalStorage_DeleteMissingIsNotAnError(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir(), "/storage")
	require.NoError(t, err)

	assert.NoError(t, ls.Delete(context.Background(), "projects/nope/missing.txt"))
}

func TestLocalStorage_KeysStayInsideBasePath(t *testing.T) {
	root := t.TempDir()
	basePath := filepath.Join(root, "blobs")
	ls, err := storage.NewLocalStorage(basePath, "/storage")
	require.NoError(t, err)

	key, _, err := ls.Store(context.Background(), "../../escape.txt", "text/plain", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", key)

	_, err = os.Stat(filepath.Join(basePath, "escape.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RejectsEmptyKey(t *testing.T) {
	ls, err := storage.NewLocalStorage(t.TempDir(), "/storage")
	require.NoError(t, err)

	_, _, err = ls.Store(context.Background(), "/", "text/plain", bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestNewStorage_Modes(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	s, err := storage.NewStorage(ctx, &config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, s)

	_, err = storage.NewStorage(ctx, &config.StorageConfig{Mode: "azure"}, logger)
	assert.Error(t, err, "azure needs a connection string")

	_, err = storage.NewStorage(ctx, &config.StorageConfig{Mode: "gcs"}, logger)
	assert.Error(t, err, "gcs needs a bucket")

	_, err = storage.NewStorage(ctx, &config.StorageConfig{Mode: "ftp"}, logger)
	assert.Error(t, err)
}
