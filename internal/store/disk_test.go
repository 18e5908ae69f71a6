package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/ai-diary/backend/internal/apperr"
)

func TestDiskStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "uploads")

	s, err := NewDiskStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)

	require.NoError(t, s.Upload(ctx, "upload_1.png", []byte("png-bytes"), "image/png"))
	data, ct, err := s.Download(ctx, "upload_1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", ct)

	_, _, err = s.Download(ctx, "missing.png")
	assert.True(t, apperr.Is(err, apperr.ENotFound))

	onDisk, err := os.ReadFile(filepath.Join(dir, "upload_1.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), onDisk)
}

func TestDiskStore_RejectsPaths(t *testing.T) {
	ctx := context.Background()
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".", "..", "../escape.png", "a/b.png", `a\b.png`} {
		err := s.Upload(ctx, key, []byte("x"), "")
		assert.True(t, apperr.Is(err, apperr.EInvalid), "key %q", key)
	}
}

func TestValidKey(t *testing.T) {
	assert.True(t, ValidKey("upload_1705314600000.png"))
	assert.True(t, ValidKey("analyzed_1705314600000_2.png"))
	assert.False(t, ValidKey("../x"))
}

func TestDiskStore_NeverOverwrites(t *testing.T) {
	ctx := context.Background()
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Upload(ctx, "upload_1.png", []byte("first"), "image/png"))
	err = s.Upload(ctx, "upload_1.png", []byte("second"), "image/png")
	assert.ErrorIs(t, err, ErrFileExists)
	assert.True(t, apperr.Is(err, apperr.EConflict))

	data, _, err := s.Download(ctx, "upload_1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)
}
