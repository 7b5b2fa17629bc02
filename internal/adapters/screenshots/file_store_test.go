package screenshots

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitenotes/sitenotes/internal/domain"
)

func TestFileStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "agwp-sn-screenshots")
	store := NewFileStore(dir, "/screenshots/")
	png := []byte("\x89PNG\r\n\x1a\nfake")

	url, err := store.Save(context.Background(), "data:image/png;base64,"+base64.StdEncoding.EncodeToString(png))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/screenshots/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/screenshots/")))
	require.NoError(t, err)
	assert.Equal(t, png, data)
}

func TestFileStore_SaveRejects(t *testing.T) {
	store := NewFileStore(t.TempDir(), "/screenshots")

	tests := []struct {
		name    string
		dataURL string
	}{
		{"not a data url", "https://x.test/shot.png"},
		{"no payload separator", "data:image/png;base64"},
		{"not base64", "data:image/png,rawbytes"},
		{"unsupported type", "data:image/gif;base64,R0lGOD=="},
		{"corrupt payload", "data:image/png;base64,!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Save(context.Background(), tt.dataURL)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestFileStore_RemoveAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	store := NewFileStore(dir, "/screenshots")
	_, err := store.Save(context.Background(), "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString([]byte("jpg")))
	require.NoError(t, err)

	require.NoError(t, store.RemoveAll(context.Background()))

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	// Removing a missing directory is not an error
	assert.NoError(t, store.RemoveAll(context.Background()))
}

func TestFileStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, "/screenshots")
	url, err := store.Save(context.Background(), "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("png")))
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), url))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Already gone
	assert.NoError(t, store.Remove(context.Background(), url))

	for _, bad := range []string{"/elsewhere/a.png", "/screenshots/", "/screenshots/../sitenotes.db"} {
		assert.ErrorIs(t, store.Remove(context.Background(), bad), domain.ErrValidation, bad)
	}
}
