package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/utils"
)

func newTestStore(t *testing.T) (*LocalStore, string) {
	t.Helper()
	root := t.TempDir()
	logger := zap.NewNop()
	tracker := NewTracker(filepath.Join(t.TempDir(), "tracker.xlsx"), logger)
	s := NewLocalStore(root, "/Cases", tracker, utils.NewTextProcessor(logger), logger)
	return s, root
}

func TestListFolders(t *testing.T) {
	s, root := newTestStore(t)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "272", "90250273 - De Leon Reyes, Samuel v Citizens"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "272", "90250274 - Smith v Universal"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "301", "unconventional"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644))

	folders, err := s.ListFolders(context.Background())
	require.NoError(t, err)
	require.Len(t, folders, 3)

	byPath := map[string]bool{}
	for _, f := range folders {
		byPath[f.Path] = true
	}
	assert.True(t, byPath["/Cases/272/90250273 - De Leon Reyes, Samuel v Citizens"])

	for _, f := range folders {
		switch f.Path {
		case "/Cases/272/90250273 - De Leon Reyes, Samuel v Citizens":
			assert.Equal(t, "272", f.Client)
			assert.Equal(t, "90250273", f.Matter)
			assert.Equal(t, "De Leon Reyes, Samuel v Citizens", f.Style)
			assert.False(t, f.ModifiedAt.IsZero())
		case "/Cases/301/unconventional":
			assert.Equal(t, "unconventional", f.Matter)
			assert.Empty(t, f.Style)
		}
	}
}

func TestWriteFile_CreatesDirsAndReturnsLogicalPath(t *testing.T) {
	s, root := newTestStore(t)

	path, err := s.WriteFile(context.Background(),
		"/Cases/272/90250273 - De Leon v Citizens/09 Orders",
		"2025.05.05 - Uniform Trial Order.pdf",
		[]byte("%PDF content"))
	require.NoError(t, err)
	assert.Equal(t, "/Cases/272/90250273 - De Leon v Citizens/09 Orders/2025.05.05 - Uniform Trial Order.pdf", path)

	onDisk := filepath.Join(root, "272", "90250273 - De Leon v Citizens", "09 Orders",
		"2025.05.05 - Uniform Trial Order.pdf")
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF content"), content)
}

func TestWriteFile_IdenticalContentSkipped(t *testing.T) {
	s, root := newTestStore(t)
	folder := "/Cases/272/1 - A v B/09 Orders"

	_, err := s.WriteFile(context.Background(), folder, "order.pdf", []byte("%PDF same"))
	require.NoError(t, err)

	onDisk := filepath.Join(root, "272", "1 - A v B", "09 Orders", "order.pdf")
	before, err := os.Stat(onDisk)
	require.NoError(t, err)

	path, err := s.WriteFile(context.Background(), folder, "order.pdf", []byte("%PDF same"))
	require.NoError(t, err)
	assert.Contains(t, path, "order.pdf")

	after, err := os.Stat(onDisk)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "identical file is not rewritten")
}

func TestWriteFile_DifferingContentOverwritten(t *testing.T) {
	s, root := newTestStore(t)
	folder := "/Cases/272/1 - A v B/09 Orders"

	_, err := s.WriteFile(context.Background(), folder, "order.pdf", []byte("%PDF v1"))
	require.NoError(t, err)
	_, err = s.WriteFile(context.Background(), folder, "order.pdf", []byte("%PDF v2 amended"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, "272", "1 - A v B", "09 Orders", "order.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF v2 amended"), content)
}

func TestWriteFile_SanitizesFilename(t *testing.T) {
	s, root := newTestStore(t)

	path, err := s.WriteFile(context.Background(), "/Cases/272/1 - A v B/09 Orders",
		`2025.05.05 - Order: Setting "Trial".pdf`, []byte("%PDF"))
	require.NoError(t, err)
	assert.NotContains(t, filepath.Base(path), ":")
	assert.NotContains(t, filepath.Base(path), `"`)

	entries, err := os.ReadDir(filepath.Join(root, "272", "1 - A v B", "09 Orders"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteFile_RejectsPathOutsidePrefix(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.WriteFile(context.Background(), "/Elsewhere/folder", "x.pdf", []byte("%PDF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside store prefix")
}
