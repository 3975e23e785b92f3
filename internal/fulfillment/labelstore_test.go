package fulfillment_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/order-fulfillment/internal/fulfillment"
)

func TestDirLabelStore_WriteExactContent(t *testing.T) {
	dir := t.TempDir()
	store, err := fulfillment.NewDirLabelStore(dir)
	require.NoError(t, err)

	const html = "<html><body>label TRK-001</body></html>"
	require.NoError(t, store.Write("TRK-001", html))

	path := store.Path("TRK-001")
	assert.Equal(t, filepath.Join(dir, "TRK-001.html"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, html, string(content))
}

func TestDirLabelStore_IdempotentByTrackingNumber(t *testing.T) {
	dir := t.TempDir()
	store, err := fulfillment.NewDirLabelStore(dir)
	require.NoError(t, err)

	const html = "<html>same label</html>"
	require.NoError(t, store.Write("TRK-002", html))
	require.NoError(t, store.Write("TRK-002", html))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(store.Path("TRK-002"))
	require.NoError(t, err)
	assert.Equal(t, html, string(content))
}

func TestDirLabelStore_OverwriteReplacesContent(t *testing.T) {
	store, err := fulfillment.NewDirLabelStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Write("TRK-003", "<html>old</html>"))
	require.NoError(t, store.Write("TRK-003", "<html>new</html>"))

	content, err := os.ReadFile(store.Path("TRK-003"))
	require.NoError(t, err)
	assert.Equal(t, "<html>new</html>", string(content))
}

func TestDirLabelStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "labels")
	_, err := fulfillment.NewDirLabelStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDirLabelStore_WriteFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "labels")
	store, err := fulfillment.NewDirLabelStore(dir)
	require.NoError(t, err)

	// Yank the directory away so the write has nowhere to land.
	require.NoError(t, os.RemoveAll(dir))

	err = store.Write("TRK-004", "<html></html>")
	require.Error(t, err)
	assert.ErrorIs(t, err, fulfillment.ErrArtifactWriteFailed)
}

func TestNewDirLabelStore_PathBlocked(t *testing.T) {
	base := t.TempDir()
	blocked := filepath.Join(base, "occupied")
	require.NoError(t, os.WriteFile(blocked, []byte("a file, not a dir"), 0o644))

	_, err := fulfillment.NewDirLabelStore(filepath.Join(blocked, "labels"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fulfillment.ErrArtifactWriteFailed)
}
