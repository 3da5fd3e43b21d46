package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryPersists(t *testing.T) {
	file := filepath.Join(t.TempDir(), "hist")

	h, err := New(file, 10)
	require.NoError(t, err)
	require.Empty(t, h.GetAll())

	require.NoError(t, h.Add("ls -la"))
	require.NoError(t, h.Add("sleep 5 &"))

	reloaded, err := New(file, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"ls -la", "sleep 5 &"}, reloaded.GetAll())
}

func TestHistoryBounded(t *testing.T) {
	file := filepath.Join(t.TempDir(), "hist")
	require.NoError(t, os.WriteFile(file, []byte("a\nb\nc\n"), 0o644))

	h, err := New(file, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c"}, h.GetAll())

	require.NoError(t, h.Add("d"))
	require.Equal(t, []string{"c", "d"}, h.GetAll())
}

func TestHistoryWithoutFile(t *testing.T) {
	h, err := New("", 5)
	require.NoError(t, err)
	require.NoError(t, h.Add("status"))
	require.Equal(t, []string{"status"}, h.GetAll())
}
