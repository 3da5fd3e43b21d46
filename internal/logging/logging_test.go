package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "smallsh.log")

	logger, err := New("debug", file)
	require.NoError(t, err)

	logger.Debug("launched")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), "launched")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New("loud", "")
	require.Error(t, err)
}
