package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func fixturePath(t *testing.T, name string) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return filepath.Join(root, "fixtures", name)
}
