package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("Missing file yields an empty ledger", func(t *testing.T) {
		l, err := Open(filepath.Join(t.TempDir(), "absent.txt"))
		require.NoError(t, err)
		assert.Zero(t, l.Size())
		assert.False(t, l.Contains("TRK1"))
	})

	t.Run("Existing file loads its IDs, skipping blank lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ids.txt")
		require.NoError(t, os.WriteFile(path, []byte("TRK1\n\nTRK2\n  \n"), 0644))

		l, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, 2, l.Size())
		assert.True(t, l.Contains("TRK1"))
		assert.True(t, l.Contains("TRK2"))
	})
}

func TestCommit(t *testing.T) {
	t.Run("Committed IDs survive a reload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ids.txt")

		l, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, l.Commit([]string{"TRK1", "TRK2"}))
		assert.Equal(t, 2, l.Size())

		reloaded, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, 2, reloaded.Size())
		assert.True(t, reloaded.Contains("TRK2"))
	})

	t.Run("Recommitting known IDs does not grow the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ids.txt")

		l, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, l.Commit([]string{"TRK1"}))
		require.NoError(t, l.Commit([]string{"TRK1", "TRK1"}))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "TRK1\n", string(content))
		assert.Equal(t, 1, l.Size())
	})

	t.Run("Empty commit is a no-op that creates no file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ids.txt")

		l, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, l.Commit(nil))
		require.NoError(t, l.Commit([]string{"", "  "}))

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("Commit creates missing parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "ids.txt")

		l, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, l.Commit([]string{"TRK9"}))

		reloaded, err := Open(path)
		require.NoError(t, err)
		assert.True(t, reloaded.Contains("TRK9"))
	})
}
