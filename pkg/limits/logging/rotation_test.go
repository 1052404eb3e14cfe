package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatingWriter_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "limits.log")

	w, err := NewRotatingWriter(path, RotationConfig{})
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, path, w.Path())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRotatingWriter_Defaults(t *testing.T) {
	w, err := NewRotatingWriter(filepath.Join(t.TempDir(), "limits.log"), RotationConfig{})
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, int64(DefaultMaxSize), w.cfg.MaxSize)
	assert.Equal(t, DefaultMaxBackups, w.cfg.MaxBackups)
}

func TestRotatingWriter_RotatesBySize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.log")

	w, err := NewRotatingWriter(path, RotationConfig{MaxSize: 10, MaxBackups: 2})
	require.NoError(t, err)
	defer w.Close()

	for _, line := range []string{"first---\n", "second--\n", "third---\n", "fourth--\n"} {
		_, err := w.Write([]byte(line))
		require.NoError(t, err)
	}

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fourth--\n", string(current))

	newest, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, "third---\n", string(newest))

	older, err := os.ReadFile(path + ".2")
	require.NoError(t, err)
	assert.Equal(t, "second--\n", string(older))

	// Only MaxBackups rotated files are kept.
	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))
}

func TestRotatingWriter_OversizedWriteOnEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.log")

	w, err := NewRotatingWriter(path, RotationConfig{MaxSize: 4})
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte(strings.Repeat("x", 16)))
	require.NoError(t, err)

	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err), "an empty file is never rotated")
}

func TestRotatingWriter_WriteAfterClose(t *testing.T) {
	w, err := NewRotatingWriter(filepath.Join(t.TempDir(), "limits.log"), RotationConfig{})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
