package datafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEntry(t *testing.T) {
	assert.Equal(t, "00:01:05 - standup\n", FormatEntry("00:01:05", "standup"))
	assert.Equal(t, "00:00:00 - \n", FormatEntry("00:00:00", ""))
	assert.Equal(t, "01:00:00 - café ☕\n", FormatEntry("01:00:00", "café ☕"))
}

func TestAppendEntry(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/log.txt", []byte("00:00:01 - a\n"), 0644))
	w := NewWriter(fsys)

	ok, err := w.AppendEntry("/log.txt", "00:00:05", "b")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := afero.ReadFile(fsys, "/log.txt")
	require.NoError(t, err)
	assert.Equal(t, "00:00:01 - a\n00:00:05 - b\n", string(data))
}

func TestAppendEntryMissingFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	w := NewWriter(fsys)

	ok, err := w.AppendEntry("/missing.txt", "00:00:05", "b")
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := afero.Exists(fsys, "/missing.txt")
	require.NoError(t, err)
	assert.False(t, exists, "AppendEntry must not create the file")
}

func TestTruncate(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/log.txt", []byte("old session\n"), 0644))
	w := NewWriter(fsys)

	ok, err := w.Truncate("/log.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := afero.ReadFile(fsys, "/log.txt")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestTruncateMissingFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	w := NewWriter(fsys)

	ok, err := w.Truncate("/missing.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	exists, _ := afero.Exists(fsys, "/missing.txt")
	assert.False(t, exists, "Truncate must not create the file")
}

func TestReadOnlyFileSystemFails(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/log.txt", []byte("x\n"), 0644))
	w := NewWriter(afero.NewReadOnlyFs(base))

	_, err := w.AppendEntry("/log.txt", "00:00:01", "a")
	assert.Error(t, err)

	_, err = w.Truncate("/log.txt")
	assert.Error(t, err)
}

func TestOsFileSystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))
	w := NewWriter(nil)

	ok, err := w.Truncate(path)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = w.AppendEntry(path, "00:02:00", "review")
	require.NoError(t, err)
	require.True(t, ok)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "00:02:00 - review\n", string(data))
}
