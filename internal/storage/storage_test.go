package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st := NewFile(dir)

	exists, err := st.Exists("CHANGELOG.json")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, st.Write("CHANGELOG.json", []byte(`{"releases":[]}`)))

	exists, err = st.Exists("CHANGELOG.json")
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := st.Read("CHANGELOG.json")
	require.NoError(t, err)
	assert.Equal(t, `{"releases":[]}`, string(data))

	onDisk, err := os.ReadFile(filepath.Join(dir, "CHANGELOG.json"))
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)
}

func TestFile_WriteOverwritesWholeFile(t *testing.T) {
	t.Parallel()

	st := NewFile(t.TempDir())
	require.NoError(t, st.Write("c.json", []byte("a much longer original content")))
	require.NoError(t, st.Write("c.json", []byte("short")))

	data, err := st.Read("c.json")
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestFile_AbsoluteNameIgnoresDir(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(t.TempDir(), "abs.json")
	st := NewFile(t.TempDir())
	require.NoError(t, st.Write(abs, []byte("x")))

	_, err := os.Stat(abs)
	assert.NoError(t, err)
}

func TestFile_DirectoryIsNotADocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "CHANGELOG.json"), 0o755))

	exists, err := NewFile(dir).Exists("CHANGELOG.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFile_WriteFailure(t *testing.T) {
	t.Parallel()

	st := NewFile(filepath.Join(t.TempDir(), "missing-dir"))
	err := st.Write("CHANGELOG.json", []byte("x"))
	require.Error(t, err)
	assert.True(t, IsWriteError(err))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFile_ReadMissing(t *testing.T) {
	t.Parallel()

	_, err := NewFile(t.TempDir()).Read("nope.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemory(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.Put("a.json", []byte("seed"))

	exists, err := m.Exists("a.json")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 0, m.Writes())

	data, err := m.Read("a.json")
	require.NoError(t, err)
	assert.Equal(t, "seed", string(data))
	assert.Equal(t, 1, m.Reads())

	require.NoError(t, m.Write("a.json", []byte("new")))
	got, ok := m.Get("a.json")
	require.True(t, ok)
	assert.Equal(t, "new", string(got))
	assert.Equal(t, 1, m.Writes())

	_, err = m.Read("b.json")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemory_FailWrites(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.FailWrites = fs.ErrPermission

	err := m.Write("a.json", []byte("x"))
	require.Error(t, err)
	assert.True(t, IsWriteError(err))
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Equal(t, 0, m.Writes())
	_, ok := m.Get("a.json")
	assert.False(t, ok)
}
