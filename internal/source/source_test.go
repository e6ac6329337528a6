package source

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/tagfile/internal/growbuf"
	"github.com/simonhull/tagfile/internal/types"
)

// mockReader implements io.ReaderAt for testing.
type mockReader struct {
	data []byte
	err  error
}

func (m *mockReader) ReadAt(p []byte, off int64) (n int, err error) {
	if m.err != nil {
		return 0, m.err
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if off+int64(n) == int64(len(m.data)) {
		return n, io.EOF
	}
	return n, nil
}

func TestLoad_Success(t *testing.T) {
	data := []byte("TITLE=Hello\n")
	buf, err := Load(&mockReader{data: data}, int64(len(data)), "mem", nil)

	require.NoError(t, err)
	assert.Equal(t, data, buf)
}

func TestLoad_Empty(t *testing.T) {
	buf, err := Load(&mockReader{}, 0, "mem", nil)

	require.NoError(t, err)
	assert.Empty(t, buf)
}

func TestLoad_ShortRead(t *testing.T) {
	_, err := Load(&mockReader{data: []byte("abc")}, 10, "short.txt", nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrIO))
	assert.Contains(t, err.Error(), "short.txt")
	assert.Contains(t, err.Error(), "failed to load metadata file to memory")
}

func TestLoad_ReaderError(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := Load(&mockReader{err: boom}, 4, "bad.txt", nil)

	require.ErrorIs(t, err, types.ErrIO)
	assert.ErrorIs(t, err, boom)
}

func TestLoad_NegativeSize(t *testing.T) {
	_, err := Load(&mockReader{}, -1, "neg.txt", nil)

	require.ErrorIs(t, err, types.ErrIO)
	assert.Contains(t, err.Error(), "error getting metadata file size")
}

func TestLoad_BudgetExceeded(t *testing.T) {
	data := make([]byte, 64)
	_, err := Load(&mockReader{data: data}, 64, "big.txt", growbuf.NewBudget(32))

	require.ErrorIs(t, err, types.ErrOutOfMemory)
	assert.ErrorIs(t, err, growbuf.ErrBudgetExceeded)
}

func TestSafeReader_ReadAt_OutOfBounds(t *testing.T) {
	sr := NewSafeReader(&mockReader{data: []byte{1, 2, 3, 4}}, 4, "test.txt")

	err := sr.ReadAt(make([]byte, 2), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would exceed size 4")

	assert.Equal(t, "test.txt", sr.Path())
	assert.Equal(t, int64(4), sr.Size())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.txt")
	require.NoError(t, os.WriteFile(path, []byte("A=1\n"), 0o644))

	buf, err := LoadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "A=1\n", string(buf))
}

func TestLoadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	_, err := LoadFile(path, nil)
	require.ErrorIs(t, err, types.ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "error opening metadata file")

	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, path, pe.Path)
}

func TestLoadFile_Directory(t *testing.T) {
	_, err := LoadFile(t.TempDir(), nil)
	require.ErrorIs(t, err, types.ErrIO)
	assert.Contains(t, err.Error(), "is a directory")
}
