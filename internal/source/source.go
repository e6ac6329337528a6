// Package source loads metadata files into memory with bounds checking.
package source

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/simonhull/tagfile/internal/growbuf"
	"github.com/simonhull/tagfile/internal/types"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the declared content size.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt fills b from offset off, failing on any out-of-bounds or short read.
func (sr *SafeReader) ReadAt(b []byte, off int64) error {
	if off < 0 || off+int64(len(b)) > sr.size {
		return fmt.Errorf("read of %d bytes at offset %d would exceed size %d", len(b), off, sr.size)
	}

	n, err := sr.r.ReadAt(b, off)
	if n == len(b) {
		// io.ReaderAt may return io.EOF alongside a full read at the end
		return nil
	}
	if err != nil {
		return fmt.Errorf("read at offset %d: %w", off, err)
	}
	return fmt.Errorf("short read at offset %d: got %d bytes, expected %d", off, n, len(b))
}

// ReadAll reads the whole declared content into a new buffer.
//
// The buffer size is charged to budget before it is allocated.
func (sr *SafeReader) ReadAll(budget *growbuf.Budget) ([]byte, error) {
	if sr.size < 0 || sr.size > math.MaxInt {
		return nil, &types.ParseError{
			Kind:   types.ErrIO,
			Path:   sr.path,
			Detail: fmt.Sprintf("error getting metadata file size: invalid size %d", sr.size),
		}
	}
	if err := budget.Reserve(int(sr.size)); err != nil {
		return nil, &types.ParseError{
			Kind: types.ErrOutOfMemory,
			Path: sr.path,
			Err:  err,
		}
	}

	buf := make([]byte, sr.size)
	if len(buf) == 0 {
		return buf, nil
	}
	if err := sr.ReadAt(buf, 0); err != nil {
		return nil, &types.ParseError{
			Kind:   types.ErrIO,
			Path:   sr.path,
			Detail: "failed to load metadata file to memory",
			Err:    err,
		}
	}
	return buf, nil
}

// Load reads size bytes of r into memory.
func Load(r io.ReaderAt, size int64, path string, budget *growbuf.Budget) ([]byte, error) {
	return NewSafeReader(r, size, path).ReadAll(budget)
}

// LoadFile opens path, determines its size and reads it into memory.
func LoadFile(path string, budget *growbuf.Budget) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.ParseError{
			Kind:   types.ErrIO,
			Path:   path,
			Detail: "error opening metadata file",
			Err:    unwrapPathError(err),
		}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, &types.ParseError{
			Kind:   types.ErrIO,
			Path:   path,
			Detail: "error getting metadata file size",
			Err:    unwrapPathError(err),
		}
	}
	if stat.IsDir() {
		return nil, &types.ParseError{
			Kind:   types.ErrIO,
			Path:   path,
			Detail: "error opening metadata file: is a directory",
		}
	}

	return Load(f, stat.Size(), path, budget)
}

// unwrapPathError strips the *os.PathError layer since ParseError already
// carries the path.
func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
