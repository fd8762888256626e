// Package testhelper provides an in-memory backend.Storage stand-in so
// blockdev tests can exercise read/write behavior without touching the
// host filesystem.
package testhelper

import (
	"io/fs"
	"os"
	"time"

	"github.com/blockfs/blockfs/backend"
)

// MemStorage is a fixed-size, in-memory backend.Storage backed by a byte
// slice. Sys() always reports backend.ErrNotSuitable, matching how
// backend/file.rawBackend reports it for anything that isn't a real
// *os.File. A MemStorage is wrapped with blockdev.WrapStorage, which skips
// the host-file size check, so neither sizeOf implementation runs on it.
type MemStorage struct {
	buf      []byte
	readOnly bool
}

// NewMemStorage returns a MemStorage of exactly size bytes, zero-filled.
func NewMemStorage(size int) *MemStorage {
	return &MemStorage{buf: make([]byte, size)}
}

var _ backend.Storage = (*MemStorage)(nil)

func (m *MemStorage) Sys() (*os.File, error) {
	return nil, backend.ErrNotSuitable
}

func (m *MemStorage) Writable() (backend.WritableFile, error) {
	if m.readOnly {
		return nil, backend.ErrIncorrectOpenMode
	}
	return m, nil
}

func (m *MemStorage) Stat() (fs.FileInfo, error) {
	return memFileInfo{size: int64(len(m.buf))}, nil
}

func (m *MemStorage) Read(b []byte) (int, error) {
	return m.ReadAt(b, 0)
}

func (m *MemStorage) ReadAt(b []byte, off int64) (int, error) {
	if off < 0 || int(off) > len(m.buf) {
		return 0, fs.ErrInvalid
	}
	n := copy(b, m.buf[off:])
	return n, nil
}

func (m *MemStorage) WriteAt(b []byte, off int64) (int, error) {
	if off < 0 || int(off)+len(b) > len(m.buf) {
		return 0, fs.ErrInvalid
	}
	n := copy(m.buf[off:], b)
	return n, nil
}

func (m *MemStorage) Seek(offset int64, whence int) (int64, error) {
	return 0, fs.ErrInvalid
}

func (m *MemStorage) Close() error {
	return nil
}

type memFileInfo struct {
	size int64
}

func (i memFileInfo) Name() string       { return "memstorage" }
func (i memFileInfo) Size() int64        { return i.size }
func (i memFileInfo) Mode() fs.FileMode  { return 0o600 }
func (i memFileInfo) ModTime() time.Time { return time.Time{} }
func (i memFileInfo) IsDir() bool        { return false }
func (i memFileInfo) Sys() interface{}   { return nil }
