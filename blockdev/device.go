// Package blockdev implements the fixed-size random-access byte store that
// backs a mounted virtual disk: exactly 128 blocks of 1024 bytes each.
package blockdev

import (
	"fmt"

	"github.com/blockfs/blockfs/backend"
	"github.com/blockfs/blockfs/backend/file"
)

const (
	// BlockSize is the size in bytes of a single block.
	BlockSize = 1024
	// BlockCount is the total number of blocks on a virtual disk,
	// including block 0 (the superblock).
	BlockCount = 128
	// DiskSize is the required exact size, in bytes, of a host file
	// backing a virtual disk.
	DiskSize = BlockSize * BlockCount
)

// Block is the fixed-size unit of storage.
type Block [BlockSize]byte

// Device is a random-access store of exactly BlockCount blocks. It never
// creates or truncates its backing storage; Open fails if the host file is
// not already exactly DiskSize bytes.
type Device struct {
	storage backend.Storage
}

// Open opens the host file at path for read/write and wraps it as a
// Device. It reports an error if the file cannot be opened or is not
// exactly DiskSize bytes, without creating or resizing it.
func Open(path string) (*Device, error) {
	st, err := file.OpenFromPath(path, false)
	if err != nil {
		return nil, err
	}
	size, err := sizeOf(st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	if size != DiskSize {
		_ = st.Close()
		return nil, fmt.Errorf("%s is %d bytes, want %d", path, size, DiskSize)
	}
	return &Device{storage: st}, nil
}

// WrapStorage builds a Device directly over an already-open backend.Storage,
// skipping the host-file-path size validation Open performs. Used by tests
// that exercise Device against an in-memory testhelper.MemStorage instead
// of a real host file.
func WrapStorage(st backend.Storage) *Device {
	return &Device{storage: st}
}

// Close releases the underlying host file handle.
func (d *Device) Close() error {
	return d.storage.Close()
}

// ReadBlock reads block i. i must be in [0, BlockCount); an out-of-range i
// is a programming error and panics rather than returning an error, since
// every caller validates block indices before reaching here.
func (d *Device) ReadBlock(i int) (Block, error) {
	checkIndex(i)
	var b Block
	_, err := d.storage.ReadAt(b[:], int64(i)*BlockSize)
	return b, err
}

// WriteBlock writes block i immediately; there is no buffering.
func (d *Device) WriteBlock(i int, b Block) error {
	checkIndex(i)
	w, err := d.storage.Writable()
	if err != nil {
		return err
	}
	_, err = w.WriteAt(b[:], int64(i)*BlockSize)
	return err
}

func checkIndex(i int) {
	if i < 0 || i >= BlockCount {
		panic(fmt.Sprintf("blockdev: block index %d out of range [0,%d)", i, BlockCount))
	}
}
