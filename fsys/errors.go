package fsys

import (
	"errors"

	"github.com/blockfs/blockfs/superblock"
)

// Sentinel errors for the namespace/capacity/range/semantic error kinds
// the engine can report. Callers compare against these with errors.Is;
// Error() on the concrete value returned by Engine methods carries the
// exact user-facing message text, which the sentinel alone doesn't carry.
var (
	ErrSuperblockFull = errors.New("superblock full")
	ErrAlreadyExists  = errors.New("already exists")
	ErrCannotAllocate = errors.New("cannot allocate blocks")
	ErrNotExist       = errors.New("does not exist")
	ErrFileNotExist   = errors.New("file does not exist")
	ErrNoSuchBlock    = errors.New("does not have that block")
	ErrDirNotExist    = errors.New("directory does not exist")
)

// nameError pairs a sentinel (for errors.Is) with the exact user-facing
// message text, which often needs context (name, size, disk path) the
// sentinel alone can't carry.
type nameError struct {
	sentinel error
	text     string
}

func (e *nameError) Error() string { return e.text }
func (e *nameError) Unwrap() error { return e.sentinel }

// nameString trims an inode name at its first zero byte, for display.
func nameString(name [superblock.NameLen]byte) string {
	for i, b := range name {
		if b == 0 {
			return string(name[:i])
		}
	}
	return string(name[:])
}
