//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package blockdev

import (
	"github.com/blockfs/blockfs/backend"
	"golang.org/x/sys/unix"
)

// sizeOf reports the size in bytes of the host file backing st, via an
// Fstat syscall on the underlying file descriptor rather than fs.FileInfo.
func sizeOf(st backend.Storage) (int64, error) {
	f, err := st.Sys()
	if err != nil {
		return 0, err
	}
	var stat unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &stat); err != nil {
		return 0, err
	}
	return stat.Size, nil
}
