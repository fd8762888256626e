//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)
// +build !aix,!darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd,!solaris

package blockdev

import "github.com/blockfs/blockfs/backend"

// sizeOf is the portable fallback for platforms without unix.Fstat.
func sizeOf(st backend.Storage) (int64, error) {
	info, err := st.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
