// Package session owns the single mutable mount state a blockfs process
// works against — the mounted block device, decoded superblock, current
// directory, and shared buffer — as one passed-around value instead of
// scattered process-global state.
package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	times "gopkg.in/djherbis/times.v1"

	"github.com/blockfs/blockfs/blockdev"
	"github.com/blockfs/blockfs/fsys"
	"github.com/blockfs/blockfs/superblock"
)

// Session is the dispatcher's owned state: at most one mounted disk, one
// cwd cursor (held inside Engine), and one shared 1024-byte buffer.
type Session struct {
	ID   uuid.UUID
	Log  *logrus.Entry
	Path string

	dev    *blockdev.Device
	sb     *superblock.Superblock
	engine *fsys.Engine
	buffer blockdev.Block
}

// New returns an unmounted Session with a fresh correlation ID and a
// zeroed shared buffer.
func New(log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.New()
	}
	id := uuid.New()
	return &Session{
		ID:  id,
		Log: log.WithField("session_id", id.String()),
	}
}

// Mounted reports whether a disk is currently mounted.
func (s *Session) Mounted() bool {
	return s.dev != nil
}

// Mount opens path as a block device, decodes and consistency-checks its
// superblock, and swaps it in as the active mount. Failure never mutates
// any previously mounted state.
func (s *Session) Mount(path string) error {
	dev, err := blockdev.Open(path)
	if err != nil {
		s.Log.WithField("disk", path).WithError(err).Warn("cannot find disk")
		return fmt.Errorf("Cannot find disk %s", path)
	}

	img, err := dev.ReadBlock(0)
	if err != nil {
		_ = dev.Close()
		return fmt.Errorf("Cannot find disk %s", path)
	}
	sb := superblock.Decode(superblock.Image(img))

	if code := superblock.Check(sb); code != 0 {
		_ = dev.Close()
		s.Log.WithField("disk", path).WithField("rule", code).Warn("inconsistent file system")
		return fmt.Errorf("File system in %s is inconsistent (error code: %d)", path, code)
	}

	if s.dev != nil {
		_ = s.dev.Close()
	}
	s.dev = dev
	s.sb = &sb
	s.Path = path
	s.engine = fsys.NewEngine(s.sb, s.dev)
	s.engine.DiskPath = path
	s.buffer = blockdev.Block{}
	s.Log = s.Log.WithField("disk", path)

	logMountTimes(s.Log, path)
	return nil
}

// Close releases the mounted disk's host handle, if any.
func (s *Session) Close() error {
	if s.dev == nil {
		return nil
	}
	return s.dev.Close()
}

// persist writes the in-memory superblock back to block 0. Every mutating
// operation performs its entire change in memory first, then a single
// write of block 0, so block 0 is only ever written with a complete,
// post-operation image, never between the steps of an operation.
func (s *Session) persist() error {
	img := s.sb.Encode()
	return s.dev.WriteBlock(0, blockdev.Block(img))
}

func logMountTimes(log *logrus.Entry, path string) {
	t, err := times.Stat(path)
	if err != nil {
		return
	}
	fields := logrus.Fields{"mtime": t.ModTime()}
	if t.HasBirthTime() {
		fields["btime"] = t.BirthTime()
	}
	log.WithFields(fields).Debug("mounted disk")
}
