package session

import (
	"errors"
	"fmt"

	"github.com/blockfs/blockfs/blockdev"
	"github.com/blockfs/blockfs/fsys"
	"github.com/blockfs/blockfs/superblock"
)

// ErrNotMounted is reported when a non-mount operation is dispatched
// against a Session with no mounted disk.
var ErrNotMounted = errors.New("no file system is mounted")

// Kind identifies which engine call an Operation routes to.
type Kind int

const (
	OpMount Kind = iota
	OpCreate
	OpDelete
	OpRead
	OpWrite
	OpBuffer
	OpList
	OpDefragment
	OpChangeDir
)

// Operation is the typed unit the front-end hands the dispatcher: a
// command's semantic content after lexical validation and name
// normalization, with no further knowledge of script syntax.
type Operation struct {
	Kind     Kind
	DiskPath string                      // OpMount
	Name     [superblock.NameLen]byte    // OpCreate, OpDelete, OpRead, OpWrite, OpChangeDir
	Size     int                         // OpCreate
	Block    int                         // OpRead, OpWrite
	Payload  []byte                      // OpBuffer: raw bytes before zero-padding
}

// Dispatch routes op to the mounted Engine (or to Mount itself), persisting
// the superblock after any call that mutates it. Read, Write, List, and cd
// mutate nothing persisted (read/write only move bytes through the shared
// buffer; cwd lives only in memory), so no persist follows them.
func (s *Session) Dispatch(op Operation) (result []fsys.Entry, err error) {
	if op.Kind != OpMount && !s.Mounted() {
		return nil, ErrNotMounted
	}

	switch op.Kind {
	case OpMount:
		return nil, s.Mount(op.DiskPath)

	case OpCreate:
		if err := s.engine.Create(op.Name, op.Size); err != nil {
			return nil, err
		}
		return nil, s.persist()

	case OpDelete:
		if err := s.engine.Delete(op.Name); err != nil {
			return nil, err
		}
		return nil, s.persist()

	case OpRead:
		return nil, s.engine.Read(op.Name, op.Block, &s.buffer)

	case OpWrite:
		return nil, s.engine.Write(op.Name, op.Block, s.buffer)

	case OpBuffer:
		var b blockdev.Block
		copy(b[:], op.Payload)
		s.buffer = b
		return nil, nil

	case OpList:
		return s.engine.List(), nil

	case OpDefragment:
		s.engine.Defragment()
		return nil, s.persist()

	case OpChangeDir:
		return nil, s.engine.Cd(op.Name)

	default:
		return nil, fmt.Errorf("unknown operation kind %d", op.Kind)
	}
}
