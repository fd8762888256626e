// Package fsys implements the core filesystem engine over a decoded
// superblock and a block device: namespace, allocator, create/delete/
// read/write/ls, defragmentation and cd, all built over typed field
// accessors rather than raw byte offsets.
package fsys

import (
	"fmt"

	"github.com/blockfs/blockfs/blockdev"
	"github.com/blockfs/blockfs/superblock"
)

// Engine mutates a mounted superblock and its backing block device on
// behalf of a single current-directory cursor. It performs no I/O of its
// own beyond blockdev reads/writes; superblock persistence is the caller's
// responsibility (session.Session persists after every mutating call).
type Engine struct {
	SB       *superblock.Superblock
	Dev      *blockdev.Device
	Cwd      uint8
	DiskPath string // for the two error messages that name the disk
}

// NewEngine wraps sb/dev with cwd reset to root, the state every freshly
// mounted disk starts in.
func NewEngine(sb *superblock.Superblock, dev *blockdev.Device) *Engine {
	return &Engine{SB: sb, Dev: dev, Cwd: superblock.RootParent}
}

func (e *Engine) namespace() Namespace {
	return NewNamespace(e.SB)
}

func (e *Engine) allocator() Allocator {
	return NewAllocator(e.SB)
}

// Create allocates a free inode slot for name under the current directory
// and, if size > 0, a contiguous run of size data blocks; size == 0 makes
// a directory. Checks run in a fixed observable order: superblock-full,
// then duplicate-name/reserved-name, then allocation failure, so callers
// always get the most fundamental applicable error first.
func (e *Engine) Create(name [superblock.NameLen]byte, size int) error {
	slot := -1
	for i := 0; i < superblock.InodeCount; i++ {
		if !e.SB.Inodes[i].Used {
			slot = i
			break
		}
	}
	if slot == -1 {
		return &nameError{ErrSuperblockFull, fmt.Sprintf(
			"Superblock in disk %s is full, cannot create %s", e.DiskPath, nameString(name))}
	}

	if IsReserved(name) {
		return &nameError{ErrAlreadyExists, fmt.Sprintf("File or directory %s already exists", nameString(name))}
	}
	if _, ok := e.namespace().Lookup(name, e.Cwd); ok {
		return &nameError{ErrAlreadyExists, fmt.Sprintf("File or directory %s already exists", nameString(name))}
	}

	start := 0
	if size > 0 {
		s, ok := e.allocator().FindRun(size)
		if !ok {
			return &nameError{ErrCannotAllocate, fmt.Sprintf(
				"Cannot allocate %d blocks on %s", size, e.DiskPath)}
		}
		start = s
	}

	e.SB.Inodes[slot] = superblock.Inode{
		Name:       name,
		Used:       true,
		Dir:        size == 0,
		Size:       uint8(size),
		StartBlock: uint8(start),
		Parent:     e.Cwd,
	}
	if size > 0 {
		e.allocator().Mark(start, size, true)
	}
	return nil
}

// Delete removes name from the current directory: a directory is removed
// by cascading depth-first deletion of its entire subtree, every child
// before the directory itself, and a file by
// freeing its data blocks and zeroing them out before the inode slot is
// cleared.
func (e *Engine) Delete(name [superblock.NameLen]byte) error {
	idx, ok := e.namespace().Lookup(name, e.Cwd)
	if !ok {
		return &nameError{ErrNotExist, fmt.Sprintf("File or directory %s does not exist", nameString(name))}
	}
	e.deleteInode(idx)
	return nil
}

func (e *Engine) deleteInode(idx int) {
	n := e.SB.Inodes[idx]

	if n.Dir {
		for _, child := range e.namespace().Children(uint8(idx)) {
			e.deleteInode(child)
		}
	} else if n.Size > 0 {
		var zero blockdev.Block
		for b := int(n.StartBlock); b < int(n.StartBlock)+int(n.Size); b++ {
			_ = e.Dev.WriteBlock(b, zero)
		}
		e.allocator().Mark(int(n.StartBlock), int(n.Size), false)
	}

	e.SB.Inodes[idx] = superblock.Inode{}
}

// lookupFile resolves name in cwd to a non-directory inode, or returns the
// "file does not exist" error that directories and absent names share:
// read/write treat a directory by that name the same as no name at all.
func (e *Engine) lookupFile(name [superblock.NameLen]byte) (int, error) {
	idx, ok := e.namespace().Lookup(name, e.Cwd)
	if !ok || e.SB.Inodes[idx].Dir {
		return 0, &nameError{ErrFileNotExist, fmt.Sprintf("File %s does not exist", nameString(name))}
	}
	return idx, nil
}

// Read copies the contents of file name's block number blockNum into buf.
func (e *Engine) Read(name [superblock.NameLen]byte, blockNum int, buf *blockdev.Block) error {
	idx, err := e.lookupFile(name)
	if err != nil {
		return err
	}
	n := e.SB.Inodes[idx]
	if blockNum < 0 || blockNum >= int(n.Size) {
		return &nameError{ErrNoSuchBlock, fmt.Sprintf("%s does not have block %d", nameString(name), blockNum)}
	}
	b, err := e.Dev.ReadBlock(int(n.StartBlock) + blockNum)
	if err != nil {
		return err
	}
	*buf = b
	return nil
}

// Write copies buf into file name's block number blockNum.
func (e *Engine) Write(name [superblock.NameLen]byte, blockNum int, buf blockdev.Block) error {
	idx, err := e.lookupFile(name)
	if err != nil {
		return err
	}
	n := e.SB.Inodes[idx]
	if blockNum < 0 || blockNum >= int(n.Size) {
		return &nameError{ErrNoSuchBlock, fmt.Sprintf("%s does not have block %d", nameString(name), blockNum)}
	}
	return e.Dev.WriteBlock(int(n.StartBlock)+blockNum, buf)
}

// Entry is one record of an Engine.List result.
type Entry struct {
	Name       [superblock.NameLen]byte
	Dir        bool
	ChildCount int // meaningful only if Dir
	SizeBlocks int // meaningful only if !Dir
}

// List returns "." and ".." first, then every inode whose parent is cwd,
// in ascending index order.
func (e *Engine) List() []Entry {
	ns := e.namespace()
	entries := make([]Entry, 0, ns.ChildCount(e.Cwd)+2)

	entries = append(entries, Entry{Name: dotName, Dir: true, ChildCount: ns.ChildCount(e.Cwd) + 2})

	if e.Cwd == superblock.RootParent {
		entries = append(entries, Entry{Name: dotdotName, Dir: true, ChildCount: ns.ChildCount(e.Cwd) + 2})
	} else {
		parent := e.SB.Inodes[e.Cwd].Parent
		entries = append(entries, Entry{Name: dotdotName, Dir: true, ChildCount: ns.ChildCount(parent) + 2})
	}

	for _, i := range ns.Children(e.Cwd) {
		n := e.SB.Inodes[i]
		if n.Dir {
			entries = append(entries, Entry{Name: n.Name, Dir: true, ChildCount: ns.ChildCount(uint8(i)) + 2})
		} else {
			entries = append(entries, Entry{Name: n.Name, Dir: false, SizeBlocks: int(n.Size)})
		}
	}
	return entries
}

// Cd changes the current directory to name, which may be ".", "..", or a
// child directory of the current one.
func (e *Engine) Cd(name [superblock.NameLen]byte) error {
	switch {
	case name == dotName:
		return nil
	case name == dotdotName:
		if e.Cwd == superblock.RootParent {
			return nil
		}
		e.Cwd = e.SB.Inodes[e.Cwd].Parent
		return nil
	default:
		idx, ok := e.namespace().Lookup(name, e.Cwd)
		if !ok || !e.SB.Inodes[idx].Dir {
			return &nameError{ErrDirNotExist, fmt.Sprintf("Directory %s does not exist", nameString(name))}
		}
		e.Cwd = uint8(idx)
		return nil
	}
}
