package fsys

import "github.com/blockfs/blockfs/superblock"

// Namespace provides name/parent lookups over a superblock's inode table.
// Lookups are a linear scan over all 126 slots, byte-exact on the full
// 5-byte name; the inode table is small enough that this beats any index.
type Namespace struct {
	sb *superblock.Superblock
}

// NewNamespace wraps sb for namespace queries.
func NewNamespace(sb *superblock.Superblock) Namespace {
	return Namespace{sb: sb}
}

// Lookup returns the index of the used inode named name under parent, and
// true, or (0, false) if none exists. Name comparison is byte-exact across
// all 5 bytes, including zero padding.
func (ns Namespace) Lookup(name [superblock.NameLen]byte, parent uint8) (int, bool) {
	for i := 0; i < superblock.InodeCount; i++ {
		n := ns.sb.Inodes[i]
		if n.Used && n.Name == name && n.Parent == parent {
			return i, true
		}
	}
	return 0, false
}

// Children returns the indices, in ascending order, of every used inode
// whose parent is the given index.
func (ns Namespace) Children(parent uint8) []int {
	var out []int
	for i := 0; i < superblock.InodeCount; i++ {
		n := ns.sb.Inodes[i]
		if n.Used && n.Parent == parent {
			out = append(out, i)
		}
	}
	return out
}

// ChildCount is len(Children(parent)); kept separate since ls only ever
// needs the count, not the indices, for "." and "..".
func (ns Namespace) ChildCount(parent uint8) int {
	count := 0
	for i := 0; i < superblock.InodeCount; i++ {
		n := ns.sb.Inodes[i]
		if n.Used && n.Parent == parent {
			count++
		}
	}
	return count
}

// PadName right-pads a name to NameLen bytes with zeros. Callers longer
// than NameLen are a front-end lexical error and never reach here.
func PadName(name string) [superblock.NameLen]byte {
	var out [superblock.NameLen]byte
	copy(out[:], name)
	return out
}

var (
	dotName    = PadName(".")
	dotdotName = PadName("..")
)

// IsReserved reports whether name is "." or "..", which create must reject
// and which are never stored as inodes.
func IsReserved(name [superblock.NameLen]byte) bool {
	return name == dotName || name == dotdotName
}
