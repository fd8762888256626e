package fsys

import (
	"github.com/blockfs/blockfs/blockdev"
	"github.com/blockfs/blockfs/superblock"
)

// Defragment repeatedly finds the lowest free block index L followed by
// the lowest used block index U > L, moves that file's blocks down to L,
// and resumes scanning from L+size rather than rescanning from block 1
// every iteration, so the whole pass is linear in the number of blocks
// instead of quadratic.
func (e *Engine) Defragment() {
	resume := 1
	for {
		lowestFree := -1
		nextUsed := -1
		for i := resume; i < superblock.BlockCount; i++ {
			if !e.SB.BitSet(i) {
				if lowestFree == -1 {
					lowestFree = i
				}
			} else if lowestFree != -1 {
				nextUsed = i
				break
			}
		}
		if nextUsed == -1 {
			return
		}

		idx := e.inodeStartingAt(nextUsed)
		n := e.SB.Inodes[idx]
		size := int(n.Size)
		start := int(n.StartBlock)

		var zero blockdev.Block
		for i := 0; i < size; i++ {
			tmp, _ := e.Dev.ReadBlock(start + i)
			_ = e.Dev.WriteBlock(start+i, zero)
			_ = e.Dev.WriteBlock(lowestFree+i, tmp)
		}

		e.allocator().Mark(start, size, false)
		e.allocator().Mark(lowestFree, size, true)
		e.SB.Inodes[idx].StartBlock = uint8(lowestFree)

		resume = lowestFree + size
	}
}

func (e *Engine) inodeStartingAt(block int) int {
	for i := 0; i < superblock.InodeCount; i++ {
		n := e.SB.Inodes[i]
		if n.Used && !n.Dir && int(n.StartBlock) == block {
			return i
		}
	}
	return -1
}
