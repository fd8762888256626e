package fsys

import (
	"github.com/blockfs/blockfs/superblock"
	"github.com/blockfs/blockfs/util/bitmap"
)

// Allocator finds and marks contiguous free runs in the 127-block data
// region (blocks 1..127) of a superblock's bitmap.
//
// util/bitmap.Bitmap addresses bits LSB-first within a byte, but the
// on-disk bitmap here is MSB-first. Rather than reimplement
// bitmap.Bitmap's scanning logic, Allocator mirrors the superblock's
// bitmap into a bit-reversed copy on which bitmap.Bitmap's own FreeList
// (ascending, by position) lands on the same block ordering the on-disk
// layout uses, then mirrors any change back. Within each byte, reversing
// bit order turns "MSB-first block i" into "LSB-first location i", so
// block i and bitmap.Bitmap location i always refer to the same block.
type Allocator struct {
	sb *superblock.Superblock
}

// NewAllocator wraps sb for allocation queries.
func NewAllocator(sb *superblock.Superblock) Allocator {
	return Allocator{sb: sb}
}

func reverseBits8(b byte) byte {
	b = (b&0x0f)<<4 | (b&0xf0)>>4
	b = (b&0x33)<<2 | (b&0xcc)>>2
	b = (b&0x55)<<1 | (b&0xaa)>>1
	return b
}

func (a Allocator) toBitmap() *bitmap.Bitmap {
	raw := make([]byte, superblock.BitmapBytes)
	for i, b := range a.sb.Bitmap {
		raw[i] = reverseBits8(b)
	}
	return bitmap.FromBytes(raw)
}

func (a Allocator) storeBitmap(bm *bitmap.Bitmap) {
	raw := bm.ToBytes()
	for i := range a.sb.Bitmap {
		a.sb.Bitmap[i] = reverseBits8(raw[i])
	}
}

// FindRun returns the lowest block index start such that blocks
// [start, start+size) are all free, scanning ascending over 1..127. size
// must be >= 1; directories never call this, since they hold no data blocks.
func (a Allocator) FindRun(size int) (int, bool) {
	bm := a.toBitmap()
	for _, run := range bm.FreeList() {
		pos, count := run.Position, run.Count
		if pos == 0 {
			// block 0 holds the superblock itself and is always
			// excluded from allocation, regardless of what the bitmap says.
			pos++
			count--
		}
		if count >= size {
			return pos, true
		}
	}
	return 0, false
}

// Mark sets or clears the bitmap bits for [start, start+size). Index 0 is
// always ignored, since block 0 is never part of an allocatable run.
func (a Allocator) Mark(start, size int, used bool) {
	bm := a.toBitmap()
	for i := start; i < start+size; i++ {
		if i == 0 {
			continue
		}
		if used {
			_ = bm.Set(i)
		} else {
			_ = bm.Clear(i)
		}
	}
	a.storeBitmap(bm)
}
