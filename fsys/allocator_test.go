package fsys_test

import (
	"testing"

	"github.com/blockfs/blockfs/fsys"
	"github.com/blockfs/blockfs/superblock"
)

func TestFindRunOnEmptyDisk(t *testing.T) {
	var sb superblock.Superblock
	sb.SetBit(0, true)
	a := fsys.NewAllocator(&sb)

	start, ok := a.FindRun(127)
	if !ok || start != 1 {
		t.Fatalf("got (%d,%v), want (1,true)", start, ok)
	}
}

func TestFindRunSkipsBlockZero(t *testing.T) {
	var sb superblock.Superblock
	// leave bit 0 clear (malformed, but Check doesn't look at it) to be
	// sure the allocator still refuses to hand out block 0.
	a := fsys.NewAllocator(&sb)
	start, ok := a.FindRun(128)
	if ok {
		t.Fatalf("should not be able to allocate 128 blocks including block 0, got start=%d", start)
	}
	start, ok = a.FindRun(127)
	if !ok || start != 1 {
		t.Fatalf("got (%d,%v), want (1,true)", start, ok)
	}
}

// with only blocks 3..4 in use (as after deleting a 2-block file at [1,2]),
// the only free runs are [1,2] (size 2) and [5,127] (size 123); requesting
// 3 blocks must land at 5, not 1.
func TestFindRunFirstFitAfterHole(t *testing.T) {
	var sb superblock.Superblock
	sb.SetBit(0, true)
	a := fsys.NewAllocator(&sb)
	a.Mark(3, 2, true) // b occupies blocks 3..4

	start, ok := a.FindRun(3)
	if !ok || start != 5 {
		t.Fatalf("got (%d,%v), want (5,true)", start, ok)
	}
}

func TestMarkRoundTrip(t *testing.T) {
	var sb superblock.Superblock
	sb.SetBit(0, true)
	a := fsys.NewAllocator(&sb)

	a.Mark(10, 5, true)
	for i := 10; i < 15; i++ {
		if !sb.BitSet(i) {
			t.Fatalf("block %d should be marked used", i)
		}
	}
	a.Mark(10, 5, false)
	for i := 10; i < 15; i++ {
		if sb.BitSet(i) {
			t.Fatalf("block %d should be marked free", i)
		}
	}
}
