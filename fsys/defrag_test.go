package fsys_test

import (
	"testing"

	"github.com/blockfs/blockfs/fsys"
	"github.com/blockfs/blockfs/superblock"
)

func TestDefragmentMovesFileDown(t *testing.T) {
	e := newEngine(t)
	must(t, e.Create(fsys.PadName("a"), 2))
	must(t, e.Create(fsys.PadName("b"), 2))
	must(t, e.Delete(fsys.PadName("a")))

	e.Defragment()

	idx, ok := fsys.NewNamespace(e.SB).Lookup(fsys.PadName("b"), superblock.RootParent)
	if !ok {
		t.Fatal("b should still exist")
	}
	if got := e.SB.Inodes[idx].StartBlock; got != 1 {
		t.Fatalf("b.StartBlock = %d, want 1", got)
	}
	if !e.SB.BitSet(1) || !e.SB.BitSet(2) {
		t.Fatal("blocks 1,2 should be marked used after defrag")
	}
	for i := 3; i < superblock.BlockCount; i++ {
		if e.SB.BitSet(i) {
			t.Fatalf("block %d should be free after defrag", i)
		}
	}
}

func TestDefragmentPreservesContent(t *testing.T) {
	e := newEngine(t)
	must(t, e.Create(fsys.PadName("a"), 2))
	must(t, e.Create(fsys.PadName("b"), 2))
	must(t, e.Delete(fsys.PadName("a")))

	var buf0, buf1 [1024]byte
	for i := range buf0 {
		buf0[i] = 0xAA
		buf1[i] = 0xBB
	}
	must(t, e.Write(fsys.PadName("b"), 0, buf0))
	must(t, e.Write(fsys.PadName("b"), 1, buf1))

	e.Defragment()

	var got0, got1 [1024]byte
	must(t, e.Read(fsys.PadName("b"), 0, &got0))
	must(t, e.Read(fsys.PadName("b"), 1, &got1))
	if got0 != buf0 || got1 != buf1 {
		t.Fatal("defragment did not preserve file content")
	}
}

func TestDefragmentIdempotent(t *testing.T) {
	e := newEngine(t)
	must(t, e.Create(fsys.PadName("a"), 2))
	must(t, e.Create(fsys.PadName("b"), 2))
	must(t, e.Delete(fsys.PadName("a")))

	e.Defragment()
	first := e.SB.Bitmap
	firstInodes := e.SB.Inodes

	e.Defragment()
	if e.SB.Bitmap != first || e.SB.Inodes != firstInodes {
		t.Fatal("second defragment changed state")
	}
}
