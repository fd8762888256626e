package fsys_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/blockfs/blockfs/blockdev"
	"github.com/blockfs/blockfs/fsys"
	"github.com/blockfs/blockfs/superblock"
)

func newEngine(t *testing.T) *fsys.Engine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disk.img")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.Truncate(blockdev.DiskSize); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	f.Close()

	dev, err := blockdev.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { dev.Close() })

	var sb superblock.Superblock
	sb.SetBit(0, true)
	return fsys.NewEngine(&sb, dev)
}

func TestCreateFile(t *testing.T) {
	e := newEngine(t)
	if err := e.Create(fsys.PadName("foo"), 3); err != nil {
		t.Fatalf("Create: %v", err)
	}
	n := e.SB.Inodes[0]
	if !n.Used || n.Dir || n.Size != 3 || n.StartBlock != 1 || n.Parent != superblock.RootParent {
		t.Fatalf("unexpected inode state: %+v", n)
	}
	for i := 0; i <= 3; i++ {
		if !e.SB.BitSet(i) {
			t.Fatalf("block %d should be marked used", i)
		}
	}
}

func TestCreateDuplicateName(t *testing.T) {
	e := newEngine(t)
	if err := e.Create(fsys.PadName("foo"), 3); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := e.Create(fsys.PadName("foo"), 1)
	if !errors.Is(err, fsys.ErrAlreadyExists) {
		t.Fatalf("got %v, want ErrAlreadyExists", err)
	}
}

func TestCreateFirstFitAfterDelete(t *testing.T) {
	e := newEngine(t)
	must(t, e.Create(fsys.PadName("a"), 2))
	must(t, e.Create(fsys.PadName("b"), 2))
	must(t, e.Delete(fsys.PadName("a")))
	must(t, e.Create(fsys.PadName("c"), 3))

	idx, ok := fsys.NewNamespace(e.SB).Lookup(fsys.PadName("c"), superblock.RootParent)
	if !ok {
		t.Fatal("c should exist")
	}
	if got := e.SB.Inodes[idx].StartBlock; got != 5 {
		t.Fatalf("c.StartBlock = %d, want 5", got)
	}
}

func TestDeleteDirectoryCascades(t *testing.T) {
	e := newEngine(t)
	must(t, e.Create(fsys.PadName("dir"), 0))
	must(t, e.Cd(fsys.PadName("dir")))
	must(t, e.Create(fsys.PadName("f"), 1))
	must(t, e.Cd(fsys.PadName("..")))
	must(t, e.Delete(fsys.PadName("dir")))

	for i, n := range e.SB.Inodes {
		if n.Used {
			t.Fatalf("inode %d should be zeroed after cascading delete, got %+v", i, n)
		}
	}
	if e.SB.BitSet(1) {
		t.Fatal("block 1 should have been freed by cascading delete")
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	e := newEngine(t)
	must(t, e.Create(fsys.PadName("f"), 2))

	var buf blockdev.Block
	for i := range buf {
		buf[i] = byte(i)
	}
	must(t, e.Write(fsys.PadName("f"), 1, buf))

	var got blockdev.Block
	must(t, e.Read(fsys.PadName("f"), 1, &got))
	if got != buf {
		t.Fatal("read did not return the written block")
	}
}

func TestReadWriteDirectoryReportsFileNotExist(t *testing.T) {
	e := newEngine(t)
	must(t, e.Create(fsys.PadName("d"), 0))
	var buf blockdev.Block
	if err := e.Read(fsys.PadName("d"), 0, &buf); !errors.Is(err, fsys.ErrFileNotExist) {
		t.Fatalf("got %v, want ErrFileNotExist", err)
	}
}

func TestListRootCwd(t *testing.T) {
	e := newEngine(t)
	must(t, e.Create(fsys.PadName("a"), 1))
	must(t, e.Create(fsys.PadName("dir"), 0))

	entries := e.List()
	if len(entries) != 4 { // . .. a dir
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	if entries[0].Name != fsys.PadName(".") || entries[0].ChildCount != 4 {
		t.Fatalf(". entry wrong: %+v", entries[0])
	}
	if entries[1].Name != fsys.PadName("..") || entries[1].ChildCount != 4 {
		t.Fatalf(".. entry at root should mirror cwd's own count: %+v", entries[1])
	}
}

func TestCdDotDotAtRootIsNoop(t *testing.T) {
	e := newEngine(t)
	must(t, e.Cd(fsys.PadName("..")))
	if e.Cwd != superblock.RootParent {
		t.Fatalf("cwd changed at root: %d", e.Cwd)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
