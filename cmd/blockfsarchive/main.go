// Command blockfsarchive snapshots or restores a blockfs disk image as a
// compressed backup. Two formats are supported: lz4 for a fast snapshot of
// a disk about to be defragmented or mounted elsewhere, and xz for a
// higher-ratio cold archive of a disk that won't be touched again soon.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"

	"github.com/blockfs/blockfs/blockdev"
	"github.com/blockfs/blockfs/util"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("blockfsarchive", flag.ContinueOnError)
	format := fs.String("format", "lz4", "compression format: lz4 or xz")
	restore := fs.Bool("restore", false, "restore from archive instead of creating one")
	verbose := fs.Bool("verbose", false, "dump the superblock's bytes to stderr before archiving")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()
	if len(rest) != 2 {
		fmt.Fprintln(os.Stderr, "usage: blockfsarchive [-format lz4|xz] [-restore] [-verbose] <disk-path> <archive-path>")
		return 1
	}
	diskPath, archivePath := rest[0], rest[1]

	if *verbose && !*restore {
		if err := dumpSuperblock(diskPath); err != nil {
			fmt.Fprintln(os.Stderr, "warning: could not dump superblock:", err)
		}
	}

	var err error
	if *restore {
		err = restoreArchive(*format, archivePath, diskPath)
	} else {
		err = createArchive(*format, diskPath, archivePath)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// dumpSuperblock prints block 0 (the bitmap + inode table) in hex/ASCII
// to stderr, for inspecting a disk before it gets compressed away.
func dumpSuperblock(diskPath string) error {
	f, err := os.Open(diskPath)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, blockdev.BlockSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		return err
	}
	fmt.Fprint(os.Stderr, util.DumpByteSlice(buf, 16, true, true, false, nil))
	return nil
}

func createArchive(format, diskPath, archivePath string) error {
	disk, err := os.Open(diskPath)
	if err != nil {
		return err
	}
	defer disk.Close()

	if fi, err := disk.Stat(); err != nil {
		return err
	} else if fi.Size() != blockdev.DiskSize {
		return fmt.Errorf("%s is not a %d-byte disk image", diskPath, blockdev.DiskSize)
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer out.Close()

	switch format {
	case "lz4":
		w := lz4.NewWriter(out)
		defer w.Close()
		_, err = io.Copy(w, disk)
		return err
	case "xz":
		w, err := xz.NewWriter(out)
		if err != nil {
			return err
		}
		defer w.Close()
		_, err = io.Copy(w, disk)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func restoreArchive(format, archivePath, diskPath string) error {
	in, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(diskPath)
	if err != nil {
		return err
	}
	defer out.Close()

	switch format {
	case "lz4":
		r := lz4.NewReader(in)
		_, err = io.Copy(out, r)
		return err
	case "xz":
		r, err := xz.NewReader(in)
		if err != nil {
			return err
		}
		_, err = io.Copy(out, r)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
