package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/blockfs/blockfs/fsys"
	"github.com/blockfs/blockfs/session"
	"github.com/blockfs/blockfs/superblock"
)

// Dispatcher is the subset of *session.Session a Runner needs. Declared as
// an interface so the runner is testable against a fake.
type Dispatcher interface {
	Dispatch(op session.Operation) ([]fsys.Entry, error)
}

// Runner executes a script file line by line against a Dispatcher in a
// read-parse-validate-dispatch loop. Every error is reported to Stderr and
// the loop continues; only the scanner's own I/O failure aborts early.
type Runner struct {
	Dispatcher Dispatcher
	Stderr     io.Writer
	Stdout     io.Writer
	ScriptPath string
}

// Run reads src line by line and dispatches each valid command. It never
// returns an error for script-level problems (those are reported to
// Stderr and the run continues); it only returns an error if src itself
// cannot be read.
func (r *Runner) Run(src io.Reader) error {
	scanner := bufio.NewScanner(src)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		r.runLine(scanner.Text(), lineNum)
	}
	return scanner.Err()
}

func (r *Runner) runLine(line string, lineNum int) {
	cmd, ok := parseLine(line, lineNum)
	if !ok {
		return // blank line: a line that tokenizes to nothing is silently skipped
	}

	if !Validate(cmd) {
		fmt.Fprintf(r.Stderr, "Command Error: %s, %d\n", r.ScriptPath, lineNum)
		return
	}

	op, err := toOperation(cmd)
	if err != nil {
		fmt.Fprintf(r.Stderr, "Command Error: %s, %d\n", r.ScriptPath, lineNum)
		return
	}

	entries, err := r.Dispatcher.Dispatch(op)
	if err != nil {
		if errors.Is(err, session.ErrNotMounted) {
			fmt.Fprintln(r.Stderr, "Error: No file system is mounted")
			return
		}
		fmt.Fprintf(r.Stderr, "Error: %s\n", err)
		return
	}

	if cmd.Type == List {
		printEntries(r.Stdout, entries)
	}
}

// toOperation converts a validated Command into the typed Operation the
// dispatcher consumes: name normalization and padding happen here, at the
// front-end/core boundary.
func toOperation(cmd Command) (session.Operation, error) {
	switch cmd.Type {
	case Mount:
		return session.Operation{Kind: session.OpMount, DiskPath: cmd.Args[0]}, nil
	case Create:
		size, _ := strconv.Atoi(cmd.Args[1])
		return session.Operation{Kind: session.OpCreate, Name: fsys.PadName(normalizeName(cmd.Args[0])), Size: size}, nil
	case Delete:
		return session.Operation{Kind: session.OpDelete, Name: fsys.PadName(normalizeName(cmd.Args[0]))}, nil
	case Read:
		block, _ := strconv.Atoi(cmd.Args[1])
		return session.Operation{Kind: session.OpRead, Name: fsys.PadName(normalizeName(cmd.Args[0])), Block: block}, nil
	case Write:
		block, _ := strconv.Atoi(cmd.Args[1])
		return session.Operation{Kind: session.OpWrite, Name: fsys.PadName(normalizeName(cmd.Args[0])), Block: block}, nil
	case Buffer:
		return session.Operation{Kind: session.OpBuffer, Payload: []byte(cmd.Args[0])}, nil
	case List:
		return session.Operation{Kind: session.OpList}, nil
	case Defragment:
		return session.Operation{Kind: session.OpDefragment}, nil
	case ChangeDir:
		return session.Operation{Kind: session.OpChangeDir, Name: fsys.PadName(normalizeName(cmd.Args[0]))}, nil
	default:
		return session.Operation{}, fmt.Errorf("unrecognized command type %q", cmd.Type)
	}
}

// printEntries renders an ls result in the original tool's column format:
// name left-aligned in 5 columns, then the child count or size number
// right-aligned in width 3, with " KB" after a file's size.
func printEntries(w io.Writer, entries []fsys.Entry) {
	for _, e := range entries {
		name := nameString(e.Name)
		if e.Dir {
			fmt.Fprintf(w, "%-5s %3d\n", name, e.ChildCount)
		} else {
			fmt.Fprintf(w, "%-5s %3d KB\n", name, e.SizeBlocks)
		}
	}
}

func nameString(name [superblock.NameLen]byte) string {
	for i, b := range name {
		if b == 0 {
			return string(name[:i])
		}
	}
	return string(name[:])
}
