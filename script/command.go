// Package script implements the textual front-end that feeds the fsys
// engine: line tokenizing, per-command-type arity/type validation, name
// normalization, and the error reporting format of a script run, built
// around a typed Command and a Validate step rather than a raw argv array.
package script

import "strings"

// Type is one of the nine single-letter script command codes.
type Type string

const (
	Mount      Type = "M"
	Create     Type = "C"
	Delete     Type = "D"
	Read       Type = "R"
	Write      Type = "W"
	Buffer     Type = "B"
	List       Type = "L"
	Defragment Type = "O"
	ChangeDir  Type = "Y"
)

// Command is one parsed script line, before validation. Args holds every
// token after the command letter; for Buffer, Args holds a single element:
// the raw text following "B " with its trailing newline stripped, still
// unpadded and unbounded.
type Command struct {
	Type Type
	Args []string
	Line int
}

// parseLine tokenizes on spaces, tabs, and double quotes (the newline is
// already gone by the time Scan hands us a line). The Buffer command is a
// special case: everything after "B " is one token, unsplit.
func parseLine(line string, lineNum int) (Command, bool) {
	trimmed := strings.TrimRight(line, "\n")
	fields := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '"'
	})
	if len(fields) == 0 {
		return Command{}, false
	}

	if fields[0] == string(Buffer) {
		if len(trimmed) <= 2 {
			return Command{Type: Buffer, Args: nil, Line: lineNum}, true
		}
		return Command{Type: Buffer, Args: []string{trimmed[2:]}, Line: lineNum}, true
	}

	return Command{Type: Type(fields[0]), Args: fields[1:], Line: lineNum}, true
}
