package script

import "strconv"

// Validate reports whether cmd is lexically well-formed: correct arity for
// its type, a parseable in-range integer where one is required, a name no
// longer than superblock.NameLen bytes, and (for Buffer) a 1..1024 byte
// payload.
func Validate(cmd Command) bool {
	switch cmd.Type {
	case Mount:
		return len(cmd.Args) == 1
	case Create:
		return len(cmd.Args) == 2 && validName(cmd.Args[0]) && validInt(cmd.Args[1], 0, 127)
	case Delete:
		return len(cmd.Args) == 1 && validName(cmd.Args[0])
	case Read, Write:
		return len(cmd.Args) == 2 && validName(cmd.Args[0]) && validInt(cmd.Args[1], 0, 126)
	case Buffer:
		return len(cmd.Args) == 1 && len(cmd.Args[0]) >= 1 && len(cmd.Args[0]) <= 1024
	case List, Defragment:
		return len(cmd.Args) == 0
	case ChangeDir:
		return len(cmd.Args) == 1 && validName(cmd.Args[0])
	default:
		return false
	}
}

func validName(name string) bool {
	return len(name) >= 1 && len(name) <= 5
}

// validInt requires a decimal integer with no trailing garbage, in
// [lo, hi].
func validInt(s string, lo, hi int) bool {
	v, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return v >= lo && v <= hi
}
