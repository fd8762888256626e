package script

// normalizeName lowercases ASCII uppercase letters; padding to 5 bytes
// happens separately, in fsys.PadName, downstream of this call.
func normalizeName(name string) string {
	b := []byte(name)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
