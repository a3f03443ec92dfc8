package tabular

// FieldNamer generates synthetic column identifiers for header-less input.
//
// Identifiers follow bijective base-26 over 'a'..'z': index 0 is "a",
// index 25 is "z", index 26 is "aa", index 27 is "ab", and so on. Names are
// memoized; an index keeps its identifier for the life of the namer and is
// never reassigned.
type FieldNamer struct {
	names []string
}

// NewFieldNamer creates a namer with no names assigned yet.
func NewFieldNamer() *FieldNamer {
	return &FieldNamer{}
}

// Name returns the identifier for a 0-based column index, generating and
// memoizing any missing lower indices on demand.
func (f *FieldNamer) Name(index int) string {
	f.extend(index + 1)
	return f.names[index]
}

// Names returns identifiers for the first n columns. The returned slice is
// a copy, so each row gets its own name slice while the memo is shared.
func (f *FieldNamer) Names(n int) []string {
	f.extend(n)
	out := make([]string, n)
	copy(out, f.names[:n])
	return out
}

func (f *FieldNamer) extend(n int) {
	for len(f.names) < n {
		f.names = append(f.names, columnName(len(f.names)))
	}
}

// columnName converts a 0-based index to its bijective base-26 name.
func columnName(index int) string {
	n := index + 1
	var buf []byte
	for n > 0 {
		n--
		buf = append(buf, byte('a'+n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}
