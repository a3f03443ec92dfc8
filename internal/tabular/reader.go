package tabular

import "io"

// Row is one input record as an ordered mapping from column identifier to
// raw cell value. Columns lists the identifiers that carry a value in this
// row, in column order; short rows simply omit the trailing identifiers.
// Rows are consumed immediately by the binding builder and not retained.
type Row struct {
	Columns []string
	Values  map[string]string
}

// Reader iterates the records of a delimited-text stream, producing one Row
// per non-blank line. Blank lines are skipped without terminating
// iteration; io.EOF signals exhaustion.
//
// In header mode the first non-blank record supplies the column names for
// every subsequent row. In header-less mode synthetic names are generated
// per row length through a shared FieldNamer, so the identifier stream is
// monotonic across rows of different widths.
type Reader struct {
	scanner  *Scanner
	namer    *FieldNamer
	noHeader bool
	headers  []string
	started  bool
}

// NewReader creates a header-driven reader: the first non-blank record is
// consumed as the header row.
func NewReader(r io.Reader, dialect Dialect) *Reader {
	return &Reader{scanner: NewScanner(r, dialect)}
}

// NewHeaderlessReader creates a reader that assigns synthetic column names
// a, b, c, ... to every record.
func NewHeaderlessReader(r io.Reader, dialect Dialect) *Reader {
	return &Reader{
		scanner:  NewScanner(r, dialect),
		namer:    NewFieldNamer(),
		noHeader: true,
	}
}

// Next returns the next data row, or io.EOF when the stream is exhausted.
// Malformed records surface the scanner's fatal parse error.
func (r *Reader) Next() (Row, error) {
	for {
		record, err := r.scanner.Next()
		if err != nil {
			return Row{}, err
		}
		if len(record) == 0 {
			continue
		}
		if !r.noHeader && !r.started {
			r.started = true
			r.headers = record
			continue
		}
		return r.zip(record), nil
	}
}

func (r *Reader) zip(record []string) Row {
	var names []string
	if r.noHeader {
		names = r.namer.Names(len(record))
	} else {
		names = r.headers
	}

	n := len(record)
	if n > len(names) {
		// Values beyond the header row's width have no identifier.
		n = len(names)
	}
	row := Row{
		Columns: names[:n],
		Values:  make(map[string]string, n),
	}
	for i := 0; i < n; i++ {
		row.Values[names[i]] = record[i]
	}
	return row
}
