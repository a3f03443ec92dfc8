package tabular

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Scanner parsing failures. Malformed input aborts the whole run; there is
// no row-level recovery.
var (
	// ErrUnterminatedQuote indicates a quoted field left open at end of input.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")

	// ErrTrailingEscape indicates an escape character at end of input.
	ErrTrailingEscape = errors.New("escape character at end of input")
)

// ParseError reports a malformed record with its physical line number.
type ParseError struct {
	Line int
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Dialect configures the delimited-text syntax of an input stream.
type Dialect struct {
	// Comma is the field delimiter. Zero defaults to ','.
	Comma rune

	// Quote is the quote character. Zero disables quoting.
	Quote rune

	// Escape is the escape character. Zero disables escaping. An escaped
	// character is taken literally, including delimiters and newlines.
	Escape rune
}

// DefaultDialect returns the standard CSV dialect: comma delimiter,
// double-quote quoting, backslash escaping.
func DefaultDialect() Dialect {
	return Dialect{Comma: ',', Quote: '"', Escape: '\\'}
}

// Scanner reads delimited records from a character stream.
//
// A record is a sequence of fields ending at an unquoted newline or at end
// of input. A completely empty line yields a zero-field record; callers
// decide whether to skip it. Quoted fields may contain delimiters and
// newlines; a doubled quote inside a quoted field is a literal quote.
type Scanner struct {
	r       *bufio.Reader
	dialect Dialect
	line    int
	done    bool
}

// NewScanner creates a scanner over r with the given dialect.
func NewScanner(r io.Reader, dialect Dialect) *Scanner {
	if dialect.Comma == 0 {
		dialect.Comma = ','
	}
	return &Scanner{r: bufio.NewReader(r), dialect: dialect}
}

// Next returns the fields of the next record, or io.EOF when the stream is
// exhausted. A blank line returns an empty, non-nil slice.
func (s *Scanner) Next() ([]string, error) {
	if s.done {
		return nil, io.EOF
	}
	r, _, err := s.r.ReadRune()
	if err == io.EOF {
		s.done = true
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	s.line++
	if r == '\n' {
		return []string{}, nil
	}
	if r == '\r' {
		s.skipLF()
		return []string{}, nil
	}
	if err := s.r.UnreadRune(); err != nil {
		return nil, err
	}
	return s.readRecord()
}

// Line returns the physical line number of the most recently read record,
// 1-based. Used for error reporting.
func (s *Scanner) Line() int {
	return s.line
}

func (s *Scanner) readRecord() ([]string, error) {
	var fields []string
	var field []rune
	inQuote := false
	quoted := false

	for {
		r, _, err := s.r.ReadRune()
		if err == io.EOF {
			if inQuote {
				return nil, &ParseError{Line: s.line, Err: ErrUnterminatedQuote}
			}
			s.done = true
			return append(fields, string(field)), nil
		}
		if err != nil {
			return nil, err
		}

		switch {
		case s.dialect.Escape != 0 && r == s.dialect.Escape:
			next, _, err := s.r.ReadRune()
			if err == io.EOF {
				return nil, &ParseError{Line: s.line, Err: ErrTrailingEscape}
			}
			if err != nil {
				return nil, err
			}
			if next == '\n' {
				s.line++
			}
			field = append(field, next)

		case inQuote:
			if r == s.dialect.Quote {
				next, _, err := s.r.ReadRune()
				if err == nil && next == s.dialect.Quote {
					field = append(field, r)
					continue
				}
				if err == nil {
					if uerr := s.r.UnreadRune(); uerr != nil {
						return nil, uerr
					}
				}
				inQuote = false
				continue
			}
			if r == '\n' {
				s.line++
			}
			field = append(field, r)

		case s.dialect.Quote != 0 && r == s.dialect.Quote && len(field) == 0 && !quoted:
			inQuote = true
			quoted = true

		case r == s.dialect.Comma:
			fields = append(fields, string(field))
			field = field[:0]
			quoted = false

		case r == '\n':
			return append(fields, string(field)), nil

		case r == '\r':
			next, _, err := s.r.ReadRune()
			if err == nil && next != '\n' {
				if uerr := s.r.UnreadRune(); uerr != nil {
					return nil, uerr
				}
			}
			return append(fields, string(field)), nil

		default:
			field = append(field, r)
		}
	}
}

func (s *Scanner) skipLF() {
	next, _, err := s.r.ReadRune()
	if err != nil {
		if err == io.EOF {
			s.done = true
		}
		return
	}
	if next != '\n' {
		_ = s.r.UnreadRune()
	}
}
