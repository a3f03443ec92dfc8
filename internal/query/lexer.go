package query

import (
	"fmt"
	"strings"
	"unicode"
)

// SyntaxError reports a query parsing failure with its position.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("query syntax error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRIRef                // <...>, value without brackets
	tokPName                 // prefixed name, possibly just "ex:"
	tokVar                   // ?x or $x, value without sigil
	tokBlank                 // _:label, value is the label
	tokAnon                  // []
	tokString                // quoted string, value unescaped
	tokLangTag               // @en, value without '@'
	tokDatatype              // ^^
	tokNumber                // integer or decimal lexical form
	tokWord                  // bare word: PREFIX, CONSTRUCT, a, true, ...
	tokPunct                 // one of { } . ; ,
)

type token struct {
	kind  tokenKind
	value string
	line  int
	col   int
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) errorf(line, col int, format string, args ...any) error {
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.peek()
		if c == '#' {
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.advance()
			continue
		}
		return
	}
}

// next returns the next token. The lexer covers the subset of SPARQL
// grammar needed by prologue declarations and CONSTRUCT templates.
func (l *lexer) next() (token, error) {
	l.skipSpace()
	line, col := l.line, l.col
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: line, col: col}, nil
	}

	c := l.peek()
	switch {
	case c == '<':
		return l.lexIRIRef(line, col)
	case c == '?' || c == '$':
		l.advance()
		name := l.lexWordTail()
		if name == "" {
			return token{}, l.errorf(line, col, "empty variable name")
		}
		return token{kind: tokVar, value: name, line: line, col: col}, nil
	case c == '"' || c == '\'':
		return l.lexString(line, col)
	case c == '@':
		l.advance()
		tag := l.lexWordTail()
		if tag == "" {
			return token{}, l.errorf(line, col, "empty language tag")
		}
		return token{kind: tokLangTag, value: tag, line: line, col: col}, nil
	case c == '^':
		l.advance()
		if l.peek() != '^' {
			return token{}, l.errorf(line, col, "expected ^^")
		}
		l.advance()
		return token{kind: tokDatatype, line: line, col: col}, nil
	case c == '[':
		l.advance()
		l.skipSpace()
		if l.peek() != ']' {
			return token{}, l.errorf(line, col, "blank node property lists are not supported")
		}
		l.advance()
		return token{kind: tokAnon, line: line, col: col}, nil
	case c == '{' || c == '}' || c == '.' || c == ';' || c == ',':
		// '.' starting a number is handled below; a bare '.' is punctuation.
		if c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
			return l.lexNumber(line, col)
		}
		l.advance()
		return token{kind: tokPunct, value: string(c), line: line, col: col}, nil
	case isDigit(c) || ((c == '+' || c == '-') && l.pos+1 < len(l.src) && (isDigit(l.src[l.pos+1]) || l.src[l.pos+1] == '.')):
		return l.lexNumber(line, col)
	default:
		return l.lexWordOrPName(line, col)
	}
}

func (l *lexer) lexIRIRef(line, col int) (token, error) {
	l.advance() // '<'
	start := l.pos
	for l.pos < len(l.src) {
		c := l.peek()
		if c == '>' {
			value := l.src[start:l.pos]
			l.advance()
			return token{kind: tokIRIRef, value: value, line: line, col: col}, nil
		}
		if c == '\n' || c == ' ' || c == '<' {
			break
		}
		l.advance()
	}
	return token{}, l.errorf(line, col, "unterminated IRI reference")
}

func (l *lexer) lexString(line, col int) (token, error) {
	quote := l.advance()
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.advance()
		switch c {
		case quote:
			return token{kind: tokString, value: sb.String(), line: line, col: col}, nil
		case '\\':
			if l.pos >= len(l.src) {
				return token{}, l.errorf(line, col, "unterminated string literal")
			}
			e := l.advance()
			switch e {
			case 't':
				sb.WriteByte('\t')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case '\\', '"', '\'':
				sb.WriteByte(e)
			default:
				return token{}, l.errorf(l.line, l.col, "unsupported string escape %q", string(e))
			}
		case '\n':
			return token{}, l.errorf(line, col, "unterminated string literal")
		default:
			sb.WriteByte(c)
		}
	}
	return token{}, l.errorf(line, col, "unterminated string literal")
}

func (l *lexer) lexNumber(line, col int) (token, error) {
	start := l.pos
	if c := l.peek(); c == '+' || c == '-' {
		l.advance()
	}
	seenDot := false
	for l.pos < len(l.src) {
		c := l.peek()
		if isDigit(c) {
			l.advance()
			continue
		}
		if c == '.' && !seenDot && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
			seenDot = true
			l.advance()
			continue
		}
		break
	}
	return token{kind: tokNumber, value: l.src[start:l.pos], line: line, col: col}, nil
}

// lexWordOrPName reads a bare word, a prefixed name, or a blank node label.
func (l *lexer) lexWordOrPName(line, col int) (token, error) {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.peek()
		if isNameByte(c) || c == ':' || c == '-' {
			l.advance()
			continue
		}
		break
	}
	word := l.src[start:l.pos]
	if word == "" {
		return token{}, l.errorf(line, col, "unexpected character %q", string(l.peek()))
	}
	if strings.HasPrefix(word, "_:") {
		label := word[2:]
		if label == "" {
			return token{}, l.errorf(line, col, "empty blank node label")
		}
		return token{kind: tokBlank, value: label, line: line, col: col}, nil
	}
	if strings.Contains(word, ":") {
		return token{kind: tokPName, value: word, line: line, col: col}, nil
	}
	return token{kind: tokWord, value: word, line: line, col: col}, nil
}

func (l *lexer) lexWordTail() string {
	start := l.pos
	for l.pos < len(l.src) && isNameByte(l.peek()) {
		l.advance()
	}
	return l.src[start:l.pos]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameByte(c byte) bool {
	return c == '_' || c >= utf8Threshold ||
		unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

// Multi-byte UTF-8 sequences are accepted wholesale in names.
const utf8Threshold = 0x80
