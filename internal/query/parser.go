package query

import (
	"fmt"
	"strings"

	"github.com/roach88/tarql/internal/rdf"
)

const (
	xsdInteger = "http://www.w3.org/2001/XMLSchema#integer"
	xsdDecimal = "http://www.w3.org/2001/XMLSchema#decimal"
	xsdBoolean = "http://www.w3.org/2001/XMLSchema#boolean"
)

type parser struct {
	lex    *lexer
	tok    token
	query  *Query
	anonID int
}

func parse(src string) (*Query, error) {
	p := &parser{
		lex: newLexer(src),
		query: &Query{
			prefixes: make(map[string]string),
			labels:   UUIDLabels{},
		},
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.parsePrologue(); err != nil {
		return nil, err
	}
	if err := p.parseConstruct(); err != nil {
		return nil, err
	}
	if err := p.parseWhere(); err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %q after query", p.tok.value)
	}
	return p.query, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.tok.line, Col: p.tok.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) isKeyword(word string) bool {
	return p.tok.kind == tokWord && strings.EqualFold(p.tok.value, word)
}

func (p *parser) parsePrologue() error {
	for {
		switch {
		case p.isKeyword("PREFIX"):
			if err := p.advance(); err != nil {
				return err
			}
			if p.tok.kind != tokPName || !strings.HasSuffix(p.tok.value, ":") {
				return p.errorf("expected prefix declaration name")
			}
			prefix := strings.TrimSuffix(p.tok.value, ":")
			if err := p.advance(); err != nil {
				return err
			}
			if p.tok.kind != tokIRIRef {
				return p.errorf("expected namespace IRI for prefix %q", prefix)
			}
			p.query.prefixes[prefix] = resolveIRI(p.query.base, p.tok.value)
			if err := p.advance(); err != nil {
				return err
			}
		case p.isKeyword("BASE"):
			if err := p.advance(); err != nil {
				return err
			}
			if p.tok.kind != tokIRIRef {
				return p.errorf("expected IRI for BASE declaration")
			}
			p.query.base = p.tok.value
			if err := p.advance(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *parser) parseConstruct() error {
	if !p.isKeyword("CONSTRUCT") {
		return p.errorf("expected CONSTRUCT, got %q", p.tok.value)
	}
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expectPunct("{"); err != nil {
		return err
	}
	for !p.punct("}") {
		if p.tok.kind == tokEOF {
			return p.errorf("unterminated CONSTRUCT template")
		}
		if err := p.parseTriples(); err != nil {
			return err
		}
		// Optional '.' between triple groups; required by the grammar
		// except before the closing brace.
		if p.punct(".") {
			if err := p.advance(); err != nil {
				return err
			}
		} else if !p.punct("}") {
			return p.errorf("expected '.' or '}' in template, got %q", p.tok.value)
		}
	}
	return p.advance() // consume '}'
}

// parseWhere accepts an optional, empty WHERE clause. Bindings come from
// the input table, so graph patterns have nothing to match against.
func (p *parser) parseWhere() error {
	if !p.isKeyword("WHERE") {
		return nil
	}
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expectPunct("{"); err != nil {
		return err
	}
	if !p.punct("}") {
		return p.errorf("non-empty WHERE clauses are not supported; bindings come from the input rows")
	}
	return p.advance()
}

// parseTriples parses subject predicateObjectList.
func (p *parser) parseTriples() error {
	subject, err := p.parseTerm(false)
	if err != nil {
		return err
	}
	if subject.kind == termLiteral {
		return p.errorf("literal cannot be a subject")
	}
	for {
		verb, err := p.parseVerb()
		if err != nil {
			return err
		}
		for {
			object, err := p.parseTerm(true)
			if err != nil {
				return err
			}
			p.query.template = append(p.query.template, pattern{s: subject, p: verb, o: object})
			if !p.punct(",") {
				break
			}
			if err := p.advance(); err != nil {
				return err
			}
		}
		if !p.punct(";") {
			return nil
		}
		if err := p.advance(); err != nil {
			return err
		}
		// A ';' may dangle before '.' or '}'.
		if p.punct(".") || p.punct("}") {
			return nil
		}
	}
}

func (p *parser) parseVerb() (term, error) {
	if p.isKeyword("a") {
		if err := p.advance(); err != nil {
			return term{}, err
		}
		return term{kind: termIRI, value: rdf.RDFType}, nil
	}
	verb, err := p.parseTerm(false)
	if err != nil {
		return term{}, err
	}
	if verb.kind != termIRI && verb.kind != termVar {
		return term{}, p.errorf("predicate must be an IRI or variable")
	}
	return verb, nil
}

// parseTerm parses one template term. Literals are only legal when
// allowLiteral is set (object position).
func (p *parser) parseTerm(allowLiteral bool) (term, error) {
	tok := p.tok
	switch tok.kind {
	case tokVar:
		if err := p.advance(); err != nil {
			return term{}, err
		}
		return term{kind: termVar, value: tok.value}, nil

	case tokIRIRef:
		if err := p.advance(); err != nil {
			return term{}, err
		}
		return term{kind: termIRI, value: resolveIRI(p.query.base, tok.value)}, nil

	case tokPName:
		iri, err := p.expandPName(tok)
		if err != nil {
			return term{}, err
		}
		if err := p.advance(); err != nil {
			return term{}, err
		}
		return term{kind: termIRI, value: iri}, nil

	case tokBlank:
		if err := p.advance(); err != nil {
			return term{}, err
		}
		return term{kind: termBlank, value: tok.value}, nil

	case tokAnon:
		if err := p.advance(); err != nil {
			return term{}, err
		}
		p.anonID++
		return term{kind: termBlank, value: fmt.Sprintf("anon%d", p.anonID)}, nil

	case tokString:
		if !allowLiteral {
			return term{}, p.errorf("literal not allowed here")
		}
		return p.parseLiteral(tok)

	case tokNumber:
		if !allowLiteral {
			return term{}, p.errorf("literal not allowed here")
		}
		if err := p.advance(); err != nil {
			return term{}, err
		}
		datatype := xsdInteger
		if strings.Contains(tok.value, ".") {
			datatype = xsdDecimal
		}
		return term{kind: termLiteral, literal: rdf.Literal{
			Lexical:  tok.value,
			Datatype: rdf.IRI{Value: datatype},
		}}, nil

	case tokWord:
		if (strings.EqualFold(tok.value, "true") || strings.EqualFold(tok.value, "false")) && allowLiteral {
			if err := p.advance(); err != nil {
				return term{}, err
			}
			return term{kind: termLiteral, literal: rdf.Literal{
				Lexical:  strings.ToLower(tok.value),
				Datatype: rdf.IRI{Value: xsdBoolean},
			}}, nil
		}
		return term{}, p.errorf("unexpected %q in template", tok.value)

	default:
		return term{}, p.errorf("unexpected %q in template", tok.value)
	}
}

// parseLiteral parses a string literal with its optional language tag or
// datatype suffix. The string token itself is already consumed-in-place;
// this advances past it and any suffix.
func (p *parser) parseLiteral(str token) (term, error) {
	if err := p.advance(); err != nil {
		return term{}, err
	}
	lit := rdf.Literal{Lexical: str.value}
	switch p.tok.kind {
	case tokLangTag:
		lit.Lang = p.tok.value
		if err := p.advance(); err != nil {
			return term{}, err
		}
	case tokDatatype:
		if err := p.advance(); err != nil {
			return term{}, err
		}
		switch p.tok.kind {
		case tokIRIRef:
			lit.Datatype = rdf.IRI{Value: resolveIRI(p.query.base, p.tok.value)}
		case tokPName:
			iri, err := p.expandPName(p.tok)
			if err != nil {
				return term{}, err
			}
			lit.Datatype = rdf.IRI{Value: iri}
		default:
			return term{}, p.errorf("expected datatype IRI after ^^")
		}
		if err := p.advance(); err != nil {
			return term{}, err
		}
	}
	return term{kind: termLiteral, literal: lit}, nil
}

func (p *parser) expandPName(tok token) (string, error) {
	idx := strings.Index(tok.value, ":")
	prefix, local := tok.value[:idx], tok.value[idx+1:]
	ns, ok := p.query.prefixes[prefix]
	if !ok {
		return "", &SyntaxError{Line: tok.line, Col: tok.col, Msg: fmt.Sprintf("undeclared prefix %q", prefix)}
	}
	return ns + local, nil
}

func (p *parser) punct(value string) bool {
	return p.tok.kind == tokPunct && p.tok.value == value
}

func (p *parser) expectPunct(value string) error {
	if !p.punct(value) {
		return p.errorf("expected %q, got %q", value, p.tok.value)
	}
	return p.advance()
}
