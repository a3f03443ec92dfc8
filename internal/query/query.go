// Package query parses and evaluates the CONSTRUCT query subset driving
// the converter.
//
// A query has the form:
//
//	PREFIX ex: <http://example.com/>
//	CONSTRUCT { ?s ex:name ?name . } WHERE { }
//
// The prologue (PREFIX and BASE declarations) and the CONSTRUCT template
// are evaluated; the WHERE clause must be empty because variable bindings
// come from the input table, not from graph pattern matching.
//
// Evaluating a query against one row's binding substitutes bound variables
// into every template triple. A template triple mentioning an unbound
// variable is skipped, as are triples that would be invalid RDF (a literal
// subject or a non-IRI predicate). Blank node labels are freshened on
// every evaluation so each row mints its own blank nodes.
package query

import (
	"regexp"

	"github.com/roach88/tarql/internal/rdf"
)

// Binding maps query-variable names to the terms bound for one row.
type Binding = map[string]rdf.Term

type termKind int

const (
	termVar termKind = iota
	termIRI
	termBlank
	termLiteral
)

// term is one slot of a template triple pattern.
type term struct {
	kind    termKind
	value   string // variable name, IRI value, or blank node label
	literal rdf.Literal
}

type pattern struct {
	s, p, o term
}

// Query is a parsed, immutable CONSTRUCT query. Parse once, evaluate per
// row.
type Query struct {
	base     string
	prefixes map[string]string
	template []pattern
	labels   LabelGenerator
}

// Option configures query behavior.
type Option func(*Query)

// WithLabelGenerator overrides the blank node label generator.
// The default mints UUID-derived labels; tests use NewSequenceLabels.
func WithLabelGenerator(g LabelGenerator) Option {
	return func(q *Query) {
		q.labels = g
	}
}

// Parse compiles query source text. Queries are fixed for a run and parsed
// once before the row loop starts; a malformed query is fatal.
func Parse(src string, opts ...Option) (*Query, error) {
	q, err := parse(src)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(q)
	}
	return q, nil
}

// Prefixes returns the namespace declarations from the query prologue.
// The serializer consumes these for its prologue; the table is read-only
// after parsing.
func (q *Query) Prefixes() map[string]string {
	return q.prefixes
}

// TemplateSize returns the number of triple patterns in the CONSTRUCT
// template.
func (q *Query) TemplateSize() int {
	return len(q.template)
}

// Evaluate substitutes the binding into the CONSTRUCT template and returns
// the resulting triples. The result may be empty; that is not an error.
func (q *Query) Evaluate(binding Binding) ([]rdf.Triple, error) {
	blanks := make(map[string]rdf.BlankNode)
	var out []rdf.Triple
	for _, p := range q.template {
		s, ok := q.resolve(p.s, binding, blanks)
		if !ok {
			continue
		}
		if s.Kind() == rdf.TermLiteral {
			continue
		}
		pred, ok := q.resolve(p.p, binding, blanks)
		if !ok {
			continue
		}
		predIRI, ok := pred.(rdf.IRI)
		if !ok {
			continue
		}
		o, ok := q.resolve(p.o, binding, blanks)
		if !ok {
			continue
		}
		out = append(out, rdf.Triple{S: s, P: predIRI, O: o})
	}
	return out, nil
}

// resolve maps a template term to a concrete RDF term. Returns false when
// the term is a variable with no binding in this row.
func (q *Query) resolve(t term, binding Binding, blanks map[string]rdf.BlankNode) (rdf.Term, bool) {
	switch t.kind {
	case termVar:
		bound, ok := binding[t.value]
		return bound, ok
	case termIRI:
		return rdf.IRI{Value: t.value}, true
	case termBlank:
		b, ok := blanks[t.value]
		if !ok {
			b = rdf.BlankNode{ID: q.labels.Label()}
			blanks[t.value] = b
		}
		return b, true
	default:
		return t.literal, true
	}
}

var schemeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// resolveIRI resolves a (possibly relative) IRI reference against the
// query's BASE declaration. Resolution is plain concatenation; the IRIs in
// converter queries are overwhelmingly absolute.
func resolveIRI(base, ref string) string {
	if base == "" || schemeRe.MatchString(ref) {
		return ref
	}
	return base + ref
}
