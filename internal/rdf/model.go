// Package rdf provides the RDF term model, an in-memory graph with set
// semantics, and Turtle / N-Triples serialization for the converter.
package rdf

import "fmt"

// Well-known IRIs used across the converter.
const (
	// RDFType is the rdf:type predicate IRI, written as "a" in query text.
	RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	// XSDString is the xsd:string datatype IRI.
	XSDString = "http://www.w3.org/2001/XMLSchema#string"
)

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
)

// Term is a value that can appear in an RDF triple.
//
// All implementations are comparable value types so triples can be used
// as map keys for set-semantics deduplication.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI in angle-bracket form.
func (i IRI) String() string { return "<" + i.Value + ">" }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns the N-Triples rendering of the literal.
func (l Literal) String() string {
	quoted := `"` + escapeLiteral(l.Lexical) + `"`
	if l.Lang != "" {
		return quoted + "@" + l.Lang
	}
	if l.Datatype.Value != "" {
		return fmt.Sprintf("%s^^<%s>", quoted, l.Datatype.Value)
	}
	return quoted
}

// PlainLiteral returns a literal with the given lexical form and no
// datatype or language tag. Cell values from the input table bind this way;
// no type inference is performed.
func PlainLiteral(lexical string) Literal {
	return Literal{Lexical: lexical}
}

// Triple is an RDF triple. Triples are immutable values; two triples with
// equal terms compare equal regardless of where they were produced.
type Triple struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
}

// String returns the N-Triples rendering of the triple.
func (t Triple) String() string {
	return renderTerm(t.S) + " " + t.P.String() + " " + renderTerm(t.O) + " ."
}
