package rdf

import (
	"fmt"
	"sort"
	"strings"
)

// Format selects the output serialization.
type Format string

const (
	// FormatTurtle produces Turtle with a prefix prologue.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces line-oriented N-Triples with no prologue.
	FormatNTriples Format = "ntriples"
)

// Valid reports whether the format is one of the supported values.
func (f Format) Valid() bool {
	return f == FormatTurtle || f == FormatNTriples
}

func renderTerm(term Term) string {
	switch value := term.(type) {
	case IRI:
		return value.String()
	case BlankNode:
		return value.String()
	case Literal:
		return value.String()
	default:
		return ""
	}
}

func renderTermWithPrefixes(term Term, prefixes map[string]string) string {
	switch value := term.(type) {
	case IRI:
		return renderIRIWithPrefixes(value, prefixes)
	case BlankNode:
		return value.String()
	case Literal:
		quoted := `"` + escapeLiteral(value.Lexical) + `"`
		if value.Lang != "" {
			return quoted + "@" + value.Lang
		}
		if value.Datatype.Value != "" {
			return quoted + "^^" + renderIRIWithPrefixes(value.Datatype, prefixes)
		}
		return quoted
	default:
		return ""
	}
}

func renderIRIWithPrefixes(iri IRI, prefixes map[string]string) string {
	if qname, ok := abbreviateQName(iri.Value, prefixes); ok {
		return qname
	}
	return iri.String()
}

// abbreviateQName rewrites an absolute IRI as prefix:local using the longest
// matching declared namespace. Returns false when no declared namespace
// matches or the remainder is not a valid local part.
func abbreviateQName(iri string, prefixes map[string]string) (string, bool) {
	bestNS := ""
	bestPrefix := ""
	found := false
	for prefix, ns := range prefixes {
		if ns == "" || !strings.HasPrefix(iri, ns) {
			continue
		}
		local := iri[len(ns):]
		if !isQNameLocal(local) {
			continue
		}
		if len(ns) > len(bestNS) {
			bestNS = ns
			bestPrefix = prefix
			found = true
		}
	}
	if !found {
		return "", false
	}
	return bestPrefix + ":" + iri[len(bestNS):], true
}

// isQNameLocal reports whether s can serve as the local part of a prefixed
// name without escaping. Deliberately conservative: anything outside
// letters, digits, '_', '-' and '.' forces the full IRI form.
func isQNameLocal(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '.' || s[len(s)-1] == '.' {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return true
}

func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

func sortedPrefixKeys(prefixes map[string]string) []string {
	keys := make([]string, 0, len(prefixes))
	for key := range prefixes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// serializeTurtle writes the prefix prologue (sorted by prefix), a blank
// separator line, then one triple statement per line in insertion order.
func serializeTurtle(g *Graph) string {
	var sb strings.Builder
	if len(g.prefixes) > 0 {
		for _, prefix := range sortedPrefixKeys(g.prefixes) {
			fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", prefix, g.prefixes[prefix])
		}
		sb.WriteString("\n")
	}
	for _, t := range g.order {
		sb.WriteString(renderTermWithPrefixes(t.S, g.prefixes))
		sb.WriteString(" ")
		sb.WriteString(renderIRIWithPrefixes(t.P, g.prefixes))
		sb.WriteString(" ")
		sb.WriteString(renderTermWithPrefixes(t.O, g.prefixes))
		sb.WriteString(" .\n")
	}
	return sb.String()
}

// serializeNTriples writes one absolute-form statement per line in
// insertion order. N-Triples carries no prologue.
func serializeNTriples(g *Graph) string {
	var sb strings.Builder
	for _, t := range g.order {
		sb.WriteString(t.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
