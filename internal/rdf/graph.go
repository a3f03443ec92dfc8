package rdf

import "fmt"

// Graph is an in-memory triple store with set semantics.
//
// Adding a triple that is already present is a no-op, so duplicates
// produced by different rows collapse. Iteration and serialization follow
// first-insertion order for deterministic output.
//
// Graph is owned by a single pipeline instance and is not safe for
// concurrent use.
type Graph struct {
	set      map[Triple]struct{}
	order    []Triple
	prefixes map[string]string
}

// NewGraph creates an empty graph with no namespace bindings.
func NewGraph() *Graph {
	return &Graph{
		set:      make(map[Triple]struct{}),
		prefixes: make(map[string]string),
	}
}

// Bind declares a namespace prefix used by Turtle serialization.
// Rebinding an existing prefix replaces its namespace.
func (g *Graph) Bind(prefix, namespace string) {
	g.prefixes[prefix] = namespace
}

// Prefixes returns the declared prefix table. The returned map is the
// graph's own table; callers must not mutate it.
func (g *Graph) Prefixes() map[string]string {
	return g.prefixes
}

// Add inserts a triple. Returns true if the triple was not already present.
func (g *Graph) Add(t Triple) bool {
	if _, ok := g.set[t]; ok {
		return false
	}
	g.set[t] = struct{}{}
	g.order = append(g.order, t)
	return true
}

// Remove deletes a triple if present.
func (g *Graph) Remove(t Triple) {
	if _, ok := g.set[t]; !ok {
		return
	}
	delete(g.set, t)
	for i, existing := range g.order {
		if existing == t {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Has reports whether the triple is present.
func (g *Graph) Has(t Triple) bool {
	_, ok := g.set[t]
	return ok
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.order)
}

// Triples returns all triples in insertion order. The returned slice is a
// copy; mutating it does not affect the graph.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.order))
	copy(out, g.order)
	return out
}

// Clear removes every triple. Namespace bindings are kept; the prefix
// table is populated once from the query prologue and outlives flushes.
func (g *Graph) Clear() {
	if len(g.order) == 0 {
		return
	}
	g.set = make(map[Triple]struct{})
	g.order = g.order[:0]
}

// Serialize renders the current contents in the given format.
func (g *Graph) Serialize(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return serializeTurtle(g), nil
	case FormatNTriples:
		return serializeNTriples(g), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
