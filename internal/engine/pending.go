package engine

import "github.com/roach88/tarql/internal/rdf"

// pendingSet accumulates evaluated triples between flushes with set
// semantics: the same triple produced by two rows in one window is kept
// once. Insertion order is preserved for deterministic serialization.
type pendingSet struct {
	set   map[rdf.Triple]struct{}
	order []rdf.Triple
}

func newPendingSet() *pendingSet {
	return &pendingSet{set: make(map[rdf.Triple]struct{})}
}

// extend unions one evaluation result into the set.
func (p *pendingSet) extend(triples []rdf.Triple) {
	for _, t := range triples {
		if _, ok := p.set[t]; ok {
			continue
		}
		p.set[t] = struct{}{}
		p.order = append(p.order, t)
	}
}

func (p *pendingSet) len() int {
	return len(p.order)
}

// drain returns the accumulated triples and resets the set to empty.
func (p *pendingSet) drain() []rdf.Triple {
	out := p.order
	p.order = nil
	p.set = make(map[rdf.Triple]struct{})
	return out
}
