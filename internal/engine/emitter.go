package engine

import (
	"io"
	"strings"

	"github.com/roach88/tarql/internal/rdf"
)

// Emitter serializes flushed triple sets incrementally.
//
// Each flush produces a complete serialized document from the triple
// store. For the block format the repeated namespace prologue is stripped
// from every chunk after the first, so the concatenated chunks form one
// document with a single prologue. The strip contract is textual: the
// chunk is cut at the first blank-line separator and everything up to and
// including it is discarded. Chunks are trimmed of surrounding whitespace
// before writing.
//
// Emitting clears the store, so the store and the pending set return to
// empty together at each flush boundary.
type Emitter struct {
	graph           *rdf.Graph
	out             io.Writer
	format          rdf.Format
	prologueWritten bool
}

// NewEmitter creates an emitter writing chunks of the given format to out.
// The graph's namespace table must be populated before the first flush.
func NewEmitter(graph *rdf.Graph, out io.Writer, format rdf.Format) *Emitter {
	return &Emitter{graph: graph, out: out, format: format}
}

// Emit serializes one flushed triple set and writes the chunk to the sink.
func (e *Emitter) Emit(triples []rdf.Triple) error {
	for _, t := range triples {
		e.graph.Add(t)
	}
	doc, err := e.graph.Serialize(e.format)
	if err != nil {
		return err
	}
	if e.format == rdf.FormatTurtle && e.prologueWritten {
		// A document with no prologue has no separator; keep it whole.
		if _, body, found := strings.Cut(doc, "\n\n"); found {
			doc = body
		}
	} else {
		e.prologueWritten = true
	}
	if _, err := io.WriteString(e.out, strings.TrimSpace(doc)); err != nil {
		return err
	}
	e.graph.Clear()
	return nil
}
