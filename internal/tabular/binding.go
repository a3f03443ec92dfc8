package tabular

import "github.com/roach88/tarql/internal/rdf"

// BindingBuilder converts raw rows into query-variable bindings.
//
// The header mapping (raw column name to sanitized variable name) is
// computed lazily from the first row and cached for the rest of the run.
// Rows whose column names drift later in the stream reuse the stale
// mapping; columns unknown to the first row are dropped. This mirrors the
// one-shot header handling of the input reader and is deliberate.
//
// In synthetic mode the mapping is the identity function: generated names
// are already valid variable names, including names first seen on later,
// wider rows.
type BindingBuilder struct {
	synthetic bool
	mapping   map[string]string
}

// NewBindingBuilder creates a builder for header-driven input.
func NewBindingBuilder() *BindingBuilder {
	return &BindingBuilder{}
}

// NewSyntheticBindingBuilder creates a builder for header-less input, where
// column identifiers pass through unchanged.
func NewSyntheticBindingBuilder() *BindingBuilder {
	return &BindingBuilder{synthetic: true}
}

// Bind returns the query-variable binding for one row. Cell values bind as
// plain literals with no type inference. Absent cells stay absent: the
// evaluator sees the variable as unbound, not bound to an empty value.
func (b *BindingBuilder) Bind(row Row) map[string]rdf.Term {
	binding := make(map[string]rdf.Term, len(row.Columns))
	if b.synthetic {
		for _, name := range row.Columns {
			if value, ok := row.Values[name]; ok {
				binding[name] = rdf.PlainLiteral(value)
			}
		}
		return binding
	}

	if b.mapping == nil {
		b.mapping = make(map[string]string, len(row.Columns))
		for _, name := range row.Columns {
			b.mapping[name] = SanitizeName(name)
		}
	}
	for _, name := range row.Columns {
		value, ok := row.Values[name]
		if !ok {
			continue
		}
		variable, ok := b.mapping[name]
		if !ok {
			continue
		}
		binding[variable] = rdf.PlainLiteral(value)
	}
	return binding
}
