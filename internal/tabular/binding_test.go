package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tarql/internal/rdf"
)

func TestBindingBuilder_SanitizedNames(t *testing.T) {
	b := NewBindingBuilder()
	row := Row{
		Columns: []string{"first name", "age"},
		Values:  map[string]string{"first name": "alice", "age": "30"},
	}

	binding := b.Bind(row)

	require.Len(t, binding, 2)
	assert.Equal(t, rdf.PlainLiteral("alice"), binding["first_name"])
	assert.Equal(t, rdf.PlainLiteral("30"), binding["age"])
}

func TestBindingBuilder_UnicodeHeaderBindsUnchanged(t *testing.T) {
	b := NewBindingBuilder()
	row := Row{
		Columns: []string{"café"},
		Values:  map[string]string{"café": "latte"},
	}

	binding := b.Bind(row)

	assert.Equal(t, rdf.PlainLiteral("latte"), binding["café"])
}

func TestBindingBuilder_AbsentValuesStayUnbound(t *testing.T) {
	b := NewBindingBuilder()
	row := Row{
		Columns: []string{"a", "b"},
		Values:  map[string]string{"a": "1"},
	}

	binding := b.Bind(row)

	_, ok := binding["b"]
	assert.False(t, ok, "absent cell must leave the variable unbound")
}

func TestBindingBuilder_MappingFixedFromFirstRow(t *testing.T) {
	b := NewBindingBuilder()

	first := Row{
		Columns: []string{"name"},
		Values:  map[string]string{"name": "alice"},
	}
	b.Bind(first)

	// A later row with a drifted column name reuses the stale mapping:
	// the unknown column is dropped, not re-sanitized.
	drifted := Row{
		Columns: []string{"surname"},
		Values:  map[string]string{"surname": "smith"},
	}
	binding := b.Bind(drifted)

	assert.Empty(t, binding)
}

func TestBindingBuilder_EmptyStringBinds(t *testing.T) {
	b := NewBindingBuilder()
	row := Row{
		Columns: []string{"a"},
		Values:  map[string]string{"a": ""},
	}

	binding := b.Bind(row)

	// An empty cell is present, so it binds as an empty literal.
	assert.Equal(t, rdf.PlainLiteral(""), binding["a"])
}

func TestBindingBuilder_WhitespaceOnlyCellBinds(t *testing.T) {
	b := NewBindingBuilder()
	row := Row{
		Columns: []string{"a"},
		Values:  map[string]string{"a": "  "},
	}

	binding := b.Bind(row)

	// Whitespace-only values are present values: they bind verbatim
	// rather than being filtered out as unbound.
	assert.Equal(t, rdf.PlainLiteral("  "), binding["a"])
}

func TestSyntheticBindingBuilder_Identity(t *testing.T) {
	b := NewSyntheticBindingBuilder()

	first := Row{
		Columns: []string{"a", "b"},
		Values:  map[string]string{"a": "1", "b": "2"},
	}
	binding := b.Bind(first)
	assert.Equal(t, rdf.PlainLiteral("1"), binding["a"])

	// Wider rows introduce new synthetic names; identity mode accepts
	// them even after the first row.
	wider := Row{
		Columns: []string{"a", "b", "c"},
		Values:  map[string]string{"a": "3", "b": "4", "c": "5"},
	}
	binding = b.Bind(wider)
	assert.Equal(t, rdf.PlainLiteral("5"), binding["c"])
}
