package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldNamer_Bijection(t *testing.T) {
	f := NewFieldNamer()

	// Indices 0..25 map to a..z, then the second letter position opens.
	expected := []string{}
	for c := 'a'; c <= 'z'; c++ {
		expected = append(expected, string(c))
	}
	expected = append(expected, "aa", "ab")

	for i, want := range expected {
		assert.Equal(t, want, f.Name(i), "index %d", i)
	}
}

func TestFieldNamer_Names(t *testing.T) {
	f := NewFieldNamer()

	assert.Equal(t, []string{"a", "b", "c"}, f.Names(3))

	// A wider row extends the memo; earlier names stay assigned.
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, f.Names(5))

	// A narrower row reuses the prefix.
	assert.Equal(t, []string{"a", "b"}, f.Names(2))
}

func TestFieldNamer_NamesReturnsCopy(t *testing.T) {
	f := NewFieldNamer()

	first := f.Names(2)
	first[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, f.Names(2), "memo must not observe caller mutation")
}

func TestFieldNamer_DeepIndices(t *testing.T) {
	f := NewFieldNamer()

	assert.Equal(t, "z", f.Name(25))
	assert.Equal(t, "aa", f.Name(26))
	assert.Equal(t, "az", f.Name(51))
	assert.Equal(t, "ba", f.Name(52))
	assert.Equal(t, "zz", f.Name(701))
	assert.Equal(t, "aaa", f.Name(702))
}
