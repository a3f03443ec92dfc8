package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	path := writeFile(t, "tarql.yaml",
		"delimiter: tab\nquotechar: none\ndedup: 500\nntriples: true\nno_header: true\n")

	d, err := LoadDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, "tab", d.Delimiter)
	assert.Equal(t, "none", d.QuoteChar)
	assert.Empty(t, d.EscapeChar)
	require.NotNil(t, d.Dedup)
	assert.Equal(t, 500, *d.Dedup)
	require.NotNil(t, d.NTriples)
	assert.True(t, *d.NTriples)
	require.NotNil(t, d.NoHeader)
	assert.True(t, *d.NoHeader)
}

func TestLoadDefaultsEmptyFile(t *testing.T) {
	path := writeFile(t, "tarql.yaml", "")

	d, err := LoadDefaults(path)
	require.NoError(t, err)
	assert.Nil(t, d.Dedup)
	assert.Empty(t, d.Delimiter)
}

func TestLoadDefaultsMissingFile(t *testing.T) {
	_, err := LoadDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config")
}

func TestLoadDefaultsMalformedYAML(t *testing.T) {
	path := writeFile(t, "tarql.yaml", "delimiter: [unclosed\n")
	_, err := LoadDefaults(path)
	assert.ErrorContains(t, err, "parsing config")
}
