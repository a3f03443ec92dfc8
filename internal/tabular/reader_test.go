package tabular

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *Reader) []Row {
	t.Helper()
	var rows []Row
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestReader_HeaderMode(t *testing.T) {
	r := NewReader(strings.NewReader("name,age\nalice,30\nbob,25\n"), DefaultDialect())
	rows := readAll(t, r)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"name", "age"}, rows[0].Columns)
	assert.Equal(t, map[string]string{"name": "alice", "age": "30"}, rows[0].Values)
	assert.Equal(t, map[string]string{"name": "bob", "age": "25"}, rows[1].Values)
}

func TestReader_BlankRowSkipped(t *testing.T) {
	r := NewReader(strings.NewReader("a,b\n\n1,2\n"), DefaultDialect())
	rows := readAll(t, r)

	require.Len(t, rows, 1, "blank line must be skipped, not produce a row")
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, rows[0].Values)
}

func TestReader_ShortRowLeavesColumnsAbsent(t *testing.T) {
	r := NewReader(strings.NewReader("a,b,c\n1,2\n"), DefaultDialect())
	rows := readAll(t, r)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "b"}, rows[0].Columns)
	_, ok := rows[0].Values["c"]
	assert.False(t, ok, "missing cell must be key-absent, not empty")
}

func TestReader_ExtraValuesIgnored(t *testing.T) {
	r := NewReader(strings.NewReader("a,b\n1,2,3\n"), DefaultDialect())
	rows := readAll(t, r)

	require.Len(t, rows, 1)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, rows[0].Values)
}

func TestReader_HeaderlessNaming(t *testing.T) {
	r := NewHeaderlessReader(strings.NewReader("1,2,3\n4,5,6\n"), DefaultDialect())
	rows := readAll(t, r)

	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, rows[0].Values)
	assert.Equal(t, map[string]string{"a": "4", "b": "5", "c": "6"}, rows[1].Values)
}

func TestReader_HeaderlessVaryingWidths(t *testing.T) {
	r := NewHeaderlessReader(strings.NewReader("1,2\n3,4,5,6\n7\n"), DefaultDialect())
	rows := readAll(t, r)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b"}, rows[0].Columns)
	assert.Equal(t, []string{"a", "b", "c", "d"}, rows[1].Columns)
	assert.Equal(t, []string{"a"}, rows[2].Columns)
	assert.Equal(t, "6", rows[1].Values["d"])
}

func TestReader_HeaderlessBlankRowSkipped(t *testing.T) {
	r := NewHeaderlessReader(strings.NewReader("1,2\n\n3,4\n"), DefaultDialect())
	rows := readAll(t, r)
	require.Len(t, rows, 2)
}

func TestReader_OnlyHeader(t *testing.T) {
	r := NewReader(strings.NewReader("a,b\n"), DefaultDialect())
	rows := readAll(t, r)
	assert.Empty(t, rows)
}

func TestReader_ParseErrorPropagates(t *testing.T) {
	r := NewReader(strings.NewReader("a,b\n\"broken\n"), DefaultDialect())
	_, err := r.Next()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}
