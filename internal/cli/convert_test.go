package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nameQuery = `PREFIX ex: <http://example.com/>
CONSTRUCT { ex:thing ex:name ?name } WHERE {}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runConvertCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewConvertCommand(&RootOptions{})
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if stdin != "" {
		cmd.SetIn(bytes.NewBufferString(stdin))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestConvertTurtle(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)
	inputPath := writeFile(t, "in.csv", "name\nalice\nbob\n")

	out, _, err := runConvertCmd(t, "", queryPath, inputPath)
	require.NoError(t, err)

	want := "@prefix ex: <http://example.com/> .\n\n" +
		"ex:thing ex:name \"alice\" ." +
		"ex:thing ex:name \"bob\" ."
	assert.Equal(t, want, out)
}

func TestConvertNTriples(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)
	inputPath := writeFile(t, "in.csv", "name\nalice\n")

	out, _, err := runConvertCmd(t, "", "--ntriples", queryPath, inputPath)
	require.NoError(t, err)

	assert.Equal(t, "<http://example.com/thing> <http://example.com/name> \"alice\" .", out)
}

func TestConvertFromStdin(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)

	out, _, err := runConvertCmd(t, "name\ncarol\n", queryPath)
	require.NoError(t, err)

	assert.Contains(t, out, "ex:thing ex:name \"carol\" .")
}

func TestConvertDedupWindowSingleChunk(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)
	inputPath := writeFile(t, "in.csv", "name\nalice\nbob\n")

	out, _, err := runConvertCmd(t, "", "--dedup", "10", queryPath, inputPath)
	require.NoError(t, err)

	// Both rows fit inside the window, so a single terminal flush emits
	// one document with statement-per-line layout.
	want := "@prefix ex: <http://example.com/> .\n\n" +
		"ex:thing ex:name \"alice\" .\n" +
		"ex:thing ex:name \"bob\" ."
	assert.Equal(t, want, out)
}

func TestConvertDedupRemovesDuplicates(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)
	inputPath := writeFile(t, "in.csv", "name\nalice\nalice\n")

	out, _, err := runConvertCmd(t, "", "--dedup", "10", queryPath, inputPath)
	require.NoError(t, err)

	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("alice")))
}

func TestConvertTab(t *testing.T) {
	query := `PREFIX ex: <http://example.com/>
CONSTRUCT { ex:thing ex:pair ?a } WHERE {}
`
	queryPath := writeFile(t, "q.rq", query)
	inputPath := writeFile(t, "in.tsv", "a\tb\nx\ty\n")

	out, _, err := runConvertCmd(t, "", "--tab", queryPath, inputPath)
	require.NoError(t, err)

	assert.Contains(t, out, "ex:thing ex:pair \"x\" .")
}

func TestConvertNoHeaderRow(t *testing.T) {
	query := `PREFIX ex: <http://example.com/>
CONSTRUCT { ex:thing ex:first ?a ; ex:second ?b } WHERE {}
`
	queryPath := writeFile(t, "q.rq", query)
	inputPath := writeFile(t, "in.csv", "x,y\n")

	out, _, err := runConvertCmd(t, "", "-H", queryPath, inputPath)
	require.NoError(t, err)

	assert.Contains(t, out, "ex:thing ex:first \"x\" .")
	assert.Contains(t, out, "ex:thing ex:second \"y\" .")
}

func TestConvertCustomDelimiter(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)
	inputPath := writeFile(t, "in.txt", "name;extra\nalice;1\n")

	out, _, err := runConvertCmd(t, "", "-d", ";", queryPath, inputPath)
	require.NoError(t, err)

	assert.Contains(t, out, "ex:thing ex:name \"alice\" .")
}

func TestConvertEncoding(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)
	inputPath := filepath.Join(t.TempDir(), "in.csv")
	// "ren\xe9" is "rené" in ISO-8859-1.
	require.NoError(t, os.WriteFile(inputPath, []byte("name\nren\xe9\n"), 0o644))

	out, _, err := runConvertCmd(t, "", "--encoding", "ISO-8859-1", queryPath, inputPath)
	require.NoError(t, err)

	assert.Contains(t, out, "ex:thing ex:name \"rené\" .")
}

func TestConvertUnknownEncoding(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)
	inputPath := writeFile(t, "in.csv", "name\nalice\n")

	_, _, err := runConvertCmd(t, "", "--encoding", "no-such-charset", queryPath, inputPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConvertNegativeDedup(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)

	_, _, err := runConvertCmd(t, "name\n", "--dedup", "-1", queryPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorContains(t, err, "must be non-negative")
}

func TestConvertBadDelimiterValue(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)

	_, _, err := runConvertCmd(t, "name\n", "-d", "semicolon", queryPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorContains(t, err, "comma, tab")
}

func TestConvertMissingQueryFile(t *testing.T) {
	_, _, err := runConvertCmd(t, "name\n", filepath.Join(t.TempDir(), "missing.rq"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConvertInvalidQuery(t *testing.T) {
	queryPath := writeFile(t, "q.rq", "SELECT * WHERE { ?s ?p ?o }\n")

	_, _, err := runConvertCmd(t, "name\n", queryPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConvertScannerErrorFailsRun(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)
	inputPath := writeFile(t, "in.csv", "name\n\"unterminated\n")

	_, _, err := runConvertCmd(t, "", queryPath, inputPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorContains(t, err, "conversion failed")
}

func TestConvertConfigDefaults(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)
	inputPath := writeFile(t, "in.txt", "name|extra\nalice|1\n")
	configPath := writeFile(t, "tarql.yaml", "delimiter: \"|\"\nntriples: true\n")

	out, _, err := runConvertCmd(t, "", "--config", configPath, queryPath, inputPath)
	require.NoError(t, err)

	assert.Contains(t, out, "<http://example.com/thing> <http://example.com/name> \"alice\" .")
}

func TestConvertFlagsOverrideConfig(t *testing.T) {
	queryPath := writeFile(t, "q.rq", nameQuery)
	inputPath := writeFile(t, "in.csv", "name\nalice\n")
	configPath := writeFile(t, "tarql.yaml", "delimiter: \"|\"\n")

	out, _, err := runConvertCmd(t, "", "--config", configPath, "-d", ",", queryPath, inputPath)
	require.NoError(t, err)

	assert.Contains(t, out, "ex:thing ex:name \"alice\" .")
}
