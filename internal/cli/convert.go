package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/roach88/tarql/internal/engine"
	"github.com/roach88/tarql/internal/query"
	"github.com/roach88/tarql/internal/rdf"
	"github.com/roach88/tarql/internal/tabular"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Delimiter  string
	Tab        bool
	QuoteChar  string
	EscapeChar string
	Dedup      int
	NTriples   bool
	NoHeader   bool
	Encoding   string
	Config     string
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <query> [input]",
		Short: "Convert CSV/TSV input to RDF",
		Long: `Convert delimited tabular input to RDF.

The query file holds a SPARQL CONSTRUCT template that is evaluated once
per input row, with each column bound as a query variable. Triples are
accumulated, deduplicated within the configured window, and streamed to
standard output as Turtle (default) or N-Triples.

When the input file is omitted, rows are read from standard input.

Example:
  tarql convert mapping.rq data.csv
  tarql convert --tab --dedup 1000 mapping.rq data.tsv
  cat data.csv | tarql convert -H mapping.rq`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Delimiter, "delimiter", "d", "comma", "field delimiter (single char, or comma|tab)")
	cmd.Flags().BoolVarP(&opts.Tab, "tab", "t", false, "input is tab-separated (TSV)")
	cmd.Flags().StringVarP(&opts.EscapeChar, "escapechar", "p", "backslash", "escape character (single char, or backslash|none)")
	cmd.Flags().StringVar(&opts.QuoteChar, "quotechar", "doublequote", "quote character (single char, or singlequote|doublequote|none)")
	cmd.Flags().IntVar(&opts.Dedup, "dedup", 0, "window size in which to remove duplicate triples")
	cmd.Flags().BoolVar(&opts.NTriples, "ntriples", false, "emit N-Triples (default is Turtle)")
	cmd.Flags().BoolVarP(&opts.NoHeader, "no-header-row", "H", false, "input has no header row; use variable names ?a, ?b, ...")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", "", "IANA charset name of the input (default UTF-8)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "YAML file with conversion defaults")
	cmd.MarkFlagsMutuallyExclusive("delimiter", "tab")

	return cmd
}

func runConvert(opts *ConvertOptions, args []string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	if opts.Config != "" {
		defaults, err := LoadDefaults(opts.Config)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		applyDefaults(opts, defaults, cmd)
	}

	dialect, err := resolveDialect(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid input syntax flags", err)
	}
	if opts.Dedup < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid --dedup %d: must be non-negative", opts.Dedup))
	}

	querySrc, err := os.ReadFile(args[0])
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read query", err)
	}
	q, err := query.Parse(string(querySrc))
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid query", err)
	}
	slog.Debug("query parsed", "prefixes", len(q.Prefixes()), "patterns", q.TemplateSize())

	input, closeInput, err := openInput(args, cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open input", err)
	}
	defer closeInput()

	if opts.Encoding != "" {
		input, err = decodeCharset(input, opts.Encoding)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --encoding", err)
		}
	}

	var rows engine.RowSource
	var binder engine.Binder
	if opts.NoHeader {
		rows = tabular.NewHeaderlessReader(input, dialect)
		binder = tabular.NewSyntheticBindingBuilder()
	} else {
		rows = tabular.NewReader(input, dialect)
		binder = tabular.NewBindingBuilder()
	}

	// Transfer namespaces from the query to the store for serialization.
	graph := rdf.NewGraph()
	for prefix, ns := range q.Prefixes() {
		graph.Bind(prefix, ns)
	}

	format := rdf.FormatTurtle
	if opts.NTriples {
		format = rdf.FormatNTriples
	}
	emitter := engine.NewEmitter(graph, cmd.OutOrStdout(), format)
	eng := engine.New(rows, binder, q, emitter, engine.WithDedupWindow(opts.Dedup))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := eng.Run(ctx); err != nil {
		return WrapExitError(ExitFailure, "conversion failed", err)
	}
	return nil
}

// applyDefaults copies config file values into options for every flag the
// user did not set explicitly.
func applyDefaults(opts *ConvertOptions, d *Defaults, cmd *cobra.Command) {
	flags := cmd.Flags()
	if d.Delimiter != "" && !flags.Changed("delimiter") && !flags.Changed("tab") {
		opts.Delimiter = d.Delimiter
	}
	if d.QuoteChar != "" && !flags.Changed("quotechar") {
		opts.QuoteChar = d.QuoteChar
	}
	if d.EscapeChar != "" && !flags.Changed("escapechar") {
		opts.EscapeChar = d.EscapeChar
	}
	if d.Encoding != "" && !flags.Changed("encoding") {
		opts.Encoding = d.Encoding
	}
	if d.Dedup != nil && !flags.Changed("dedup") {
		opts.Dedup = *d.Dedup
	}
	if d.NTriples != nil && !flags.Changed("ntriples") {
		opts.NTriples = *d.NTriples
	}
	if d.NoHeader != nil && !flags.Changed("no-header-row") {
		opts.NoHeader = *d.NoHeader
	}
}

func resolveDialect(opts *ConvertOptions) (tabular.Dialect, error) {
	var dialect tabular.Dialect

	if opts.Tab {
		dialect.Comma = '\t'
	} else {
		comma, err := parseCharFlag("delimiter", opts.Delimiter, map[string]rune{
			"comma": ',',
			"tab":   '\t',
		})
		if err != nil {
			return tabular.Dialect{}, err
		}
		dialect.Comma = comma
	}

	quote, err := parseCharFlag("quote char", opts.QuoteChar, map[string]rune{
		"singlequote": '\'',
		"doublequote": '"',
		"none":        0,
	})
	if err != nil {
		return tabular.Dialect{}, err
	}
	dialect.Quote = quote

	escape, err := parseCharFlag("escape char", opts.EscapeChar, map[string]rune{
		"backslash": '\\',
		"none":      0,
	})
	if err != nil {
		return tabular.Dialect{}, err
	}
	dialect.Escape = escape

	return dialect, nil
}

// parseCharFlag resolves a flag that accepts a single character or one of
// a set of spelled-out aliases.
func parseCharFlag(name, value string, aliases map[string]rune) (rune, error) {
	if r, ok := aliases[value]; ok {
		return r, nil
	}
	runes := []rune(value)
	if len(runes) == 1 {
		return runes[0], nil
	}
	words := make([]string, 0, len(aliases))
	for word := range aliases {
		words = append(words, word)
	}
	sort.Strings(words)
	return 0, fmt.Errorf("%q is not a valid %s: not a single character or one of %s",
		value, name, strings.Join(words, ", "))
}

func openInput(args []string, cmd *cobra.Command) (io.Reader, func(), error) {
	if len(args) < 2 {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[1])
	if err != nil {
		return nil, nil, err
	}
	return f, func() {
		if cerr := f.Close(); cerr != nil {
			slog.Error("error closing input", "error", cerr)
		}
	}, nil
}

// decodeCharset wraps the input with a decoder for the named IANA charset.
func decodeCharset(r io.Reader, name string) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q has no decoder", name)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
