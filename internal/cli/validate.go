package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tarql/internal/query"
)

// ValidationResult holds query validation results.
type ValidationResult struct {
	Valid    bool `json:"valid"`
	Prefixes int  `json:"prefixes"`
	Patterns int  `json:"patterns"`
}

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	JSON bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <query>",
		Short: "Validate a query without converting anything",
		Long: `Validate a CONSTRUCT query file without reading any input rows.

Checks the prologue and template syntax and reports the position of the
first error. Faster than a dry conversion for development feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "report results as JSON")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		JSON:   opts.JSON,
		Writer: cmd.OutOrStdout(),
	}

	src, err := os.ReadFile(path)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read query", err)
	}

	q, err := query.Parse(string(src))
	if err != nil {
		var syntaxErr *query.SyntaxError
		if errors.As(err, &syntaxErr) {
			_ = formatter.Error(ErrCodeSyntax, syntaxErr.Msg, map[string]int{
				"line": syntaxErr.Line,
				"col":  syntaxErr.Col,
			})
		} else {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		}
		return WrapExitError(ExitFailure, "query validation failed", err)
	}

	result := ValidationResult{
		Valid:    true,
		Prefixes: len(q.Prefixes()),
		Patterns: q.TemplateSize(),
	}
	if opts.JSON {
		return formatter.Success(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Query OK: %d prefix(es), %d template pattern(s)\n",
		result.Prefixes, result.Patterns)
	return nil
}
