package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults holds conversion settings loaded from an optional YAML config
// file. Every field is optional; flags set explicitly on the command line
// win over config file values.
type Defaults struct {
	// Delimiter is the field delimiter: a single character or one of the
	// aliases "comma" / "tab".
	Delimiter string `yaml:"delimiter,omitempty"`

	// QuoteChar is the quote character: a single character or one of
	// "singlequote" / "doublequote" / "none".
	QuoteChar string `yaml:"quotechar,omitempty"`

	// EscapeChar is the escape character: a single character or one of
	// "backslash" / "none".
	EscapeChar string `yaml:"escapechar,omitempty"`

	// Encoding is the IANA charset name of the input, e.g. "windows-1252".
	// Empty means UTF-8.
	Encoding string `yaml:"encoding,omitempty"`

	// Dedup is the dedup window size. Zero flushes every productive row.
	Dedup *int `yaml:"dedup,omitempty"`

	// NTriples selects line-oriented N-Triples output instead of Turtle.
	NTriples *bool `yaml:"ntriples,omitempty"`

	// NoHeader marks the input as having no header row.
	NoHeader *bool `yaml:"no_header,omitempty"`
}

// LoadDefaults reads and decodes a YAML config file.
func LoadDefaults(path string) (*Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &d, nil
}
