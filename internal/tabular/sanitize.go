package tabular

import "regexp"

var invalidNameRun = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// SanitizeName maps a raw column header to a valid binding-variable name.
// Every maximal run of characters that are not a letter, digit, or
// underscore collapses to a single underscore, so "a b" and "a  b" both
// become "a_b". Letters and digits in any script pass through, matching
// Unicode word-character semantics: "café" stays "café".
func SanitizeName(raw string) string {
	return invalidNameRun.ReplaceAllString(raw, "_")
}
