// Package normalize provides the canonical text form used for every
// asset-name comparison and as the category-override map key.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any character outside the kept set: letters, digits,
	// space, apostrophe, hyphen, double quote.
	disallowed = regexp.MustCompile(`[^a-z0-9 '"-]+`)
	// Matches runs of whitespace.
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// curlyQuotes maps typographic quotes to their ASCII equivalents so that
// the disallowed-character strip doesn't eat them.
//
//nolint:gochecknoglobals // Static replacer
var curlyQuotes = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// Canonical converts free text to its canonical comparable form.
// "Sony A7IV", "sony a7iv", and "SONY  A7IV " all canonicalize identically.
//
// Total and idempotent; empty input yields empty output.
func Canonical(s string) string {
	s = curlyQuotes.Replace(s)

	// Decompose accented characters, then drop anything non-ASCII.
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = disallowed.ReplaceAllString(s, " ")
	s = whitespaceRuns.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}
