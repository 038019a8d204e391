package common

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NFKC folds the fullwidth CJK parens (U+FF08/U+FF09) to ASCII, so one
// pattern covers both bracket variants.
var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// NormalizeName canonicalizes an entity name for comparison. It folds the
// string to NFKC, lower-cases it, removes parenthesized qualifiers (ASCII and
// CJK bracket variants) and collapses whitespace runs to single spaces.
// Normalized names are comparison keys only; display and LLM prompts keep the
// original string.
func NormalizeName(name string) string {
	name = norm.NFKC.String(name)
	name = strings.ToLower(strings.TrimSpace(name))
	name = parenthetical.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

// NormalizeAll normalizes every name in the slice, preserving order.
func NormalizeAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeName(n)
	}
	return out
}
