package surface

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	unionSpacingRe = regexp.MustCompile(`\s*\|\s*`)
	interSpacingRe = regexp.MustCompile(`\s*&\s*`)
)

// NormalizeType canonicalizes a type expression for equality comparison:
// whitespace runs collapse to single spaces and union/intersection
// operators get exactly one space on each side.
//
// Equality is syntactic, not semantic: `string | number` and
// `number | string` are different types under this normalization. This is
// a deliberate trade against building a type checker; occasional
// over-reporting is expected and surfaced to reviewers as such.
func NormalizeType(typeExpr string) string {
	t := whitespaceRe.ReplaceAllString(typeExpr, " ")
	t = unionSpacingRe.ReplaceAllString(t, " | ")
	t = interSpacingRe.ReplaceAllString(t, " & ")
	return strings.TrimSpace(t)
}

// TypesEqual reports whether two type expressions are equal after
// normalization.
func TypesEqual(a, b string) bool {
	return NormalizeType(a) == NormalizeType(b)
}
