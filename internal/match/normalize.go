package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lower-cases an identifier and strips separators, so that
// "without_catchall", "without-catchall" and "WithoutCatchall" compare equal.
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
