package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeKey lower-cases a human label and joins its words with
// underscores, "Magic 2010" becomes "magic_2010".
func NormalizeKey(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	return whitespaceRegex.ReplaceAllString(label, "_")
}

// NormalizeName lower-cases and strips all whitespace, used for comparing
// names that upstream renders inconsistently.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	return whitespaceRegex.ReplaceAllString(name, "")
}

// MatchName reports whether name equals target once both are normalized.
func MatchName(name, target string) bool {
	return NormalizeName(name) == NormalizeName(target)
}
