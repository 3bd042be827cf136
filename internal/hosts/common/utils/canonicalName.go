package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// CanonicalHostName returns a host name in canonical form:
// - Trimmed of surrounding whitespace
// - Lowercased
// - No trailing dots
// - Non-ASCII labels mapped to their punycode form
//
// A single leading dot is preserved verbatim: the override table uses it
// as the subdomain-wildcard marker.
func CanonicalHostName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	// remove all trailing dots
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	if isASCII(name) {
		return name
	}
	wildcard := strings.HasPrefix(name, ".")
	mapped, err := idna.Lookup.ToASCII(strings.TrimPrefix(name, "."))
	if err != nil {
		// keep the lowercased original rather than dropping the entry
		return name
	}
	if wildcard {
		return "." + mapped
	}
	return mapped
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
