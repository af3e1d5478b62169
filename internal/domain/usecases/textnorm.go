// Package usecases - textnorm.go canonicalizes query text before matching.
package usecases

import (
	"regexp"
	"strings"
)

var (
	disallowedChars = regexp.MustCompile(`[^a-z0-9+# ]+`)
	multiSpace      = regexp.MustCompile(`\s+`)
)

// synonym expands a domain term into related vocabulary. Containment is
// checked on the raw lowercase text, not at word boundaries - over-matching
// is accepted to favor recall.
type synonym struct {
	term      string
	expansion string
}

// defaultSynonyms is ordered so enriched text is identical across runs.
var defaultSynonyms = []synonym{
	{"i/o", "input output file"},
	{"io", "input output file"},
	{"exception", "try catch throw error"},
	{"overloading", "operator overload"},
	{"reference", "references alias ampersand"},
	{"dynamic", "heap new delete"},
}

// Normalize lowercases text, strips every character outside {a-z, 0-9, +, #,
// space} (keeping tokens like "c++" intact), collapses whitespace and trims.
// Total and idempotent.
func Normalize(text string) string {
	t := strings.ToLower(text)
	t = disallowedChars.ReplaceAllString(t, " ")
	t = multiSpace.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Enrich appends the expansion phrase of every synonym whose term appears in
// the lowercase raw text, then normalizes the result.
func Enrich(text string) string {
	t := strings.ToLower(text)
	enriched := t
	for _, s := range defaultSynonyms {
		if strings.Contains(t, s.term) {
			enriched += " " + s.expansion
		}
	}
	return Normalize(enriched)
}
