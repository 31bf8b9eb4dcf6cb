package importer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/zeebo/xxh3"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var wsRun = regexp.MustCompile(`\s+`)

// deaccent strips combining marks so "Škoda" and "Skoda" normalize to the
// same key. Transformers carry state, so each call builds a fresh chain.
func deaccent() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// CleanField trims a value and collapses internal whitespace runs to a
// single space. Applied to make and model before both storage and key
// construction.
func CleanField(s string) string {
	return wsRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// foldKeyPart produces the canonical lookup form of a make or model:
// cleaned, diacritic-folded, lower-cased.
func foldKeyPart(s string) string {
	folded, _, err := transform.String(deaccent(), CleanField(s))
	if err != nil {
		folded = CleanField(s)
	}
	return strings.ToLower(folded)
}

// Key hashes the normalized natural key (make, model, year-as-text) used for
// duplicate detection. Year is compared as trimmed text, not as a number.
func Key(make, model, year string) uint64 {
	return xxh3.HashString(foldKeyPart(make) + "\x00" + foldKeyPart(model) + "\x00" + strings.TrimSpace(year))
}
