package grading

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes free-text input for comparison against accepted
// answers: trims surrounding whitespace, lowercases, and strips combining
// diacritical marks via NFD decomposition, so "café" and "cafe" compare
// equal. Case and diacritics are the only folded dimensions; this is not a
// fuzzy match and applies no locale-specific collation.
func Normalize(text string) string {
	// The chained transformer is stateful, so build it per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
