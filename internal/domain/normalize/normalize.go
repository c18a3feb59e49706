// Package normalize canonicalizes free-text player names into comparable keys.
//
// The same function is applied when indexing players and when scanning rumor
// text, so comparisons are symmetric by construction.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripper decomposes to NFD, drops combining marks, and recomposes.
var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC) //nolint:gochecknoglobals // immutable transformer

// Normalize lowercases raw, strips diacritics, and reduces it to words
// separated by single spaces. Punctuation separates words the same way
// whitespace does, so a key built from a registered name and a key built
// from scanned rumor tokens always agree: "N'Golo Kanté" and "n golo kante"
// both normalize to "n golo kante". Total over all strings: the empty
// string maps to the empty string. Idempotent.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	if out, _, err := transform.String(stripper, s); err == nil {
		s = out
	}
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	return strings.Join(words, " ")
}

// Tokens splits raw into normalized word tokens, so "¿Isco, al Betis?"
// yields ["isco", "al", "betis"].
func Tokens(raw string) []string {
	return strings.Fields(Normalize(raw))
}
