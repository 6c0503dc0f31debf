// internal/words/normalize.go
//
// Canonical comparison keys for article words and player guesses.
//
// A key is the lower-cased, diacritic-stripped, trimmed form of a token, so
// "Café", "CAFE" and " cafe " all collapse to "cafe". Keys are the only
// identity the game uses when matching a guess against the article.

package words

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes, drops nonspacing combining marks and recomposes.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize maps raw to its comparison key.
//
// Trimming happens last: removing a leading combining mark can expose
// whitespace, and Normalize(Normalize(s)) must equal Normalize(s).
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	return strings.TrimSpace(s)
}

// IsWordRune reports whether r counts as a word character:
// any Unicode letter or digit, or underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsMark reports whether r is a combining mark. Marks never start a word
// but belong to the word they follow, so vowel signs in scripts such as
// Devanagari or Tamil stay attached.
func IsMark(r rune) bool {
	return unicode.IsMark(r)
}

// Clean drops every character from s that is neither a word rune nor a
// combining mark.
func Clean(s string) string {
	return strings.Map(func(r rune) rune {
		if IsWordRune(r) || IsMark(r) {
			return r
		}
		return -1
	}, s)
}

// Key is the index key for a word segment's raw text: cleaned, then normalized.
// An empty key means the text carries no guessable word.
func Key(s string) string {
	return Normalize(Clean(s))
}
