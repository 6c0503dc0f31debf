package game

import "unicode/utf8"

// commonWords are never worth guessing under the strict policy.
var commonWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "was": {}, "its": {},
	"who": {}, "has": {}, "had": {}, "his": {}, "her": {}, "this": {},
	"that": {}, "they": {}, "with": {}, "from": {},
}

// CommonWord is an exclusion predicate for WithExclude: it drops keys shorter
// than three runes and a small list of English stop words.
func CommonWord(key string) bool {
	if utf8.RuneCountInString(key) < 3 {
		return true
	}
	_, ok := commonWords[key]
	return ok
}
