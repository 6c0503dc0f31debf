package game

import (
	"regexp"
	"strings"

	"github.com/robalobadob/wikiguess/internal/words"
)

var (
	parenthetical  = regexp.MustCompile(`\s*\(.*?\)`)
	trailingClause = regexp.MustCompile(`\s*,.*$`)
)

// normalizeTitle normalizes s and collapses inner whitespace runs.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(words.Normalize(s)), " ")
}

// SimplifyTitle normalizes a title and drops parenthetical qualifiers and any
// trailing comma clause: "Paris, Texas" → "paris", "Python (programming language)" → "python".
func SimplifyTitle(title string) string {
	t := normalizeTitle(title)
	t = parenthetical.ReplaceAllString(t, "")
	t = trailingClause.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}

// titleMatcher holds the precomputed accepted forms of a round title.
type titleMatcher struct {
	accepted map[string]struct{}
}

func newTitleMatcher(title string) titleMatcher {
	m := titleMatcher{accepted: make(map[string]struct{}, 3)}
	add := func(s string) {
		if s != "" {
			m.accepted[s] = struct{}{}
		}
	}
	simple := SimplifyTitle(title)
	add(normalizeTitle(title))
	add(simple)
	if rest, ok := strings.CutPrefix(simple, "the "); ok {
		add(strings.TrimSpace(rest))
	}
	return m
}

func (m titleMatcher) match(guess string) bool {
	_, ok := m.accepted[normalizeTitle(guess)]
	return ok
}

// TitleMatches reports whether guess counts as guessing title.
func TitleMatches(guess, title string) bool {
	return newTitleMatcher(title).match(guess)
}
