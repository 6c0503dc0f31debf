// internal/source/source.go
//
// Article sources for new rounds. The engine only ever sees the plain
// title/text/hint a source returns; where the text came from is decided here.
//
// Sources:
//   - Catalogue:   bundled or file-based JSON list, random or by index.
//   - Readability: a web page allowed by a Policy, reduced to its main text.
//   - Wikipedia:   a random article linked in enough languages.
//   - Inline:      an article supplied by the caller.

package source

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/robalobadob/wikiguess/internal/words"
)

var (
	ErrEmptyCatalogue = errors.New("source: catalogue is empty")
	ErrNoContent      = errors.New("source: article has no text")
)

// Article is a round's input.
type Article struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Hint  string `json:"hint,omitempty"`
}

// Source produces articles.
type Source interface {
	Next(ctx context.Context) (Article, error)
}

// Inline always returns the same article.
type Inline Article

func (a Inline) Next(context.Context) (Article, error) {
	if strings.TrimSpace(a.Text) == "" && strings.TrimSpace(a.Title) == "" {
		return Article{}, ErrNoContent
	}
	return Article(a), nil
}

var parenGroup = regexp.MustCompile(`\s*\([^)]*\)`)

// StripParentheticals removes "(...)" groups and the whitespace before them,
// which in encyclopedia text mostly hold pronunciations and dates.
func StripParentheticals(text string) string {
	return parenGroup.ReplaceAllString(text, "")
}

// DefaultHint is used when an article carries no hint of its own. It counts
// distinct word keys across title and text, the same keys a round indexes
// before any common-word exclusion.
func DefaultHint(a Article) string {
	keys := make(map[string]struct{})
	for _, text := range []string{a.Title, a.Text} {
		for _, s := range words.Tokenize(text) {
			if s.Kind != words.Word {
				continue
			}
			if k := words.Key(s.Text); k != "" {
				keys[k] = struct{}{}
			}
		}
	}
	if len(keys) == 1 {
		return "This article has 1 word to find"
	}
	return fmt.Sprintf("This article has %d words to find", len(keys))
}

// Prepare applies the body pre-processing and fills in a missing hint.
func Prepare(a Article, stripParens bool) Article {
	if stripParens {
		a.Text = StripParentheticals(a.Text)
	}
	a.Title = strings.TrimSpace(a.Title)
	if strings.TrimSpace(a.Hint) == "" {
		a.Hint = DefaultHint(a)
	}
	return a
}
