// internal/game/index.go
//
// WordIndex: normalized key → surface forms and word positions.
//
// Keys are kept in first-seen order alongside the map so that every
// iteration over the index (reveal-all, listings, tests) is deterministic.

package game

import (
	"sort"

	"github.com/robalobadob/wikiguess/internal/words"
)

// Entry is the index record for one key.
type Entry struct {
	Key       string
	Forms     map[string]struct{} // raw surface forms, e.g. "Café", "cafe"
	Positions map[int]struct{}    // word ordinals in the body; empty for title-only words
}

// SortedForms returns the surface forms in lexical order.
func (e *Entry) SortedForms() []string {
	out := make([]string, 0, len(e.Forms))
	for f := range e.Forms {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// SortedPositions returns the word ordinals in ascending order.
func (e *Entry) SortedPositions() []int {
	out := make([]int, 0, len(e.Positions))
	for p := range e.Positions {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Index maps keys to entries.
type Index struct {
	entries map[string]*Entry
	keys    []string
}

func newIndex() *Index {
	return &Index{entries: make(map[string]*Entry)}
}

// BuildIndex indexes every word segment of an article body.
// exclude may be nil; keys it accepts are left out of the index.
func BuildIndex(segs []words.Segment, exclude func(key string) bool) *Index {
	ix := newIndex()
	for _, s := range segs {
		if s.Kind != words.Word {
			continue
		}
		ix.add(words.Key(s.Text), s.Text, s.Ordinal, exclude)
	}
	return ix
}

// MergeTitle adds the word segments of a tokenized title to the index and
// returns their keys in title order. Title words already present keep their
// entry untouched; new ones get the title surface form and no positions.
func (ix *Index) MergeTitle(segs []words.Segment, exclude func(key string) bool) []string {
	var titleWords []string
	for _, s := range segs {
		if s.Kind != words.Word {
			continue
		}
		key := words.Key(s.Text)
		if key == "" {
			continue
		}
		titleWords = append(titleWords, key)
		if !ix.Has(key) {
			ix.add(key, s.Text, -1, exclude)
		}
	}
	return titleWords
}

// add records one occurrence; pos < 0 records the form without a position.
func (ix *Index) add(key, form string, pos int, exclude func(string) bool) {
	if key == "" || (exclude != nil && exclude(key)) {
		return
	}
	e, ok := ix.entries[key]
	if !ok {
		e = &Entry{Key: key, Forms: make(map[string]struct{}), Positions: make(map[int]struct{})}
		ix.entries[key] = e
		ix.keys = append(ix.keys, key)
	}
	e.Forms[form] = struct{}{}
	if pos >= 0 {
		e.Positions[pos] = struct{}{}
	}
}

// Lookup returns the entry for key.
func (ix *Index) Lookup(key string) (*Entry, bool) {
	e, ok := ix.entries[key]
	return e, ok
}

// Has reports whether key is indexed.
func (ix *Index) Has(key string) bool {
	_, ok := ix.entries[key]
	return ok
}

// Len is the number of distinct keys.
func (ix *Index) Len() int { return len(ix.keys) }

// Keys returns the keys in first-seen order.
func (ix *Index) Keys() []string {
	return append([]string(nil), ix.keys...)
}
