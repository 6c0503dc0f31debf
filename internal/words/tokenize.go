// internal/words/tokenize.go
//
// Tokenizer for article bodies and titles.
//
// Text is cut into an ordered list of segments, each either a word or a
// separator. Concatenating Segment.Text in order gives back the input byte
// for byte, which is what lets the renderer mask words without disturbing
// punctuation or spacing.
//
// Passes:
//   1. Whitespace runs become separator segments; everything between them is a chunk.
//   2. Inside a chunk, every delimiter rune (hyphens, dashes, slash, apostrophes,
//      quotes, comma, parentheses) becomes its own separator, so "don't" yields
//      "don", "'", "t" and each half is guessable on its own.
//   3. Each remaining part has its leading and trailing non-word runes peeled
//      into separators ("old." → "old", "."). A part with no word rune at all
//      is a separator verbatim.
//
// Empty parts are never emitted.

package words

import (
	"unicode"
	"unicode/utf8"
)

// Kind classifies a segment.
type Kind uint8

const (
	Separator Kind = iota
	Word
)

func (k Kind) String() string {
	if k == Word {
		return "word"
	}
	return "separator"
}

// Segment is a contiguous slice of the source text.
type Segment struct {
	Kind    Kind
	Text    string
	Offset  int // byte offset of Text in the source
	Ordinal int // position among word segments; -1 for separators
}

// delimiters are split out of a chunk one rune at a time.
var delimiters = map[rune]bool{
	'-': true, '–': true, '—': true,
	'/': true,
	'\'': true, '‘': true, '’': true,
	'"': true, '“': true, '”': true,
	',': true,
	'(': true, ')': true,
}

// IsDelimiter reports whether r splits a chunk.
func IsDelimiter(r rune) bool { return delimiters[r] }

// tokenizer accumulates segments for a single Tokenize call.
type tokenizer struct {
	text string
	segs []Segment
	next int // next word ordinal
}

// Tokenize splits text into word and separator segments.
func Tokenize(text string) []Segment {
	t := &tokenizer{text: text}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		j := i + size
		if unicode.IsSpace(r) {
			for j < len(text) {
				r2, s2 := utf8.DecodeRuneInString(text[j:])
				if !unicode.IsSpace(r2) {
					break
				}
				j += s2
			}
			t.emit(Separator, i, j)
		} else {
			for j < len(text) {
				r2, s2 := utf8.DecodeRuneInString(text[j:])
				if unicode.IsSpace(r2) {
					break
				}
				j += s2
			}
			t.chunk(i, j)
		}
		i = j
	}
	return t.segs
}

// chunk splits a whitespace-free run on delimiter runes.
func (t *tokenizer) chunk(start, end int) {
	part := start
	for i := start; i < end; {
		r, size := utf8.DecodeRuneInString(t.text[i:end])
		if IsDelimiter(r) {
			t.part(part, i)
			t.emit(Separator, i, i+size)
			part = i + size
		}
		i += size
	}
	t.part(part, end)
}

// part emits one delimiter-free piece, peeling leading and trailing
// non-word runes into separators. Combining marks of any class directly
// after the last word rune stay with the word.
func (t *tokenizer) part(start, end int) {
	if start >= end {
		return
	}
	first, last := -1, -1
	for i := start; i < end; {
		r, size := utf8.DecodeRuneInString(t.text[i:end])
		if IsWordRune(r) {
			if first < 0 {
				first = i
			}
			last = i + size
		} else if last == i && IsMark(r) {
			last = i + size
		}
		i += size
	}
	if first < 0 {
		t.emit(Separator, start, end)
		return
	}
	t.emit(Separator, start, first)
	t.emit(Word, first, last)
	t.emit(Separator, last, end)
}

func (t *tokenizer) emit(kind Kind, start, end int) {
	if start >= end {
		return
	}
	seg := Segment{Kind: kind, Text: t.text[start:end], Offset: start, Ordinal: -1}
	if kind == Word {
		seg.Ordinal = t.next
		t.next++
	}
	t.segs = append(t.segs, seg)
}

// WordTexts returns the text of every word segment, in order.
func WordTexts(segs []Segment) []string {
	var out []string
	for _, s := range segs {
		if s.Kind == Word {
			out = append(out, s.Text)
		}
	}
	return out
}
