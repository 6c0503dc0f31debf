package words

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seg struct {
	Kind Kind
	Text string
}

func simplify(segs []Segment) []seg {
	out := make([]seg, len(segs))
	for i, s := range segs {
		out[i] = seg{s.Kind, s.Text}
	}
	return out
}

func join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	W := func(s string) seg { return seg{Word, s} }
	S := func(s string) seg { return seg{Separator, s} }

	tests := []struct {
		name string
		in   string
		want []seg
	}{
		{"empty", "", []seg{}},
		{"sentence", "The Café is old.", []seg{W("The"), S(" "), W("Café"), S(" "), W("is"), S(" "), W("old"), S(".")}},
		{"contraction", "don't", []seg{W("don"), S("'"), W("t")}},
		{"curly apostrophe", "it’s", []seg{W("it"), S("’"), W("s")}},
		{"hyphen", "well-known", []seg{W("well"), S("-"), W("known")}},
		{"slash", "and/or", []seg{W("and"), S("/"), W("or")}},
		{"em dash", "yes—no", []seg{W("yes"), S("—"), W("no")}},
		{"quotes", `"Hello,"`, []seg{S(`"`), W("Hello"), S(","), S(`"`)}},
		{"parentheses", "(born 1990)", []seg{S("("), W("born"), S(" "), W("1990"), S(")")}},
		{"inner dot kept", "U.S. army", []seg{W("U.S"), S("."), S(" "), W("army")}},
		{"whitespace runs", "a \t\n b", []seg{W("a"), S(" \t\n "), W("b")}},
		{"pure punctuation", "...", []seg{S("...")}},
		{"leading and trailing spaces", "  x  ", []seg{S("  "), W("x"), S("  ")}},
		{"trailing mark stays with word", "café.", []seg{W("café"), S(".")}},
		{"double delimiter", "a--b", []seg{W("a"), S("-"), S("-"), W("b")}},
		{"devanagari vowel sign", "हिन्दी x", []seg{W("हिन्दी"), S(" "), W("x")}},
		{"bengali vowel sign", "ভাষা.", []seg{W("ভাষা"), S(".")}},
		{"tamil virama", "தமிழ்", []seg{W("தமிழ்")}},
		{"catalan middle dot", "col·lecció", []seg{W("col·lecció")}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Tokenize(tt.in)
			if diff := cmp.Diff(tt.want, simplify(got)); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
			assert.Equal(t, tt.in, join(got))
		})
	}
}

func TestTokenize_OffsetsAndOrdinals(t *testing.T) {
	t.Parallel()

	in := "Élan, don't stop"
	segs := Tokenize(in)
	require.NotEmpty(t, segs)

	ordinal := 0
	for _, s := range segs {
		assert.NotEmpty(t, s.Text)
		assert.Equal(t, s.Text, in[s.Offset:s.Offset+len(s.Text)])
		if s.Kind == Word {
			assert.Equal(t, ordinal, s.Ordinal)
			ordinal++
		} else {
			assert.Equal(t, -1, s.Ordinal)
		}
	}
	assert.Equal(t, []string{"Élan", "don", "t", "stop"}, WordTexts(segs))
}

func TestTokenize_InvalidUTF8(t *testing.T) {
	t.Parallel()

	in := "ab\xffcd ef"
	assert.Equal(t, in, join(Tokenize(in)))
}

func FuzzTokenize(f *testing.F) {
	f.Add("The Café is old.")
	f.Add("don't")
	f.Add("")
	f.Add("  (Python, programming language) — née O’Brien/Smith ")
	f.Add("\xff\xfe")
	f.Add("हिन्दी ভাষা தமிழ் col·lecció")

	f.Fuzz(func(t *testing.T, in string) {
		segs := Tokenize(in)
		if got := join(segs); got != in {
			t.Fatalf("reconstruction mismatch: %q != %q", got, in)
		}
		for _, s := range segs {
			if s.Text == "" {
				t.Fatal("empty segment")
			}
			if s.Kind == Word && Clean(s.Text) == "" {
				t.Fatalf("word segment %q has no word runes", s.Text)
			}
		}
		if n := Normalize(in); Normalize(n) != n {
			t.Fatalf("Normalize not idempotent for %q", in)
		}
	})
}
