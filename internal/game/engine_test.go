package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaded(t *testing.T, title, body string, opts ...Option) *Engine {
	t.Helper()
	e := NewEngine(opts...)
	e.LoadArticle(title, body, "a hint")
	require.Equal(t, StateActive, e.State())
	return e
}

func guess(t *testing.T, e *Engine, raw string) GuessKind {
	t.Helper()
	res, err := e.SubmitGuess(raw)
	require.NoError(t, err)
	return res.Kind
}

func TestEngine_NoActiveRound(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	_, err := e.SubmitGuess("anything")
	assert.ErrorIs(t, err, ErrNoActiveRound)
	assert.ErrorIs(t, e.Reveal(), ErrNoActiveRound)

	assert.Equal(t, StateNone, e.State())
	assert.False(t, e.IsRoundOver())
	assert.Nil(t, e.RenderUnits())
	assert.Zero(t, e.FoundCount())
	assert.Zero(t, e.TotalWords())
	assert.Empty(t, e.HintText())
}

func TestEngine_WordMatchWithAccents(t *testing.T) {
	t.Parallel()

	e := loaded(t, "Café Culture", "The Café is old.")
	assert.Equal(t, 5, e.TotalWords()) // the, cafe, is, old, culture
	assert.Equal(t, "a hint", e.HintText())

	res, err := e.SubmitGuess("cafe")
	require.NoError(t, err)
	assert.Equal(t, GuessWordMatch, res.Kind)
	assert.Equal(t, "cafe", res.Key)
	assert.Equal(t, 1, res.Occurrences)
	assert.Equal(t, 1, e.FoundCount())
	assert.True(t, e.Revealed("cafe"))
	assert.False(t, e.IsRoundOver())
}

func TestEngine_TitleVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		guess string
	}{
		{"Python (programming language)", "python"},
		{"The Beatles", "beatles"},
		{"The Beatles", "The Beatles"},
		{"Paris, Texas", "Paris"},
		{"São Paulo", "sao   paulo"},
		{"Python (programming language)", "Python (programming language)"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.title+"/"+tt.guess, func(t *testing.T) {
			t.Parallel()
			e := loaded(t, tt.title, "Some body text about it.")
			assert.Equal(t, GuessTitleMatch, guess(t, e, tt.guess))
			assert.Equal(t, StateWonTitle, e.State())
			assert.True(t, e.IsRoundOver())
			assert.Equal(t, e.TotalWords(), e.FoundCount())
			for _, u := range e.RenderUnits() {
				if u.Kind == UnitToken {
					assert.True(t, u.Revealed, "token %q", u.Text)
				}
			}
		})
	}
}

func TestEngine_TitleMismatch(t *testing.T) {
	t.Parallel()

	e := loaded(t, "The Beatles", "A band.")
	assert.Equal(t, GuessWordMatch, guess(t, e, "band"))
	assert.Equal(t, GuessNotFound, guess(t, e, "beetles"))
	assert.Equal(t, StateActive, e.State())
}

func TestEngine_TitleOnlyWordsAreIndexed(t *testing.T) {
	t.Parallel()

	e := loaded(t, "Quantum Physics", "It is a science.")
	entry, ok := e.Lookup("quantum")
	require.True(t, ok)
	assert.Equal(t, []string{"Quantum"}, entry.SortedForms())
	assert.Empty(t, entry.Positions)
	assert.Equal(t, []string{"quantum", "physics"}, e.TitleWords())

	assert.Equal(t, GuessWordMatch, guess(t, e, "quantum"))
	assert.Equal(t, 0, guessOccurrences(t, e, "physics"))
}

func guessOccurrences(t *testing.T, e *Engine, raw string) int {
	t.Helper()
	res, err := e.SubmitGuess(raw)
	require.NoError(t, err)
	require.Equal(t, GuessWordMatch, res.Kind)
	return res.Occurrences
}

func TestEngine_AlreadyFoundIsIdempotent(t *testing.T) {
	t.Parallel()

	e := loaded(t, "X", "red red blue")
	assert.Equal(t, GuessWordMatch, guess(t, e, "Red"))
	before := e.FoundCount()
	assert.Equal(t, GuessAlreadyFound, guess(t, e, "RED"))
	assert.Equal(t, GuessAlreadyFound, guess(t, e, " red "))
	assert.Equal(t, before, e.FoundCount())
}

func TestEngine_Rejected(t *testing.T) {
	t.Parallel()

	e := loaded(t, "X", "body")
	for _, g := range []string{"", "   ", "\t\n"} {
		assert.Equal(t, GuessRejected, guess(t, e, g), "%q", g)
	}
	assert.Zero(t, e.FoundCount())
}

func TestEngine_GibberishIsNotFound(t *testing.T) {
	t.Parallel()

	e := loaded(t, "X", "body")
	for _, g := range []string{"...", "zzz", "\xff\xfe", "́", "🙂"} {
		res, err := e.SubmitGuess(g)
		require.NoError(t, err)
		assert.Contains(t, []GuessKind{GuessNotFound, GuessRejected}, res.Kind, "%q", g)
	}
}

func TestEngine_GuessWordAsWritten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		word string
	}{
		{"devanagari", "हिन्दी x", "हिन्दी"},
		{"bengali", "ভাষা x", "ভাষা"},
		{"tamil", "தமிழ் x", "தமிழ்"},
		{"catalan middle dot", "col·lecció x", "col·lecció"},
		{"inner dot", "U.S x", "U.S"},
		{"trailing punctuation in guess", "Café x", "cafe!"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := loaded(t, "Zz Top", tt.body)
			require.Equal(t, 4, e.TotalWords()) // word, x, zz, top

			assert.Equal(t, GuessWordMatch, guess(t, e, tt.word))
			for _, g := range []string{"x", "zz", "top"} {
				assert.Equal(t, GuessWordMatch, guess(t, e, g), g)
			}
			assert.Equal(t, StateWonAllWords, e.State())
		})
	}
}

func TestEngine_Contraction(t *testing.T) {
	t.Parallel()

	e := loaded(t, "Zz", "don't")
	assert.Equal(t, GuessWordMatch, guess(t, e, "don"))

	var revealed = map[string]bool{}
	for _, u := range e.RenderUnits() {
		if u.Kind == UnitToken {
			revealed[u.Text] = u.Revealed
		}
	}
	assert.Equal(t, map[string]bool{"don": true, "t": false}, revealed)
}

func TestEngine_WinByAllWords(t *testing.T) {
	t.Parallel()

	e := loaded(t, "Sun Rise", "The sun, the SUN rise.")
	assert.Equal(t, 3, e.TotalWords())
	assert.Equal(t, GuessWordMatch, guess(t, e, "the"))
	assert.Equal(t, GuessWordMatch, guess(t, e, "sun"))
	assert.Equal(t, StateActive, e.State())
	assert.Equal(t, GuessWordMatch, guess(t, e, "rise"))
	assert.Equal(t, StateWonAllWords, e.State())
	assert.Equal(t, e.TotalWords(), e.FoundCount())

	// Terminal: further guesses change nothing.
	assert.Equal(t, GuessTitleMatch, guess(t, e, "sun rise"))
	assert.Equal(t, StateWonAllWords, e.State())
}

func TestEngine_Reveal(t *testing.T) {
	t.Parallel()

	e := loaded(t, "Moon", "Bright moon tonight")
	require.NoError(t, e.Reveal())
	assert.Equal(t, StateRevealed, e.State())
	assert.False(t, e.State().Won())
	assert.Equal(t, e.TotalWords(), e.FoundCount())
	assert.Equal(t, GuessAlreadyFound, guess(t, e, "bright"))

	// A second reveal keeps the state.
	require.NoError(t, e.Reveal())
	assert.Equal(t, StateRevealed, e.State())
}

func TestEngine_EmptyArticle(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	e.LoadArticle("", "", "")
	assert.Equal(t, StateWonAllWords, e.State())
	assert.True(t, e.IsRoundOver())
	assert.Zero(t, e.TotalWords())
	assert.Zero(t, e.FoundCount())
	assert.Empty(t, e.RenderUnits())

	res, err := e.SubmitGuess("anything")
	require.NoError(t, err)
	assert.Equal(t, GuessNotFound, res.Kind)
	assert.NoError(t, e.Reveal())
}

func TestEngine_LoadArticleResets(t *testing.T) {
	t.Parallel()

	e := loaded(t, "First", "alpha beta")
	require.Equal(t, GuessWordMatch, guess(t, e, "alpha"))
	require.NoError(t, e.Reveal())

	e.LoadArticle("Second", "gamma delta", "h2")
	assert.Equal(t, StateActive, e.State())
	assert.Zero(t, e.FoundCount())
	assert.Equal(t, 3, e.TotalWords())
	assert.Equal(t, GuessNotFound, guess(t, e, "alpha"))
	art, ok := e.Article()
	require.True(t, ok)
	assert.Equal(t, Article{Title: "Second", Body: "gamma delta", Hint: "h2"}, art)
}

func TestEngine_Exclude(t *testing.T) {
	t.Parallel()

	e := loaded(t, "The Hobbit", "It is the tale of a hobbit and his ring.", WithExclude(CommonWord))
	// Left: tale, hobbit, ring.
	assert.Equal(t, 3, e.TotalWords())
	assert.Equal(t, GuessNotFound, guess(t, e, "the"))
	assert.Equal(t, GuessNotFound, guess(t, e, "it"))

	for _, u := range e.RenderUnits() {
		if u.Text == "the" || u.Text == "is" {
			assert.Equal(t, UnitLiteral, u.Kind)
		}
	}
	assert.Equal(t, GuessTitleMatch, guess(t, e, "hobbit"))
}

func TestEngine_MonotonicReveal(t *testing.T) {
	t.Parallel()

	e := loaded(t, "Rivers of Europe", "The Danube and the Rhine are rivers; the Danube is longer.")
	seen := map[string]bool{}
	for _, g := range []string{"danube", "nope", "rhine", "danube", "", "are", "the", "x"} {
		_, err := e.SubmitGuess(g)
		require.NoError(t, err)
		for k := range seen {
			assert.True(t, e.Revealed(k), "key %q was hidden again", k)
		}
		for _, u := range e.RenderUnits() {
			if u.Kind == UnitToken && u.Revealed {
				seen[u.Key] = true
			}
		}
	}
	assert.Len(t, seen, e.FoundCount())
}
