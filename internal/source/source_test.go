package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripParentheticals(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Albert Einstein was a physicist.",
		StripParentheticals("Albert Einstein (14 March 1879 – 18 April 1955) was a physicist."))
	assert.Equal(t, "no groups", StripParentheticals("no groups"))
	assert.Equal(t, "a b", StripParentheticals("a (x) (y) b"))
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	a := Prepare(Article{Title: " Foo ", Text: "Foo (bar) is don't."}, true)
	assert.Equal(t, "Foo", a.Title)
	assert.Equal(t, "Foo is don't.", a.Text)
	assert.Equal(t, "This article has 4 words to find", a.Hint)

	b := Prepare(Article{Title: "X", Text: "keep (this)", Hint: "given"}, false)
	assert.Equal(t, "keep (this)", b.Text)
	assert.Equal(t, "given", b.Hint)
}

func TestDefaultHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    Article
		want string
	}{
		{"duplicates counted once", Article{Title: "Sun", Text: "The sun, the SUN rose."}, "This article has 3 words to find"},
		{"title-only words count", Article{Title: "Quantum Physics", Text: "It is."}, "This article has 4 words to find"},
		{"accents fold", Article{Title: "Café", Text: "cafe CAFÉ café"}, "This article has 1 word to find"},
		{"empty", Article{}, "This article has 0 words to find"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DefaultHint(tt.a))
		})
	}
}

func TestCatalogue(t *testing.T) {
	t.Parallel()

	c, err := LoadCatalogue("")
	require.NoError(t, err)
	require.Positive(t, c.Len())

	a, err := c.Next(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, a.Title)
	assert.NotEmpty(t, a.Text)

	assert.Equal(t, c.At(0), c.At(c.Len()))
	assert.Equal(t, c.At(c.Len()-1), c.At(-1))
}

func TestCatalogue_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"T","text":"body"},{"title":"","text":"dropped"}]`), 0o600))
	c, err := LoadCatalogue(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = ParseCatalogue([]byte(`[]`))
	assert.ErrorIs(t, err, ErrEmptyCatalogue)
	_, err = ParseCatalogue([]byte(`{`))
	assert.Error(t, err)
}

func TestInline(t *testing.T) {
	t.Parallel()

	a, err := Inline{Title: "T", Text: "body"}.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Article{Title: "T", Text: "body"}, a)

	_, err = Inline{}.Next(context.Background())
	assert.ErrorIs(t, err, ErrNoContent)
}

const page = `<!DOCTYPE html><html><head><title>Honey bee</title></head><body>
<article>
<h1>Honey bee</h1>
<p>A honey bee is a eusocial flying insect within the genus Apis of the bee clade. Honey bees are known for their
construction of perennial colonial nests from wax, the large size of their colonies, and surplus production
and storage of honey, distinguishing their hives as a prized foraging target of many animals.</p>
<p>Only eight surviving species of honey bees are recognized, with a total of 43 subspecies, though historically
seven to eleven species are recognized. Honey bees represent only a small fraction of the roughly 20,000 known
species of bees.</p>
</article>
</body></html>`

func TestReadability(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wiki/Honey_bee" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)

	a, err := Readability{URL: srv.URL + "/wiki/Honey_bee", Client: srv.Client()}.Next(context.Background())
	require.NoError(t, err)
	assert.Contains(t, a.Title, "Honey bee")
	assert.Contains(t, a.Text, "eusocial flying insect")
	assert.NotContains(t, a.Text, "\n")

	_, err = Readability{URL: srv.URL + "/missing", Client: srv.Client()}.Next(context.Background())
	assert.Error(t, err)

	_, err = Readability{URL: "not a url"}.Next(context.Background())
	assert.Error(t, err)
}
