package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	nurl "net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultWikiAPI is the English Wikipedia action API.
const DefaultWikiAPI = "https://en.wikipedia.org/w/api.php"

// ErrNoSuitableArticle means no random article reached the language
// minimum within the attempt budget.
var ErrNoSuitableArticle = errors.New("source: no article with enough languages")

// Wikipedia picks random main-namespace articles until one has language
// links to at least MinLanguages other wikis, then returns its plain-text
// introduction. The hint names the language count.
type Wikipedia struct {
	APIURL       string
	Client       *http.Client
	MinLanguages int
	MaxAttempts  int
}

type wikiPage struct {
	PageID    int    `json:"pageid"`
	Title     string `json:"title"`
	Missing   bool   `json:"missing"`
	Extract   string `json:"extract"`
	LangLinks []struct {
		Lang string `json:"lang"`
	} `json:"langlinks"`
}

type wikiResponse struct {
	Query struct {
		Random []struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		} `json:"random"`
		Pages []wikiPage `json:"pages"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

func (w Wikipedia) Next(ctx context.Context) (Article, error) {
	attempts := w.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 1; i <= attempts; i++ {
		id, title, err := w.random(ctx)
		if err != nil {
			return Article{}, err
		}
		langs, err := w.languages(ctx, id)
		if err != nil {
			return Article{}, err
		}
		if langs < w.MinLanguages {
			log.Debug().Str("title", title).Int("languages", langs).Int("attempt", i).Msg("wikipedia article skipped")
			continue
		}
		text, err := w.extract(ctx, id)
		if err != nil {
			return Article{}, err
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		return Article{
			Title: title,
			Text:  text,
			Hint:  fmt.Sprintf("This article is available in %d languages", langs),
		}, nil
	}
	return Article{}, fmt.Errorf("%w: %d attempts, minimum %d", ErrNoSuitableArticle, attempts, w.MinLanguages)
}

func (w Wikipedia) random(ctx context.Context) (int, string, error) {
	res, err := w.query(ctx, nurl.Values{
		"list":        {"random"},
		"rnnamespace": {"0"},
		"rnlimit":     {"1"},
	})
	if err != nil {
		return 0, "", err
	}
	if len(res.Query.Random) == 0 {
		return 0, "", errors.New("wikipedia: empty random list")
	}
	r := res.Query.Random[0]
	return r.ID, r.Title, nil
}

func (w Wikipedia) languages(ctx context.Context, id int) (int, error) {
	p, err := w.page(ctx, id, nurl.Values{
		"prop":    {"langlinks"},
		"lllimit": {"max"},
	})
	if err != nil {
		return 0, err
	}
	return len(p.LangLinks), nil
}

func (w Wikipedia) extract(ctx context.Context, id int) (string, error) {
	p, err := w.page(ctx, id, nurl.Values{
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
	})
	if err != nil {
		return "", err
	}
	return p.Extract, nil
}

func (w Wikipedia) page(ctx context.Context, id int, params nurl.Values) (wikiPage, error) {
	params.Set("pageids", strconv.Itoa(id))
	res, err := w.query(ctx, params)
	if err != nil {
		return wikiPage{}, err
	}
	if len(res.Query.Pages) == 0 || res.Query.Pages[0].Missing {
		return wikiPage{}, fmt.Errorf("wikipedia: page %d not found", id)
	}
	return res.Query.Pages[0], nil
}

func (w Wikipedia) query(ctx context.Context, params nurl.Values) (*wikiResponse, error) {
	base := w.APIURL
	if base == "" {
		base = DefaultWikiAPI
	}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "wikiguess/1.0")
	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia: status %d", resp.StatusCode)
	}

	var out wikiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("wikipedia: decode: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("wikipedia: %s: %s", out.Error.Code, out.Error.Info)
	}
	return &out, nil
}
