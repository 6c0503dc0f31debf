package source

import (
	"context"
	"fmt"
	"net/http"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// Readability fetches one web page and keeps its main text. A non-nil
// Policy is checked before anything is fetched.
type Readability struct {
	URL    string
	Client *http.Client
	Policy *Policy
}

func (r Readability) Next(ctx context.Context) (Article, error) {
	var (
		u   *nurl.URL
		err error
	)
	if r.Policy != nil {
		u, err = r.Policy.Check(r.URL)
	} else {
		u, err = nurl.ParseRequestURI(r.URL)
		if err != nil {
			err = fmt.Errorf("parse url: %w", err)
		}
	}
	if err != nil {
		return Article{}, err
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Article{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Article{}, fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)
	}

	page, err := readability.FromReader(resp.Body, u)
	if err != nil {
		return Article{}, fmt.Errorf("readability extraction failed: %w", err)
	}
	text := strings.Join(strings.Fields(page.TextContent), " ")
	if text == "" {
		return Article{}, ErrNoContent
	}
	return Article{Title: strings.TrimSpace(page.Title), Text: text}, nil
}
