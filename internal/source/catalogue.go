package source

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/robalobadob/wikiguess/assets"
)

// Catalogue is a fixed list of articles.
type Catalogue struct {
	articles []Article
}

// ParseCatalogue decodes a JSON array of articles, dropping entries without
// a title or text.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var all []Article
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	c := &Catalogue{}
	for _, a := range all {
		if a.Title == "" || a.Text == "" {
			continue
		}
		c.articles = append(c.articles, a)
	}
	if len(c.articles) == 0 {
		return nil, ErrEmptyCatalogue
	}
	return c, nil
}

// LoadCatalogue reads path, or the bundled catalogue when path is empty.
func LoadCatalogue(path string) (*Catalogue, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = assets.Articles()
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	return ParseCatalogue(data)
}

// Len is the number of articles.
func (c *Catalogue) Len() int { return len(c.articles) }

// At returns article i modulo the catalogue size.
func (c *Catalogue) At(i int) Article {
	n := len(c.articles)
	return c.articles[((i%n)+n)%n]
}

// Next picks an article uniformly at random.
func (c *Catalogue) Next(context.Context) (Article, error) {
	if len(c.articles) == 0 {
		return Article{}, ErrEmptyCatalogue
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(c.articles))))
	if err != nil {
		return Article{}, fmt.Errorf("pick article: %w", err)
	}
	return c.articles[n.Int64()], nil
}
