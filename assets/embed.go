// Package assets embeds the bundled article catalogue.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed articles.json
var FS embed.FS

// Articles returns the raw JSON of the bundled catalogue.
func Articles() ([]byte, error) {
	return fs.ReadFile(FS, "articles.json")
}
