// Command wikiguess plays article rounds in the terminal.
//
// Usage:
//
//	wikiguess [-articles file.json] [-url https://...] [-wiki [-min-languages n]] [-strict]
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wikiguess/internal/config"
	"github.com/robalobadob/wikiguess/internal/game"
	"github.com/robalobadob/wikiguess/internal/source"
)

func main() {
	_ = godotenv.Load()
	var sc config.SourceConfig
	if err := cleanenv.ReadEnv(&sc); err != nil {
		fmt.Fprintln(os.Stderr, "wikiguess:", err)
		os.Exit(1)
	}

	articles := flag.String("articles", sc.ArticlesFile, "JSON article catalogue (default: bundled)")
	url := flag.String("url", "", "play a single web page instead of the catalogue")
	wiki := flag.Bool("wiki", false, "play random Wikipedia articles instead of the catalogue")
	minLangs := flag.Int("min-languages", sc.WikiMinLanguages, "with -wiki, skip articles linked in fewer languages")
	strict := flag.Bool("strict", false, "skip short and common words")
	keepParens := flag.Bool("keep-parens", false, "keep (parenthetical) groups in article text")
	flag.Parse()

	var src source.Source
	switch {
	case *url != "":
		src = source.Readability{URL: *url}
	case *wiki:
		src = source.Wikipedia{
			APIURL:       sc.WikiAPIURL,
			Client:       &http.Client{Timeout: sc.FetchTimeout},
			MinLanguages: *minLangs,
			MaxAttempts:  sc.WikiMaxAttempts,
		}
	default:
		cat, err := source.LoadCatalogue(*articles)
		if err != nil {
			fmt.Fprintln(os.Stderr, "wikiguess:", err)
			os.Exit(1)
		}
		src = cat
	}

	var opts []game.Option
	if *strict {
		opts = append(opts, game.WithExclude(game.CommonWord))
	}
	if path := os.Getenv("WIKIGUESS_DEBUG_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			defer f.Close()
			l := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
			opts = append(opts, game.WithLogger(l))
		}
	}

	p := tea.NewProgram(newModel(src, game.NewEngine(opts...), !*keepParens), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "wikiguess:", err)
		os.Exit(1)
	}
}
