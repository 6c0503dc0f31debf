// internal/game/engine.go
//
// Core engine for a single article-guessing round.
// Responsibilities:
//   - Build a round from an article: tokenize body and title, index words,
//     start every key hidden.
//   - Evaluate guesses: title first, then word lookup by normalized key.
//   - Track state transitions: playing → won_title | won_words | revealed.
//   - Project the masked view for the presentation layer.
//
// Notes:
//   - The engine is single-threaded; callers serialize access (see store.Session).
//   - LoadArticle builds the new round completely before swapping it in, so a
//     half-built round is never observable.
//   - Guess counting is a caller concern; the engine never counts attempts.
package game

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wikiguess/internal/words"
)

// Option configures an Engine.
type Option func(*Engine)

// WithExclude installs an exclusion predicate applied to body and title keys
// at index-build time. See CommonWord.
func WithExclude(fn func(key string) bool) Option {
	return func(e *Engine) { e.exclude = fn }
}

// WithLogger sets the engine's debug logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine owns the current round.
type Engine struct {
	exclude func(string) bool
	log     zerolog.Logger
	round   *round
}

// round is everything derived from one article.
type round struct {
	article    Article
	segments   []words.Segment
	keys       []string // per segment; "" for separators and keyless words
	index      *Index
	reveal     *RevealState
	titleWords []string
	titleSet   map[string]struct{}
	title      titleMatcher
	total      int
	state      State
}

// NewEngine constructs an engine with no round loaded.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{log: zerolog.Nop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// LoadArticle discards the current round and starts a new one.
// It never fails: an article without guessable words starts as won_words
// with zero words to find.
func (e *Engine) LoadArticle(title, body, hint string) {
	r := &round{
		article:  Article{Title: title, Body: body, Hint: hint},
		segments: words.Tokenize(body),
		title:    newTitleMatcher(title),
		state:    StateActive,
	}
	r.keys = make([]string, len(r.segments))
	for i, s := range r.segments {
		if s.Kind == words.Word {
			r.keys[i] = words.Key(s.Text)
		}
	}
	r.index = BuildIndex(r.segments, e.exclude)
	r.titleWords = r.index.MergeTitle(words.Tokenize(title), e.exclude)
	r.titleSet = titleSet(r.titleWords)
	r.reveal = NewRevealState(r.index)
	r.total = r.reveal.Hidden()
	if r.total == 0 {
		r.state = StateWonAllWords
	}
	e.round = r

	e.log.Debug().
		Int("segments", len(r.segments)).
		Int("keys", r.index.Len()).
		Int("titleWords", len(r.titleWords)).
		Msg("round loaded")
}

// SubmitGuess evaluates one guess.
//
// Once the round is over guesses are still evaluated, but nothing changes:
// every key is already revealed and the state stays terminal.
func (e *Engine) SubmitGuess(raw string) (GuessResult, error) {
	r := e.round
	if r == nil {
		return GuessResult{}, ErrNoActiveRound
	}
	res := r.evaluate(raw)
	e.log.Debug().Str("key", res.Key).Str("kind", string(res.Kind)).Str("state", string(r.state)).Msg("guess evaluated")
	return res, nil
}

// guessKey is the lookup key for a guess. A single token goes through the
// same cleaning as article words, so "col·lecció" or "hello!" find the word
// they were typed from; a multi-word guess can only match a title and keeps
// its normalized form.
func guessKey(norm, raw string) string {
	if strings.ContainsFunc(norm, unicode.IsSpace) {
		return norm
	}
	return words.Key(raw)
}

func (r *round) evaluate(raw string) GuessResult {
	norm := words.Normalize(raw)
	if norm == "" {
		return GuessResult{Kind: GuessRejected}
	}
	key := guessKey(norm, raw)
	if r.title.match(raw) {
		if r.state == StateActive {
			r.reveal.MarkAll()
			r.state = StateWonTitle
		}
		return GuessResult{Kind: GuessTitleMatch, Key: key}
	}
	entry, ok := r.index.Lookup(key)
	if !ok {
		return GuessResult{Kind: GuessNotFound, Key: key}
	}
	if !r.reveal.Mark(key) {
		return GuessResult{Kind: GuessAlreadyFound, Key: key}
	}
	if r.state == StateActive && r.reveal.Found() == r.total {
		r.state = StateWonAllWords
	}
	return GuessResult{Kind: GuessWordMatch, Key: key, Occurrences: len(entry.Positions)}
}

// Reveal gives up the round: every key is revealed and the state becomes
// revealed. A round that is already over is left as it is.
func (e *Engine) Reveal() error {
	r := e.round
	if r == nil {
		return ErrNoActiveRound
	}
	if r.state == StateActive {
		r.reveal.MarkAll()
		r.state = StateRevealed
	}
	return nil
}

// RenderUnits projects the masked view; nil before any article is loaded.
func (e *Engine) RenderUnits() []RenderUnit {
	r := e.round
	if r == nil {
		return nil
	}
	return project(r.segments, r.keys, r.index, r.reveal, r.titleSet)
}

// FoundCount is the number of revealed keys.
func (e *Engine) FoundCount() int {
	if e.round == nil {
		return 0
	}
	return e.round.reveal.Found()
}

// TotalWords is the number of keys to find, fixed at load time.
func (e *Engine) TotalWords() int {
	if e.round == nil {
		return 0
	}
	return e.round.total
}

// HintText returns the hint supplied with the article.
func (e *Engine) HintText() string {
	if e.round == nil {
		return ""
	}
	return e.round.article.Hint
}

// IsRoundOver reports whether the current round is terminal.
func (e *Engine) IsRoundOver() bool {
	return e.State().Over()
}

// State reports the round state; StateNone before any article is loaded.
func (e *Engine) State() State {
	if e.round == nil {
		return StateNone
	}
	return e.round.state
}

// Article returns the current article.
func (e *Engine) Article() (Article, bool) {
	if e.round == nil {
		return Article{}, false
	}
	return e.round.article, true
}

// TitleWords returns the title keys in title order.
func (e *Engine) TitleWords() []string {
	if e.round == nil {
		return nil
	}
	return append([]string(nil), e.round.titleWords...)
}

// Lookup returns the index entry for a normalized key.
func (e *Engine) Lookup(key string) (*Entry, bool) {
	if e.round == nil {
		return nil, false
	}
	return e.round.index.Lookup(key)
}

// Revealed reports whether key is revealed in the current round.
func (e *Engine) Revealed(key string) bool {
	if e.round == nil {
		return false
	}
	return e.round.reveal.Revealed(key)
}

// Segments returns the tokenized body.
func (e *Engine) Segments() []words.Segment {
	if e.round == nil {
		return nil
	}
	return append([]words.Segment(nil), e.round.segments...)
}
