// internal/game/types.go
//
// Core type definitions for the article-guessing engine.
// Defines:
//   - State: lifecycle of a round (active → won/revealed).
//   - GuessKind / GuessResult: outcome of a single guess.
//   - RenderUnit: what the presentation layer turns into markup.
//   - Article: the immutable input of a round.

package game

import "errors"

// ErrNoActiveRound is returned by mutations issued before any article was loaded.
var ErrNoActiveRound = errors.New("game: no active round")

// State is the round lifecycle. Every state except StateActive is terminal
// until the next LoadArticle.
type State string

const (
	StateNone        State = "none"      // no article loaded yet
	StateActive      State = "playing"   // guesses still change the round
	StateWonTitle    State = "won_title" // the title was guessed
	StateWonAllWords State = "won_words" // every indexed word was found
	StateRevealed    State = "revealed"  // the player gave up
)

// Over reports whether s is terminal.
func (s State) Over() bool {
	return s == StateWonTitle || s == StateWonAllWords || s == StateRevealed
}

// Won reports whether s is a win for the player.
func (s State) Won() bool {
	return s == StateWonTitle || s == StateWonAllWords
}

// GuessKind is the outcome of SubmitGuess.
type GuessKind string

const (
	GuessTitleMatch   GuessKind = "title"
	GuessWordMatch    GuessKind = "word"
	GuessAlreadyFound GuessKind = "already_found"
	GuessNotFound     GuessKind = "not_found"
	GuessRejected     GuessKind = "rejected"
)

// GuessResult describes one evaluated guess.
type GuessResult struct {
	Kind        GuessKind `json:"kind"`
	Key         string    `json:"key,omitempty"`         // normalized guess
	Occurrences int       `json:"occurrences,omitempty"` // body occurrences revealed by a word match
}

// UnitKind distinguishes literal passthrough text from maskable tokens.
type UnitKind uint8

const (
	UnitLiteral UnitKind = iota
	UnitToken
)

// RenderUnit is one element of the masked view.
// Literal units carry only Text. Token units additionally carry the word's
// key, its word ordinal (stable for the round) and whether it is revealed.
type RenderUnit struct {
	Kind     UnitKind
	Text     string
	Key      string
	ID       int
	Revealed bool
	InTitle  bool // the key is also one of the title words
}

// Article is the input of a round.
type Article struct {
	Title string
	Body  string
	Hint  string
}
