// internal/store/session.go
//
// A Session is one player's round: the engine plus the bookkeeping the
// engine leaves to its caller (owner, guess count, guess list, timing).
//
// The engine is single-threaded; every Session method takes the session's
// own mutex so concurrent requests for one round are serialized.

package store

import (
	"sync"
	"time"

	"github.com/robalobadob/wikiguess/internal/game"
)

// Owner identifies who plays a session. Exactly one field is set.
type Owner struct {
	UserID      string
	AnonymousID string
}

// Key is a stable string for the owner.
func (o Owner) Key() string {
	if o.UserID != "" {
		return "u:" + o.UserID
	}
	return "a:" + o.AnonymousID
}

// Guess is one recorded submission.
type Guess struct {
	Text string         `json:"text"`
	Kind game.GuessKind `json:"kind"`
}

// Session holds a round in memory.
type Session struct {
	mu      sync.Mutex
	id      string
	owner   Owner
	engine  *game.Engine
	guesses []Guess
	started time.Time
	touched time.Time
}

// NewSession wraps a loaded engine.
func NewSession(id string, owner Owner, e *game.Engine, now time.Time) *Session {
	return &Session{id: id, owner: owner, engine: e, started: now, touched: now}
}

func (s *Session) ID() string         { return s.id }
func (s *Session) Owner() Owner       { return s.owner }
func (s *Session) Started() time.Time { return s.started }

// Step is the round state a call found and the state it left, both read
// under the session lock.
type Step struct {
	From game.State
	To   game.State
}

// Ended reports whether this call is the one that finished the round.
func (s Step) Ended() bool { return !s.From.Over() && s.To.Over() }

// Guess submits raw to the engine. Every evaluated guess is counted except
// a rejected one.
func (s *Session) Guess(raw string, now time.Time) (game.GuessResult, Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := Step{From: s.engine.State()}
	res, err := s.engine.SubmitGuess(raw)
	if err != nil {
		return res, step, err
	}
	s.touched = now
	if res.Kind != game.GuessRejected {
		s.guesses = append(s.guesses, Guess{Text: raw, Kind: res.Kind})
	}
	step.To = s.engine.State()
	return res, step, nil
}

// Reveal gives the round up.
func (s *Session) Reveal(now time.Time) (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := Step{From: s.engine.State()}
	s.touched = now
	if err := s.engine.Reveal(); err != nil {
		return step, err
	}
	step.To = s.engine.State()
	return step, nil
}

// Snapshot is a consistent copy of a session's visible state.
type Snapshot struct {
	ID      string
	State   game.State
	Found   int
	Total   int
	Guesses []Guess
	Hint    string
	Title   string // empty while the round is in play
	Units   []game.RenderUnit
	Started time.Time
}

// GuessCount is the number of counted guesses.
func (s Snapshot) GuessCount() int { return len(s.Guesses) }

// Snapshot captures the session under its lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:      s.id,
		State:   s.engine.State(),
		Found:   s.engine.FoundCount(),
		Total:   s.engine.TotalWords(),
		Guesses: append([]Guess(nil), s.guesses...),
		Hint:    s.engine.HintText(),
		Units:   s.engine.RenderUnits(),
		Started: s.started,
	}
	if snap.State.Over() {
		if a, ok := s.engine.Article(); ok {
			snap.Title = a.Title
		}
	}
	return snap
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}
