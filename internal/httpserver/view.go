package httpserver

import (
	"time"
	"unicode/utf8"

	"github.com/robalobadob/wikiguess/internal/game"
	"github.com/robalobadob/wikiguess/internal/store"
)

// unitView is one render unit on the wire. Hidden tokens carry only their
// ID and rune length; text and title membership are sent once revealed.
type unitView struct {
	Kind     string `json:"kind"` // "lit" | "tok"
	Text     string `json:"text,omitempty"`
	ID       *int   `json:"id,omitempty"`
	Len      int    `json:"len,omitempty"`
	Revealed bool   `json:"revealed,omitempty"`
	InTitle  bool   `json:"inTitle,omitempty"`
}

// roundView is the client's picture of a round.
type roundView struct {
	RoundID   string        `json:"roundId"`
	State     game.State    `json:"state"`
	Found     int           `json:"found"`
	Total     int           `json:"total"`
	Guesses   int           `json:"guesses"`
	Hint      string        `json:"hint"`
	Title     string        `json:"title,omitempty"`
	ElapsedMs int64         `json:"elapsedMs"`
	Units     []unitView    `json:"units"`
	History   []store.Guess `json:"history"`
}

func newRoundView(snap store.Snapshot, now time.Time) roundView {
	v := roundView{
		RoundID:   snap.ID,
		State:     snap.State,
		Found:     snap.Found,
		Total:     snap.Total,
		Guesses:   snap.GuessCount(),
		Hint:      snap.Hint,
		Title:     snap.Title,
		ElapsedMs: now.Sub(snap.Started).Milliseconds(),
		Units:     make([]unitView, 0, len(snap.Units)),
		History:   snap.Guesses,
	}
	if v.History == nil {
		v.History = []store.Guess{}
	}
	for _, u := range snap.Units {
		v.Units = append(v.Units, newUnitView(u))
	}
	return v
}

func newUnitView(u game.RenderUnit) unitView {
	if u.Kind == game.UnitLiteral {
		return unitView{Kind: "lit", Text: u.Text}
	}
	id := u.ID
	uv := unitView{Kind: "tok", ID: &id, Len: utf8.RuneCountInString(u.Text)}
	if u.Revealed {
		uv.Text = u.Text
		uv.Revealed = true
		uv.InTitle = u.InTitle
	}
	return uv
}
