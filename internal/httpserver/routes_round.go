// internal/httpserver/routes_round.go
//
// Free-play rounds:
//   - POST /round/new    → start a round from a URL, Wikipedia, an inline article or the catalogue
//   - POST /round/guess  → submit a word or title guess
//   - POST /round/reveal → give up and show everything
//   - GET  /round/{id}   → current view
//
// History rows are written best effort: a storage failure is logged and
// never fails the request, since the round itself lives in memory.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wikiguess/internal/auth"
	"github.com/robalobadob/wikiguess/internal/game"
	"github.com/robalobadob/wikiguess/internal/source"
	"github.com/robalobadob/wikiguess/internal/storage"
	"github.com/robalobadob/wikiguess/internal/store"
)

func (s *Server) mountRounds(r chi.Router) {
	r.Post("/round/new", s.handleNewRound)
	r.Post("/round/guess", s.handleGuess)
	r.Post("/round/reveal", s.handleReveal)
	r.Get("/round/{id}", s.handleGetRound)
}

type newRoundReq struct {
	Title        string `json:"title"`
	Text         string `json:"text"`
	Hint         string `json:"hint"`
	URL          string `json:"url"`
	Wiki         bool   `json:"wiki"`
	MinLanguages int    `json:"minLanguages"`
}

// remote reports whether the request asks the server to fetch its article.
func (req newRoundReq) remote() bool { return req.URL != "" || req.Wiki }

// pickSource chooses where the round's article comes from and whether its
// body gets the parenthetical stripping fetched text receives.
func (s *Server) pickSource(req newRoundReq) (source.Source, bool) {
	switch {
	case req.URL != "":
		p := s.policy()
		return source.Readability{URL: req.URL, Client: s.deps.Client, Policy: &p}, true
	case req.Wiki:
		minLangs := s.cfg.Source.WikiMinLanguages
		if req.MinLanguages > 0 {
			minLangs = req.MinLanguages
		}
		return source.Wikipedia{
			APIURL:       s.cfg.Source.WikiAPIURL,
			Client:       s.deps.Client,
			MinLanguages: minLangs,
			MaxAttempts:  s.cfg.Source.WikiMaxAttempts,
		}, true
	case req.Text != "" || req.Title != "":
		return source.Inline{Title: req.Title, Text: req.Text, Hint: req.Hint}, false
	default:
		return s.deps.Catalogue, true
	}
}

func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	src, fetched := s.pickSource(req)
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Source.FetchTimeout)
	defer cancel()
	art, err := src.Next(ctx)
	if err != nil {
		log.Warn().Err(err).Str("url", req.URL).Bool("wiki", req.Wiki).Msg("load article")
		switch {
		case errors.Is(err, source.ErrNoContent):
			writeError(w, http.StatusBadRequest, "no_content")
		case errors.Is(err, source.ErrURLNotAllowed):
			writeError(w, http.StatusBadRequest, "url_not_allowed")
		case errors.Is(err, source.ErrNoSuitableArticle):
			writeError(w, http.StatusServiceUnavailable, "no_suitable_article")
		case req.remote():
			writeError(w, http.StatusBadGateway, "fetch_failed")
		default:
			writeError(w, http.StatusInternalServerError, "no_article")
		}
		return
	}
	art = source.Prepare(art, fetched && s.cfg.Game.StripParentheticals)

	id := uuid.NewString()
	e := s.newEngine(id)
	e.LoadArticle(art.Title, art.Text, art.Hint)

	owner := s.owner(w, r)
	sess := store.NewSession(id, owner, e, s.now())
	if err := s.deps.Sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Str("roundId", id).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if err := s.deps.Rounds.Start(r.Context(), id, storageOwner(owner), string(e.State()), e.TotalWords()); err != nil {
		log.Warn().Err(err).Str("roundId", id).Msg("insert round row")
	}
	snap := sess.Snapshot()
	if snap.State.Over() {
		// Nothing to guess: the round ends as soon as it starts.
		s.recordRound(r, sess, snap, store.Step{From: game.StateNone, To: snap.State})
	}

	writeJSON(w, http.StatusOK, newRoundView(snap, s.now()))
}

type guessReq struct {
	RoundID string `json:"roundId"`
	Guess   string `json:"guess"`
}

type guessRes struct {
	Result game.GuessResult `json:"result"`
	View   roundView        `json:"view"`
}

// session loads a round the caller owns, writing the error response if not.
func (s *Server) session(w http.ResponseWriter, r *http.Request, id string) (*store.Session, bool) {
	sess, err := s.deps.Sessions.Get(r.Context(), id)
	if err != nil || !owns(r, sess) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

func (s *Server) tooShort(guess string) bool {
	n := s.cfg.Game.MinGuessLength
	return n > 0 && utf8.RuneCountInString(strings.TrimSpace(guess)) < n
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, ok := s.session(w, r, req.RoundID)
	if !ok {
		return
	}
	if s.tooShort(req.Guess) {
		writeError(w, http.StatusBadRequest, "guess_too_short")
		return
	}

	res, step, err := sess.Guess(req.Guess, s.now())
	if err != nil {
		log.Error().Err(err).Str("roundId", sess.ID()).Msg("submit guess")
		writeError(w, http.StatusConflict, "no_active_round")
		return
	}
	snap := sess.Snapshot()
	s.recordRound(r, sess, snap, step)

	writeJSON(w, http.StatusOK, guessRes{Result: res, View: newRoundView(snap, s.now())})
}

type revealReq struct {
	RoundID string `json:"roundId"`
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var req revealReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, ok := s.session(w, r, req.RoundID)
	if !ok {
		return
	}
	step, err := sess.Reveal(s.now())
	if err != nil {
		writeError(w, http.StatusConflict, "no_active_round")
		return
	}
	snap := sess.Snapshot()
	s.recordRound(r, sess, snap, step)
	writeJSON(w, http.StatusOK, newRoundView(snap, s.now()))
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newRoundView(sess.Snapshot(), s.now()))
}

// recordRound writes progress, or the outcome when step ended the round.
// Calls made after the round was already over write nothing.
// A signed-in caller's anonymous rounds were claimed at sign-in, so their
// rows are addressed by user ID.
func (s *Server) recordRound(r *http.Request, sess *store.Session, snap store.Snapshot, step store.Step) {
	ctx := r.Context()
	owner := storageOwner(sess.Owner())
	if me := auth.FromContext(ctx); me != nil {
		owner = storage.Owner{UserID: me.ID}
	}
	var err error
	switch {
	case step.From.Over():
		return
	case step.Ended():
		err = s.deps.Rounds.Finish(ctx, sess.ID(), owner, snap.Title, string(snap.State), snap.GuessCount(), snap.Found, snap.State.Won())
	default:
		err = s.deps.Rounds.Progress(ctx, sess.ID(), owner, snap.GuessCount(), snap.Found)
	}
	if err != nil {
		log.Warn().Err(err).Str("roundId", sess.ID()).Msg("record round")
	}
}
