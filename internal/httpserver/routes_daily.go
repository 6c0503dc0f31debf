// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily article:
//   - POST /daily/new         → start (or resume) today's round
//   - POST /daily/guess       → submit a guess for today's round
//   - POST /daily/reveal      → give up; locks the day, off the leaderboard
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=)
//
// Each player gets one daily round per UTC date. The round lives in the
// session store like any other; a win or a reveal is written to
// daily_results, so the lock outlives the in-memory session.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wikiguess/internal/daily"
	"github.com/robalobadob/wikiguess/internal/source"
	"github.com/robalobadob/wikiguess/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	mu       sync.Mutex
	date     string            // date the sessions map belongs to
	sessions map[string]string // owner key|date → session ID
}

func (s *Server) mountDaily(r chi.Router) {
	d := &dailyServer{srv: s, sessions: make(map[string]string)}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", d.handleNew)
		r.Post("/guess", d.handleGuess)
		r.Post("/reveal", d.handleReveal)
		r.Get("/leaderboard", d.handleLeaderboard)
	})
}

// today returns the date key and the catalogue index of today's article.
func (d *dailyServer) today() (string, int) {
	now := d.srv.now()
	return daily.DateKey(now), daily.ArticleIndex(now, d.srv.cfg.Daily.Salt, d.srv.deps.Catalogue.Len())
}

// playerID is the ID results are recorded under.
func playerID(o store.Owner) string {
	if o.UserID != "" {
		return o.UserID
	}
	return o.AnonymousID
}

type dailyView struct {
	Date   string     `json:"date"`
	Played bool       `json:"played"`
	Round  *roundView `json:"round,omitempty"`
}

// handleNew returns Played=true if a result already exists for today,
// otherwise the player's daily round, creating it on first call.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	owner := d.srv.owner(w, r)
	date, idx := d.today()

	played, err := d.srv.deps.Daily.AlreadyPlayed(r.Context(), playerID(owner), date)
	if err != nil {
		log.Warn().Err(err).Msg("daily already played")
	}
	if played {
		writeJSON(w, http.StatusOK, dailyView{Date: date, Played: true})
		return
	}

	key := owner.Key() + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rollover(date)
	if id, ok := d.sessions[key]; ok {
		if sess, err := d.srv.deps.Sessions.Get(r.Context(), id); err == nil {
			v := newRoundView(sess.Snapshot(), d.srv.now())
			writeJSON(w, http.StatusOK, dailyView{Date: date, Round: &v})
			return
		}
	}

	art := source.Prepare(d.srv.deps.Catalogue.At(idx), d.srv.cfg.Game.StripParentheticals)
	id := uuid.NewString()
	e := d.srv.newEngine(id)
	e.LoadArticle(art.Title, art.Text, art.Hint)
	sess := store.NewSession(id, owner, e, d.srv.now())
	if err := d.srv.deps.Sessions.Save(r.Context(), sess); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	d.sessions[key] = id

	v := newRoundView(sess.Snapshot(), d.srv.now())
	writeJSON(w, http.StatusOK, dailyView{Date: date, Round: &v})
}

// rollover drops yesterday's session mappings once the date changes.
// Callers hold d.mu.
func (d *dailyServer) rollover(date string) {
	if d.date == date {
		return
	}
	if n := len(d.sessions); n > 0 {
		log.Debug().Int("sessions", n).Str("date", d.date).Msg("daily rollover")
	}
	d.date = date
	d.sessions = make(map[string]string)
}

// result builds the daily_results row for a finished session.
func (d *dailyServer) result(sess *store.Session, snap store.Snapshot, date string) daily.Result {
	_, idx := d.today()
	return daily.Result{
		UserID:       playerID(sess.Owner()),
		Date:         date,
		ArticleIndex: idx,
		Guesses:      snap.GuessCount(),
		ElapsedMs:    int(d.srv.now().Sub(snap.Started) / time.Millisecond),
		Revealed:     !snap.State.Won(),
	}
}

// current returns the caller's daily session for today if roundID names it.
func (d *dailyServer) current(w http.ResponseWriter, r *http.Request, roundID string) (*store.Session, string, bool) {
	owner := d.srv.owner(w, r)
	date, _ := d.today()

	d.mu.Lock()
	id, ok := d.sessions[owner.Key()+"|"+date]
	d.mu.Unlock()
	if !ok || id != roundID {
		writeError(w, http.StatusConflict, "no_session")
		return nil, "", false
	}
	sess, err := d.srv.deps.Sessions.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusConflict, "no_session")
		return nil, "", false
	}
	return sess, date, true
}

func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, date, ok := d.current(w, r, req.RoundID)
	if !ok {
		return
	}
	if d.srv.tooShort(req.Guess) {
		writeError(w, http.StatusBadRequest, "guess_too_short")
		return
	}

	res, step, err := sess.Guess(req.Guess, d.srv.now())
	if err != nil {
		writeError(w, http.StatusConflict, "no_active_round")
		return
	}
	snap := sess.Snapshot()
	if step.Ended() {
		if err := d.srv.deps.Daily.InsertResult(r.Context(), d.result(sess, snap, date)); err != nil {
			log.Warn().Err(err).Str("roundId", sess.ID()).Msg("insert daily result")
		}
	}
	writeJSON(w, http.StatusOK, guessRes{Result: res, View: newRoundView(snap, d.srv.now())})
}

func (d *dailyServer) handleReveal(w http.ResponseWriter, r *http.Request) {
	var req revealReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, date, ok := d.current(w, r, req.RoundID)
	if !ok {
		return
	}
	step, err := sess.Reveal(d.srv.now())
	if err != nil {
		writeError(w, http.StatusConflict, "no_active_round")
		return
	}
	snap := sess.Snapshot()
	if step.Ended() {
		if err := d.srv.deps.Daily.InsertResult(r.Context(), d.result(sess, snap, date)); err != nil {
			log.Warn().Err(err).Str("roundId", sess.ID()).Msg("insert daily reveal")
		}
	}
	writeJSON(w, http.StatusOK, newRoundView(snap, d.srv.now()))
}

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.today()
	}
	rows, err := d.srv.deps.Daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
