// internal/httpserver/server.go
//
// HTTP server wiring for the article-guessing backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Round endpoints (optional auth): /round/new, /round/guess, /round/reveal, GET /round/{id}.
//   - Daily endpoints (optional auth): mounted under /daily.
//   - Auth + profile endpoints: /auth/*, /stats/me, /rounds/mine.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Live rounds are in-memory sessions; only finished results reach SQLite.
//   - Hidden words never leave the server: a hidden token is sent as its
//     ID and rune length only.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wikiguess/internal/auth"
	"github.com/robalobadob/wikiguess/internal/config"
	"github.com/robalobadob/wikiguess/internal/daily"
	"github.com/robalobadob/wikiguess/internal/game"
	"github.com/robalobadob/wikiguess/internal/source"
	"github.com/robalobadob/wikiguess/internal/storage"
	"github.com/robalobadob/wikiguess/internal/store"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Config    *config.Config
	Sessions  store.Store
	Users     *storage.Users
	Rounds    *storage.Rounds
	Daily     *daily.Store
	Auth      *auth.Service
	Catalogue *source.Catalogue
	Client    *http.Client // fetches URL and Wikipedia articles; nil means source.NewClient with the configured policy
}

// Server bundles router and dependencies.
type Server struct {
	r    *chi.Mux
	deps Deps
	cfg  *config.Config
	now  func() time.Time
	http *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(deps Deps) *Server {
	s := &Server{r: chi.NewRouter(), deps: deps, cfg: deps.Config, now: time.Now}
	if s.deps.Client == nil {
		s.deps.Client = source.NewClient(s.policy(), s.cfg.Source.FetchTimeout)
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(s.cfg.Server.ClientOrigin))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wikiguess","endpoints":["/health","POST /round/new","POST /round/guess","POST /round/reveal","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Optional)
		s.mountRounds(r)
		s.mountDaily(r)
	})
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// policy is the fetch policy for caller-supplied page URLs.
func (s *Server) policy() source.Policy {
	return source.Policy{Hosts: s.cfg.Source.AllowedHosts, AllowPrivate: s.cfg.Source.AllowPrivate}
}

// Start serves HTTP on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops a started server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// owner identifies the caller: the signed-in user, else the anonymous cookie.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) store.Owner {
	if me := auth.FromContext(r.Context()); me != nil {
		return store.Owner{UserID: me.ID}
	}
	return store.Owner{AnonymousID: s.deps.Auth.EnsureAnonID(w, r)}
}

// owns reports whether the caller may act on sess. A player who signs in
// mid-round keeps access through the anonymous cookie.
func owns(r *http.Request, sess *store.Session) bool {
	o := sess.Owner()
	if me := auth.FromContext(r.Context()); me != nil && o.UserID == me.ID {
		return true
	}
	anon := auth.AnonID(r)
	return anon != "" && o.AnonymousID == anon
}

func storageOwner(o store.Owner) storage.Owner {
	return storage.Owner{UserID: o.UserID, AnonymousID: o.AnonymousID}
}

// newEngine builds an engine with the configured word policy.
func (s *Server) newEngine(roundID string) *game.Engine {
	opts := []game.Option{game.WithLogger(log.Logger.With().Str("roundId", roundID).Logger())}
	if s.cfg.Game.ExcludeCommon {
		opts = append(opts, game.WithExclude(game.CommonWord))
	}
	return game.NewEngine(opts...)
}
