// apps/go-solver/internal/httpserver/server.go
//
// HTTP surface for the solver.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session endpoints: POST /session/new, POST /session/guess.
//   - Benchmark endpoints (when a results DB is attached): GET /runs/recent.
//   - JWT session tokens; optional shared-password gate for session creation.
//
// Notes:
//   - A session token identifies one in-flight solve; solver state lives in
//     the session store, never in the token.
//   - Sessions are deleted once won or once the possibility set empties, so a
//     stale token simply 404s.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/eval"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/score"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Server bundles router, session store, word catalogs, and the optional
// results DB.
type Server struct {
	r       *chi.Mux
	store   store.Store
	lists   *words.Lists
	results *results.Store // may be nil
}

// New constructs a Server, installs middleware, and registers routes.
// resultsStore may be nil; the /runs routes are omitted in that case.
func New(st store.Store, lists *words.Lists, resultsStore *results.Store) *Server {
	s := &Server{r: chi.NewRouter(), store: st, lists: lists, results: resultsStore}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /session/new","POST /session/guess"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.lists.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"solutions": a, "guessable": g})
	})

	// Session endpoints
	s.r.Post("/session/new", s.handleNewSession)
	s.r.With(s.requireSession()).Post("/session/guess", s.handleGuess)

	// Benchmark history (only when a results DB is attached)
	if s.results != nil {
		s.r.Get("/runs/recent", s.handleRecentRuns)
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// ----------------------------- SESSION -------------------------------------

// newSessionReq/Res payloads for POST /session/new.
type newSessionReq struct {
	Strategy string `json:"strategy"` // "groupsize" | "groupcount" (default groupsize)
	HardMode bool   `json:"hardMode"`
	Password string `json:"password"` // required only when SOLVER_PASSWORD_HASH is set
}
type newSessionRes struct {
	Token         string `json:"token"`
	Guess         string `json:"guess"`
	Possibilities int    `json:"possibilities"`
}

// handleNewSession creates a solver session, stores it, and returns the
// opening guess plus a JWT identifying the session.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	if !passwordGateOK(req.Password) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	strategy := eval.GroupSize
	if req.Strategy != "" {
		var err error
		if strategy, err = eval.ParseStrategy(req.Strategy); err != nil {
			http.Error(w, `{"error":"bad_strategy"}`, http.StatusBadRequest)
			return
		}
	}

	sess := store.NewSession(solver.New(s.lists, req.HardMode, strategy))
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, err := signSessionToken(sess.ID)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(newSessionRes{
		Token:         tok,
		Guess:         sess.Solver.NextGuess(),
		Possibilities: len(sess.Solver.Possibilities()),
	})
}

// guessReq/Res payloads for POST /session/guess.
type guessReq struct {
	Guess string `json:"guess"` // the word the client actually played
	Score string `json:"score"` // five of a/p/c, e.g. "apacc"
}
type guessRes struct {
	Done          bool   `json:"done"`
	Guess         string `json:"guess,omitempty"` // next recommendation when not done
	Possibilities int    `json:"possibilities"`
}

// handleGuess feeds the scored guess into the session's solver and returns
// the next recommendation. A winning score or an emptied possibility set ends
// the session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sc, err := score.Parse(req.Score)
	if err != nil {
		http.Error(w, `{"error":"bad_score"}`, http.StatusBadRequest)
		return
	}
	if !validGuess(req.Guess) {
		http.Error(w, `{"error":"bad_guess"}`, http.StatusBadRequest)
		return
	}

	if sc.IsWin() {
		_ = s.store.Delete(r.Context(), sess.ID)
		_ = json.NewEncoder(w).Encode(guessRes{Done: true, Possibilities: 1})
		return
	}

	if err := sess.Solver.RespondToScore(req.Guess, sc); err != nil {
		_ = s.store.Delete(r.Context(), sess.ID)
		if errors.Is(err, solver.ErrNoPossibilities) {
			http.Error(w, `{"error":"no_possibilities"}`, http.StatusConflict)
			return
		}
		log.Error().Err(err).Msg("respond to score")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(guessRes{
		Guess:         sess.Solver.NextGuess(),
		Possibilities: len(sess.Solver.Possibilities()),
	})
}

// validGuess reports whether g has the playable word shape: exactly WordLen
// lowercase ASCII letters. The scorer's letter tables assume this, so it must
// hold before any guess reaches the solver. Catalog membership is not
// required; the client may have played any word its own game accepted.
func validGuess(g string) bool {
	if len(g) != score.WordLen {
		return false
	}
	for i := 0; i < len(g); i++ {
		if g[i] < 'a' || g[i] > 'z' {
			return false
		}
	}
	return true
}

// ------------------------------- RUNS --------------------------------------

// runRow is the JSON shape for one benchmark run summary.
type runRow struct {
	ID         int64  `json:"id"`
	StartedAt  string `json:"startedAt"`
	HardMode   bool   `json:"hardMode"`
	Workers    int    `json:"workers"`
	Answers    int    `json:"answers"`
	GroupSize  []int  `json:"groupSize"`
	GroupCount []int  `json:"groupCount"`
	Record     [3]int `json:"record"`
}

// handleRecentRuns lists the latest solve-all benchmark summaries.
func (s *Server) handleRecentRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.results.RecentRuns(r.Context(), 20)
	if err != nil {
		log.Error().Err(err).Msg("query recent runs")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	out := make([]runRow, 0, len(runs))
	for _, run := range runs {
		out = append(out, runRow{
			ID:         run.ID,
			StartedAt:  run.StartedAt.UTC().Format(time.RFC3339),
			HardMode:   run.HardMode,
			Workers:    run.Workers,
			Answers:    run.Answers,
			GroupSize:  run.GroupSizeTotals[:],
			GroupCount: run.GroupCountTotals[:],
			Record:     run.Record,
		})
	}
	_ = json.NewEncoder(w).Encode(out)
}
