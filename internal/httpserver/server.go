// apps/term/internal/httpserver/server.go
//
// HTTP wrapper around the game engine.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts, rate limits).
//   - Plain-text endpoints: "/" greeting, "/guess/{word}" against the held answer.
//   - JSON game endpoints: POST /game/new, POST /game/guess.
//   - Daily word: GET /daily, POST /daily/new.
//   - Stats and diagnostics: /stats, /health.
//
// Notes:
//   - The held answer and the histogram are shared by all requests and
//     guarded by their own mutexes.
//   - Finished JSON rounds update the histogram and, when configured, the
//     stats file and the SQLite history.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordle/apps/term/internal/game"
	"github.com/robalobadob/wordle/apps/term/internal/history"
	"github.com/robalobadob/wordle/apps/term/internal/stats"
	"github.com/robalobadob/wordle/apps/term/internal/store"
	"github.com/robalobadob/wordle/apps/term/internal/words"
)

// Options configures a Server.
type Options struct {
	Source    *words.Source
	Store     store.Store    // defaults to an in-memory store
	History   *history.Store // optional
	StatsFile string         // optional; histogram is dumped after each JSON win

	RateLimitRPS   float64
	RateLimitBurst int

	// PickAnswer chooses answers for new rounds. Defaults to Source.RandomAnswer.
	PickAnswer func() string

	DailySalt string
	Now       func() time.Time // defaults to time.Now
}

// Server bundles router, word source, round store and shared state.
type Server struct {
	r    *chi.Mux
	opts Options

	mu     sync.Mutex // guards answer
	answer string     // held answer for GET /guess/{word}

	roundMu sync.Mutex // serializes guesses on stored rounds
	modes   sync.Map   // round ID -> history mode, for rounds not started via /game/new

	statsMu sync.Mutex // guards hist and the stats file
	hist    stats.Histogram

	limMu    sync.Mutex
	limiters map[string]*rate.Limiter
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.PickAnswer == nil {
		opts.PickAnswer = opts.Source.RandomAnswer
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 5
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 10
	}

	s := &Server{
		r:        chi.NewRouter(),
		opts:     opts,
		answer:   opts.PickAnswer(),
		limiters: make(map[string]*rate.Limiter),
	}
	if opts.StatsFile != "" {
		s.hist = stats.Load(opts.StatsFile)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(requestLogger)

	// --- plain text ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusOK, "Hello, World")
	})
	s.r.With(s.rateLimit).Get("/guess/{word}", s.handleQuickGuess)

	// --- JSON ---
	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			a, d := s.opts.Source.Stats()
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "answers": a, "dictionary": d})
		})
		r.Get("/stats", s.handleStats)
		r.Get("/daily", s.handleDaily)
		r.With(s.rateLimit).Post("/daily/new", s.handleDailyNew)
		r.With(s.rateLimit).Post("/game/new", s.handleNewGame)
		r.With(s.rateLimit).Post("/game/guess", s.handleGuess)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// limiter returns the per-client limiter, creating it on first use.
func (s *Server) limiter(key string) *rate.Limiter {
	s.limMu.Lock()
	defer s.limMu.Unlock()
	if lim, ok := s.limiters[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(s.opts.RateLimitRPS), s.opts.RateLimitBurst)
	s.limiters[key] = lim
	return lim
}

// rateLimit rejects clients that exceed the configured request rate.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(key); err == nil {
			key = host
		}
		if !s.limiter(key).Allow() {
			writeError(w, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please slow down.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ helpers ------------------------------------

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorRes{Error: code, Message: msg})
}

// errorCode maps engine errors to stable API codes.
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrInvalidLength):
		return http.StatusBadRequest, "invalid_length"
	case errors.Is(err, game.ErrUnknownWord):
		return http.StatusBadRequest, "unknown_word"
	case errors.Is(err, game.ErrRoundOver):
		return http.StatusConflict, "round_over"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	}
	return http.StatusInternalServerError, "internal"
}
