// internal/httpserver/server.go
//
// HTTP server wiring for the F&B Wordle backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, panic recovery, timeouts,
//     JSON, CORS, anonymous sessions).
//   - Public endpoints: "/", "/health".
//   - Game endpoints under /api/game: create, inspect, type, submit, reset, share.
//   - Daily/session word and validation endpoints (routes_daily.go).
//   - Result submission and statistics endpoints (routes_stats.go).
//
// Notes:
//   - Each game is mutated only inside store.Update, which serialises input.
//   - The answer is hidden from game views until the game is over.
//   - Statistics recording on game completion is best effort: failures are
//     logged and never fail the request.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fbwordle/internal/config"
	"github.com/robalobadob/fbwordle/internal/daily"
	"github.com/robalobadob/fbwordle/internal/stats"
	"github.com/robalobadob/fbwordle/internal/store"
	"github.com/robalobadob/fbwordle/internal/words"
)

// Deps are the collaborators a Server needs. Stats may be nil, in which case
// results are not recorded and statistics endpoints answer 503.
type Deps struct {
	Games    store.Store
	Words    *words.List
	Stats    stats.Store
	Rotation *daily.Rotation
}

// Server bundles the router and its dependencies.
type Server struct {
	r         *chi.Mux
	cfg       config.Config
	games     store.Store
	words     *words.List
	validator *words.Validator
	stats     stats.Store
	rotation  *daily.Rotation
	sessions  *sessions
	now       func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, d Deps) *Server {
	if cfg.DailyLocation == nil {
		cfg.DailyLocation = time.UTC
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	s := &Server{
		r:         chi.NewRouter(),
		cfg:       cfg,
		games:     d.Games,
		words:     d.Words,
		validator: words.NewValidator(d.Words, d.Words.WordLength()),
		stats:     d.Stats,
		rotation:  d.Rotation,
		sessions:  newSessions(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieName, cfg.SecureCookies),
		now:       time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(cfg.RequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "fbwordle",
			"endpoints": []string{"/health", "/api/game/*", "/api/daily-word", "/api/session-word", "/api/validate-guess", "/api/submit-result", "/api/statistics"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		answers, allowed := s.words.Stats()
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "answers": answers, "allowed": allowed})
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Use(s.sessions.middleware)
		r.Route("/game", s.mountGame)
		s.mountDaily(r)
		s.mountStats(r)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ----------------------------- middleware ----------------------------------

// accessLog writes one structured line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ helpers -------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decode reads an optional JSON body; an empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// today is the current time in the daily time zone.
func (s *Server) today() time.Time {
	return s.now().In(s.cfg.DailyLocation)
}

// dailyAnswer returns the word of the day for t, falling back to the
// configured word when no list is available.
func (s *Server) dailyAnswer(ctx context.Context, t time.Time) (word string, fallback bool) {
	w, err := daily.SelectWord(t, s.words.Answers())
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("fallback", s.cfg.FallbackWord).Msg("daily word unavailable")
		return s.cfg.FallbackWord, true
	}
	return w, false
}
