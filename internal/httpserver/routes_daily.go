// internal/httpserver/routes_daily.go
//
// Word selection and validation endpoints:
//   - GET  /api/daily-word      → word of the day (optional ?date=YYYY-MM-DD)
//   - GET  /api/session-word    → next word of this session's rotation
//   - POST /api/validate-guess  → dictionary check with a player-facing message
//
// The daily word depends only on the calendar date in DAILY_TIMEZONE, so
// every client sees the same word on the same day.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/fbwordle/internal/daily"
	"github.com/robalobadob/fbwordle/internal/words"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily-word", s.handleDailyWord)
	r.Get("/session-word", s.handleSessionWord)
	r.Post("/validate-guess", s.handleValidateGuess)
}

type dailyWordRes struct {
	Word     string `json:"word"`
	Date     string `json:"date"`
	Fallback bool   `json:"fallback,omitempty"`
}

func (s *Server) handleDailyWord(w http.ResponseWriter, r *http.Request) {
	day := s.today()
	if q := r.URL.Query().Get("date"); q != "" {
		t, err := time.ParseInLocation("2006-01-02", q, s.cfg.DailyLocation)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		day = t
	}
	word, fallback := s.dailyAnswer(r.Context(), day)
	writeJSON(w, http.StatusOK, dailyWordRes{Word: word, Date: daily.DateKey(day), Fallback: fallback})
}

type sessionWordRes struct {
	Word      string `json:"word"`
	NextIndex int    `json:"nextIndex"`
	Fallback  bool   `json:"fallback,omitempty"`
}

func (s *Server) handleSessionWord(w http.ResponseWriter, r *http.Request) {
	if s.rotation == nil {
		writeJSON(w, http.StatusOK, sessionWordRes{Word: s.cfg.FallbackWord, Fallback: true})
		return
	}
	word, next, err := s.rotation.Next(r.Context(), sessionID(r))
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("session word rotation")
		writeJSON(w, http.StatusOK, sessionWordRes{Word: s.cfg.FallbackWord, Fallback: true})
		return
	}
	writeJSON(w, http.StatusOK, sessionWordRes{Word: word, NextIndex: next})
}

type validateReq struct {
	Guess string `json:"guess"`
}

type validateRes struct {
	Guess string `json:"guess"`
	words.Validation
	Message string `json:"message,omitempty"`
}

func (s *Server) handleValidateGuess(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	v := s.validator.Validate(req.Guess)
	writeJSON(w, http.StatusOK, validateRes{Guess: req.Guess, Validation: v, Message: v.Reason.Message()})
}
