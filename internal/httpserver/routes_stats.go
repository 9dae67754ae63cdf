// internal/httpserver/routes_stats.go
//
// Result submission and statistics:
//   - POST /api/submit-result       → store a completed game, update statistics
//   - GET  /api/statistics          → this session's PlayerStatistics
//   - GET  /api/statistics/summary  → aggregate report over all results

package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/fbwordle/internal/stats"
)

const msgStatsDisabled = "statistics disabled"

func (s *Server) mountStats(r chi.Router) {
	r.Post("/submit-result", s.handleSubmitResult)
	r.Get("/statistics", s.handleStatistics)
	r.Get("/statistics/summary", s.handleSummary)
}

type submitResultRes struct {
	Success    bool                   `json:"success"`
	Statistics stats.PlayerStatistics `json:"statistics"`
}

func (s *Server) handleSubmitResult(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		writeError(w, http.StatusServiceUnavailable, msgStatsDisabled)
		return
	}
	var res stats.GameResult
	if err := decode(r, &res); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if res.SessionID == "" {
		res.SessionID = sessionID(r)
	}
	res.TargetWord = strings.ToLower(strings.TrimSpace(res.TargetWord))
	if err := res.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.words.IsAnswer(res.TargetWord) {
		writeError(w, http.StatusBadRequest, "invalid target word")
		return
	}

	st, err := s.stats.Record(r.Context(), res)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", res.SessionID).Msg("submit result")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusCreated, submitResultRes{Success: true, Statistics: st})
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		writeError(w, http.StatusServiceUnavailable, msgStatsDisabled)
		return
	}
	st, err := s.stats.Load(r.Context(), sessionID(r))
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load statistics")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		writeError(w, http.StatusServiceUnavailable, msgStatsDisabled)
		return
	}
	all, err := s.stats.AllResults(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load results")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, stats.Aggregate(all, s.maxAttempts()))
}
