package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/fbwordle/internal/game"
	"github.com/robalobadob/fbwordle/internal/stats"
	"github.com/robalobadob/fbwordle/internal/store"
)

const anonymousPlayer = "anonymous"

// errForeignGame hides games created by another session; it answers 404.
var errForeignGame = errors.New("game belongs to another session")

func (s *Server) mountGame(r chi.Router) {
	r.Post("/new", s.handleNewGame)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetGame)
		r.Post("/letter", s.handleAddLetter)
		r.Delete("/letter", s.handleRemoveLetter)
		r.Post("/submit", s.handleSubmit)
		r.Post("/guess", s.handleGuess)
		r.Post("/reset", s.handleReset)
		r.Get("/share", s.handleShare)
	})
}

// gameView is the client-facing GameState. TargetWord is only set once the
// game is over.
type gameView struct {
	ID         string                    `json:"id"`
	Board      game.Board                `json:"gameBoard"`
	State      game.State                `json:"state"`
	TargetWord string                    `json:"targetWord,omitempty"`
	IsGameOver bool                      `json:"isGameOver"`
	IsGameWon  bool                      `json:"isGameWon"`
	Guesses    []string                  `json:"guessedWords"`
	Letters    map[string]game.TileState `json:"letterStatuses"`
}

func viewOf(g *game.Game) gameView {
	g = g.Clone()
	v := gameView{
		ID:         g.ID,
		Board:      g.Board,
		State:      g.State(),
		IsGameOver: g.Finished,
		IsGameWon:  g.Won,
		Guesses:    g.Guesses,
		Letters:    g.Letters,
	}
	if g.Finished {
		v.TargetWord = g.Answer
	}
	return v
}

type newGameReq struct {
	Answer string `json:"answer"` // fixed answer (testing)
	Daily  bool   `json:"daily"`  // play the word of the day
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	answer := strings.ToLower(strings.TrimSpace(req.Answer))
	switch {
	case answer != "":
	case req.Daily:
		answer, _ = s.dailyAnswer(r.Context(), s.today())
	default:
		answer = s.words.Random()
	}

	g, err := game.New(answer, s.validator,
		game.WithSize(s.maxAttempts(), s.words.WordLength()),
		game.WithOwner(sessionID(r)),
	)
	if errors.Is(err, game.ErrBadAnswer) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	if err := s.games.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	hlog.FromRequest(r).Debug().Str("gameId", g.ID).Bool("daily", req.Daily).Msg("game created")
	writeJSON(w, http.StatusCreated, viewOf(g))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.getGame(r)
	if err != nil {
		s.gameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(g))
}

type letterReq struct {
	Letter string `json:"letter"`
}

type letterRes struct {
	Changed bool     `json:"changed"`
	Pending string   `json:"pending"`
	Game    gameView `json:"game"`
}

func (s *Server) handleAddLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := decode(r, &req); err != nil || utf8.RuneCountInString(req.Letter) != 1 {
		writeError(w, http.StatusBadRequest, "expected a single letter")
		return
	}
	l, _ := utf8.DecodeRuneInString(req.Letter)
	s.withGame(w, r, func(g *game.Game) any {
		changed := g.AddLetter(l)
		return letterRes{Changed: changed, Pending: g.Pending(), Game: viewOf(g)}
	})
}

func (s *Server) handleRemoveLetter(w http.ResponseWriter, r *http.Request) {
	s.withGame(w, r, func(g *game.Game) any {
		changed := g.RemoveLetter()
		return letterRes{Changed: changed, Pending: g.Pending(), Game: viewOf(g)}
	})
}

type submitReq struct {
	Word       string `json:"word"`
	PlayerName string `json:"playerName"`
}

type submitRes struct {
	game.Submission
	Notice     string                  `json:"message,omitempty"`
	Game       gameView                `json:"game"`
	Statistics *stats.PlayerStatistics `json:"statistics,omitempty"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.submit(w, r, req.PlayerName, (*game.Game).SubmitGuess)
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.submit(w, r, req.PlayerName, func(g *game.Game) game.Submission {
		return g.ApplyGuess(req.Word)
	})
}

// submit applies fn under the game lock and records the result if the game
// just finished.
func (s *Server) submit(w http.ResponseWriter, r *http.Request, player string, fn func(*game.Game) game.Submission) {
	var (
		res      submitRes
		result   stats.GameResult
		finished bool
	)
	err := s.updateGame(r, func(g *game.Game) error {
		sub := fn(g)
		res = submitRes{Submission: sub, Game: viewOf(g)}
		if !sub.Accepted {
			res.Notice = sub.Message()
			return nil
		}
		if sub.State.Terminal() {
			if player == "" {
				player = anonymousPlayer
			}
			result, finished = g.Result(sessionID(r), player, s.today())
		}
		return nil
	})
	if err != nil {
		s.gameError(w, r, err)
		return
	}
	if finished {
		if st, ok := s.recordResult(r, result); ok {
			res.Statistics = &st
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// recordResult stores a finished game. Failures are logged only.
func (s *Server) recordResult(r *http.Request, result stats.GameResult) (stats.PlayerStatistics, bool) {
	if s.stats == nil {
		return stats.PlayerStatistics{}, false
	}
	st, err := s.stats.Record(r.Context(), result)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("session", result.SessionID).Msg("record result")
		return stats.PlayerStatistics{}, false
	}
	return st, true
}

type resetReq struct {
	Answer string `json:"answer"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var view gameView
	err := s.updateGame(r, func(g *game.Game) error {
		if err := g.Reset(req.Answer); err != nil {
			return err
		}
		view = viewOf(g)
		return nil
	})
	if err != nil {
		s.gameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	g, err := s.getGame(r)
	if err != nil {
		s.gameError(w, r, err)
		return
	}
	if !g.Finished {
		writeError(w, http.StatusConflict, "game_in_progress")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": game.ShareText(g, s.today())})
}

// withGame runs fn under the game lock and writes its return value.
func (s *Server) withGame(w http.ResponseWriter, r *http.Request, fn func(*game.Game) any) {
	var out any
	err := s.updateGame(r, func(g *game.Game) error {
		out = fn(g)
		return nil
	})
	if err != nil {
		s.gameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// getGame loads the game named in the URL if the caller's session owns it.
func (s *Server) getGame(r *http.Request) (*game.Game, error) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	if !g.OwnedBy(sessionID(r)) {
		return nil, errForeignGame
	}
	return g, nil
}

// updateGame runs fn under the game lock after checking ownership.
func (s *Server) updateGame(r *http.Request, fn func(*game.Game) error) error {
	return s.games.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		if !g.OwnedBy(sessionID(r)) {
			return errForeignGame
		}
		return fn(g)
	})
}

func (s *Server) gameError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, errForeignGame):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrBadAnswer):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("game store")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

func (s *Server) maxAttempts() int {
	if s.cfg.MaxAttempts > 0 {
		return s.cfg.MaxAttempts
	}
	return game.DefaultRows
}
