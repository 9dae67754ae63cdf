// internal/game/engine.go
//
// Core game engine for a single F&B Wordle session.
// Responsibilities:
//   - Build a fresh board (6x5 by default) for a given answer.
//   - Accept letter input row by row (AddLetter / RemoveLetter).
//   - Validate, score and apply submitted guesses (SubmitGuess / ApplyGuess).
//   - Track keyboard letter statuses and the playing → won/lost transition.
//
// Notes:
//   - Rejected input (incomplete row, unknown word, input after game over) is
//     returned as a Submission with a Reason, never as an error.
//   - A Game is not safe for concurrent use; callers apply input strictly in
//     order (see internal/store for the per-game lock).
package game

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/robalobadob/fbwordle/internal/stats"
	"github.com/robalobadob/fbwordle/internal/words"
)

const (
	DefaultRows = 6
	DefaultCols = 5
)

// Rejection reasons owned by the engine. Validator reasons pass through as-is.
const (
	ReasonIncomplete words.Reason = "incomplete guess"
	ReasonGameOver   words.Reason = "game over"
	ReasonNotStarted words.Reason = "not started"
)

// ErrBadAnswer is returned when an answer does not fit the board.
var ErrBadAnswer = errors.New("game: answer must be exactly word-length letters")

// Option customises a new game.
type Option func(*Game)

// WithSize overrides the number of attempts and the word length.
func WithSize(rows, cols int) Option {
	return func(g *Game) {
		g.Board.MaxAttempts = rows
		g.Board.WordLength = cols
	}
}

// WithID sets a caller-chosen identifier instead of a random UUID.
func WithID(id string) Option {
	return func(g *Game) { g.ID = id }
}

// WithOwner ties the game to the session that created it.
func WithOwner(sessionID string) Option {
	return func(g *Game) { g.Owner = sessionID }
}

// OwnedBy reports whether sessionID may play g. Games without an owner are
// open to everyone.
func (g *Game) OwnedBy(sessionID string) bool {
	return g.Owner == "" || g.Owner == sessionID
}

// New constructs an in-progress game for answer.
// dict is consulted on every submit; nil only enforces the format rules.
func New(answer string, dict Dictionary, opts ...Option) (*Game, error) {
	g := &Game{
		ID:    uuid.NewString(),
		Board: Board{MaxAttempts: DefaultRows, WordLength: DefaultCols},
		dict:  dict,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.Init(answer); err != nil {
		return nil, err
	}
	return g, nil
}

// SetDictionary attaches the word check, e.g. after decoding a stored game.
func (g *Game) SetDictionary(d Dictionary) { g.dict = d }

// Init resets g to a fresh in-progress game for answer.
func (g *Game) Init(answer string) error {
	if g.Board.MaxAttempts <= 0 {
		g.Board.MaxAttempts = DefaultRows
	}
	if g.Board.WordLength <= 0 {
		g.Board.WordLength = DefaultCols
	}
	a := strings.ToLower(strings.TrimSpace(answer))
	if utf8.RuneCountInString(a) != g.Board.WordLength || !isLetters(a) {
		return ErrBadAnswer
	}

	rows := make([]Row, g.Board.MaxAttempts)
	for i := range rows {
		rows[i] = Row{Tiles: emptyTiles(g.Board.WordLength)}
	}
	rows[0].Active = true

	g.Answer = a
	g.Board.Rows = rows
	g.Board.CurrentRow = 0
	g.Finished, g.Won = false, false
	g.Guesses = []string{}
	g.Letters = map[string]TileState{}
	return nil
}

// Reset starts over with a fresh board. An empty answer keeps the current one.
func (g *Game) Reset(answer string) error {
	if strings.TrimSpace(answer) == "" {
		answer = g.Answer
	}
	return g.Init(answer)
}

// State reports the coarse lifecycle state.
func (g *Game) State() State {
	switch {
	case g.Board.Rows == nil:
		return StateNotStarted
	case g.Finished && g.Won:
		return StateWon
	case g.Finished:
		return StateLost
	default:
		return StateInProgress
	}
}

// activeRow returns the row accepting input, or nil when none does.
func (g *Game) activeRow() *Row {
	if g.State() != StateInProgress {
		return nil
	}
	return &g.Board.Rows[g.Board.CurrentRow]
}

// AddLetter writes r into the first empty tile of the active row.
// It reports whether the board changed; finished games, full rows and
// non-letters are ignored.
func (g *Game) AddLetter(r rune) bool {
	row := g.activeRow()
	if row == nil {
		return false
	}
	l := strings.ToLower(string(r))
	if !isLetters(l) {
		return false
	}
	for i := range row.Tiles {
		if row.Tiles[i].Letter == "" {
			row.Tiles[i] = Tile{Letter: l, State: TileFilled}
			return true
		}
	}
	return false
}

// RemoveLetter clears the rightmost filled tile of the active row.
func (g *Game) RemoveLetter() bool {
	row := g.activeRow()
	if row == nil {
		return false
	}
	for i := len(row.Tiles) - 1; i >= 0; i-- {
		if row.Tiles[i].Letter != "" {
			row.Tiles[i] = Tile{State: TileEmpty}
			return true
		}
	}
	return false
}

// Pending returns the letters typed into the active row so far.
func (g *Game) Pending() string {
	row := g.activeRow()
	if row == nil {
		return ""
	}
	var b strings.Builder
	for _, t := range row.Tiles {
		b.WriteString(t.Letter)
	}
	return b.String()
}

// Submission is the outcome of submitting the active row.
type Submission struct {
	Accepted bool         `json:"accepted"`
	Reason   words.Reason `json:"reason,omitempty"`
	Guess    string       `json:"guess,omitempty"`
	Marks    []TileState  `json:"marks,omitempty"`
	Row      int          `json:"row"` // row the submission applied to
	State    State        `json:"state"`
}

// Message is the player-facing text for a rejection.
func (s Submission) Message() string {
	switch s.Reason {
	case ReasonIncomplete:
		return "Not enough letters"
	case ReasonGameOver:
		return "Game is over"
	case ReasonNotStarted:
		return "No game in progress"
	default:
		return s.Reason.Message()
	}
}

func (g *Game) reject(reason words.Reason) Submission {
	return Submission{Reason: reason, Row: g.Board.CurrentRow, State: g.State()}
}

// SubmitGuess validates, scores and applies the active row.
//
// State transitions:
//   - guess == answer → Finished, Won.
//   - otherwise, on the last row → Finished (loss).
//   - otherwise the next row becomes active.
//
// On a terminal transition CurrentRow keeps pointing at the completed row.
func (g *Game) SubmitGuess() Submission {
	switch g.State() {
	case StateNotStarted:
		return g.reject(ReasonNotStarted)
	case StateWon, StateLost:
		return g.reject(ReasonGameOver)
	}

	guess := g.Pending()
	if utf8.RuneCountInString(guess) != g.Board.WordLength {
		return g.reject(ReasonIncomplete)
	}
	if v := g.validate(guess); !v.Valid {
		return g.reject(v.Reason)
	}

	idx := g.Board.CurrentRow
	row := &g.Board.Rows[idx]
	marks := Evaluate(guess, g.Answer)
	for i := range row.Tiles {
		row.Tiles[i].State = marks[i]
	}
	row.Complete, row.Active = true, false

	for i, r := range []rune(guess) {
		g.upgradeLetter(string(r), marks[i])
	}
	g.Guesses = append(g.Guesses, guess)

	won := guess == g.Answer
	lost := !won && idx == g.Board.MaxAttempts-1
	if won || lost {
		g.Finished, g.Won = true, won
	} else {
		g.Board.CurrentRow++
		g.Board.Rows[g.Board.CurrentRow].Active = true
	}

	return Submission{Accepted: true, Guess: guess, Marks: marks, Row: idx, State: g.State()}
}

// ApplyGuess replaces the active row with word and submits it.
// Invalid words are rejected before the board is touched.
func (g *Game) ApplyGuess(word string) Submission {
	switch g.State() {
	case StateNotStarted:
		return g.reject(ReasonNotStarted)
	case StateWon, StateLost:
		return g.reject(ReasonGameOver)
	}
	w := strings.ToLower(strings.TrimSpace(word))
	if v := g.validate(w); !v.Valid {
		return g.reject(v.Reason)
	}
	for g.RemoveLetter() {
	}
	for _, r := range w {
		g.AddLetter(r)
	}
	return g.SubmitGuess()
}

// upgradeLetter records s for letter only if it beats what is known.
// absent < present < correct; statuses never downgrade.
func (g *Game) upgradeLetter(letter string, s TileState) {
	if s.rank() > g.Letters[letter].rank() {
		g.Letters[letter] = s
	}
}

// LetterStatus returns the best-known verdict for a keyboard letter,
// or TileEmpty if the letter has not been guessed.
func (g *Game) LetterStatus(letter string) TileState {
	if s, ok := g.Letters[strings.ToLower(letter)]; ok {
		return s
	}
	return TileEmpty
}

// validate checks w against the dictionary. The answer itself is always
// accepted once it passes the format rules, even if the list lacks it.
func (g *Game) validate(w string) words.Validation {
	format := words.NewValidator(anyWord{}, g.Board.WordLength).Validate(w)
	if !format.Valid || g.dict == nil || strings.EqualFold(strings.TrimSpace(w), g.Answer) {
		return format
	}
	return g.dict.Validate(w)
}

// anyWord accepts every word; used when no dictionary is attached.
type anyWord struct{}

func (anyWord) Contains(string) bool { return true }

// Result converts a finished game into a stats.GameResult.
// ok is false while the game is still in progress.
func (g *Game) Result(sessionID, player string, at time.Time) (stats.GameResult, bool) {
	if !g.Finished {
		return stats.GameResult{}, false
	}
	return stats.GameResult{
		SessionID:  sessionID,
		PlayerName: player,
		TargetWord: g.Answer,
		Guesses:    append([]string(nil), g.Guesses...),
		IsWin:      g.Won,
		Attempts:   len(g.Guesses),
		Date:       at.Format(time.RFC3339),
	}, true
}

// Clone returns a deep copy that shares no mutable state with g.
func (g *Game) Clone() *Game {
	c := *g
	if g.Board.Rows != nil {
		c.Board.Rows = make([]Row, len(g.Board.Rows))
		for i, r := range g.Board.Rows {
			r.Tiles = append([]Tile(nil), r.Tiles...)
			c.Board.Rows[i] = r
		}
	}
	c.Guesses = append([]string(nil), g.Guesses...)
	c.Letters = make(map[string]TileState, len(g.Letters))
	for k, v := range g.Letters {
		c.Letters[k] = v
	}
	return &c
}

func emptyTiles(n int) []Tile {
	t := make([]Tile, n)
	for i := range t {
		t[i] = Tile{State: TileEmpty}
	}
	return t
}

// isLetters checks that a non-empty string consists only of lowercase a–z.
func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
