// internal/game/types.go
//
// Core type definitions for the F&B Wordle game engine.
// Defines:
//   - TileState: per-letter cell state (empty/filled/correct/present/absent).
//   - Tile, Row, Board: the grid of attempts.
//   - State: coarse lifecycle of a single game.
//   - Game: state for a single in-progress or finished game.

package game

import "github.com/robalobadob/fbwordle/internal/words"

// TileState represents the state of one letter cell.
//   - "empty":   no letter entered.
//   - "filled":  letter entered, not yet evaluated (active row only).
//   - "correct": letter matches the answer at the same position.
//   - "present": letter is in the answer at a different position.
//   - "absent":  letter is not in the answer (after matched occurrences).
type TileState string

const (
	TileEmpty   TileState = "empty"
	TileFilled  TileState = "filled"
	TileCorrect TileState = "correct"
	TilePresent TileState = "present"
	TileAbsent  TileState = "absent"
)

// rank orders evaluated states for keyboard upgrades: absent < present < correct.
// Unevaluated states rank below everything.
func (s TileState) rank() int {
	switch s {
	case TileAbsent:
		return 1
	case TilePresent:
		return 2
	case TileCorrect:
		return 3
	default:
		return 0
	}
}

// Evaluated reports whether s is a verdict produced by Evaluate.
func (s TileState) Evaluated() bool { return s.rank() > 0 }

// Tile is a single letter cell. Letter is "" while empty.
type Tile struct {
	Letter string    `json:"letter"`
	State  TileState `json:"state"`
}

// Row is one attempt. Exactly one row is active while the game is in progress.
type Row struct {
	Tiles    []Tile `json:"tiles"`
	Active   bool   `json:"isActive"`
	Complete bool   `json:"isComplete"`
}

// Board holds every row of the game.
//
// Invariant: rows before CurrentRow are complete, the row at CurrentRow is
// active (unless the game is over) and rows after it are pristine.
type Board struct {
	Rows        []Row `json:"rows"`
	CurrentRow  int   `json:"currentRowIndex"`
	MaxAttempts int   `json:"maxAttempts"`
	WordLength  int   `json:"wordLength"`
}

// State is the lifecycle of a game.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateLost       State = "lost"
)

// Terminal reports whether no further input is accepted.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

// Dictionary is the check consulted on submit. *words.Validator satisfies it.
type Dictionary interface {
	Validate(word string) words.Validation
}

// Game holds the state of a single game session.
type Game struct {
	ID       string               `json:"id"`
	Board    Board                `json:"gameBoard"`
	Answer   string               `json:"targetWord"`     // always lowercase
	Finished bool                 `json:"isGameOver"`     // true once won or lost
	Won      bool                 `json:"isGameWon"`      // true if finished with a win
	Guesses  []string             `json:"guessedWords"`   // accepted guesses, lowercase
	Letters  map[string]TileState `json:"letterStatuses"` // best-known verdict per letter
	Owner    string               `json:"-"`              // session that created the game, if any

	dict Dictionary
}
