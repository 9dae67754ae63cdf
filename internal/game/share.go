package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Glyph is the share-grid square for an evaluated state, "" otherwise.
func (s TileState) Glyph() string {
	switch s {
	case TileCorrect:
		return "🟩"
	case TilePresent:
		return "🟨"
	case TileAbsent:
		return "⬛"
	}
	return ""
}

// ShareText renders a spoiler-free summary of g:
//
//	F&B Wordle 2025-03-14 3/6
//
//	⬛🟨⬛⬛⬛
//	🟩🟩⬛🟨⬛
//	🟩🟩🟩🟩🟩
//
// The score is X on a loss. Only completed rows are included.
func ShareText(g *Game, date time.Time) string {
	score := "X"
	if g.Won {
		score = strconv.Itoa(len(g.Guesses))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "F&B Wordle %s %s/%d\n\n", date.Format("2006-01-02"), score, g.Board.MaxAttempts)
	for _, row := range g.Board.Rows {
		if !row.Complete {
			continue
		}
		b.WriteString(strings.Join(lo.Map(row.Tiles, func(t Tile, _ int) string {
			return t.State.Glyph()
		}), ""))
		b.WriteByte('\n')
	}
	return b.String()
}
