package cmd

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/fbwordle/internal/daily"
	"github.com/robalobadob/fbwordle/internal/game"
	"github.com/robalobadob/fbwordle/internal/words"
)

var (
	playDate   string
	playAnswer string
	playRandom bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Long: `Play F&B Wordle line by line: type a guess and press Enter.
By default the answer is the word of the day; --date picks another day,
--random a random answer and --answer a fixed one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := loadWords(cfg)
		if err != nil {
			return err
		}
		day, err := parseDay(playDate, cfg.DailyLocation)
		if err != nil {
			return err
		}

		answer := playAnswer
		switch {
		case answer != "":
		case playRandom:
			answer = list.Random()
		default:
			if answer, err = daily.SelectWord(day, list.Answers()); err != nil {
				answer = cfg.FallbackWord
			}
		}

		g, err := game.New(answer, words.NewValidator(list, list.WordLength()),
			game.WithSize(cfg.MaxAttempts, list.WordLength()))
		if err != nil {
			return err
		}
		return play(cmd.InOrStdin(), cmd.OutOrStdout(), g, day)
	},
}

// play reads one guess per line until the game ends or input runs out.
func play(in io.Reader, out io.Writer, g *game.Game, day time.Time) error {
	fmt.Fprintf(out, "F&B Wordle %s: guess the %d-letter word in %d tries.\n",
		daily.DateKey(day), g.Board.WordLength, g.Board.MaxAttempts)

	sc := bufio.NewScanner(in)
	for !g.Finished {
		fmt.Fprintf(out, "%d/%d> ", len(g.Guesses)+1, g.Board.MaxAttempts)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		sub := g.ApplyGuess(sc.Text())
		if !sub.Accepted {
			fmt.Fprintln(out, sub.Message())
			continue
		}
		fmt.Fprintln(out, renderRow(g.Board.Rows[sub.Row]))
		if !g.Finished {
			fmt.Fprintln(out, "   "+renderKeyboard(g))
		}
	}

	if g.Won {
		fmt.Fprintln(out, "🎉 Solved!")
	} else {
		fmt.Fprintf(out, "The word was %s.\n", strings.ToUpper(g.Answer))
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, game.ShareText(g, day))
	return nil
}

func renderRow(r game.Row) string {
	var letters, squares strings.Builder
	for _, t := range r.Tiles {
		letters.WriteString(strings.ToUpper(t.Letter))
		squares.WriteString(t.State.Glyph())
	}
	return "   " + letters.String() + "  " + squares.String()
}

// renderKeyboard lists guessed letters grouped by their best verdict.
func renderKeyboard(g *game.Game) string {
	groups := map[game.TileState][]string{}
	for l, s := range g.Letters {
		groups[s] = append(groups[s], strings.ToUpper(l))
	}
	var parts []string
	for _, s := range []game.TileState{game.TileCorrect, game.TilePresent, game.TileAbsent} {
		if ls := groups[s]; len(ls) > 0 {
			sort.Strings(ls)
			parts = append(parts, s.Glyph()+" "+strings.Join(ls, ""))
		}
	}
	return strings.Join(parts, "  ")
}

func init() {
	playCmd.Flags().StringVar(&playDate, "date", "", "play the word of this day (YYYY-MM-DD)")
	playCmd.Flags().StringVar(&playAnswer, "answer", "", "play a fixed answer")
	playCmd.Flags().BoolVar(&playRandom, "random", false, "play a random answer")
	rootCmd.AddCommand(playCmd)
}
