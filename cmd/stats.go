package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/fbwordle/assets"
	"github.com/robalobadob/fbwordle/internal/db"
	"github.com/robalobadob/fbwordle/internal/stats"
)

var (
	statsSession string
	statsRebuild bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stored statistics",
	Long: `Show statistics for one session (--session), or the aggregate
report over all stored results when no session is given.
--rebuild recomputes the session's statistics from its result history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := db.OpenMigrated(cfg.DBPath, assets.Migrations())
		if err != nil {
			return err
		}
		defer conn.Close()
		st := stats.NewSQLStore(conn, cfg.MaxAttempts)
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if statsSession == "" {
			if statsRebuild {
				return errors.New("--rebuild needs --session")
			}
			all, err := st.AllResults(ctx)
			if err != nil {
				return err
			}
			printReport(out, stats.Aggregate(all, cfg.MaxAttempts), cfg.MaxAttempts)
			return nil
		}

		var ps stats.PlayerStatistics
		if statsRebuild {
			results, err := st.Results(ctx, statsSession)
			if err != nil {
				return err
			}
			ps = stats.SummarizeN(results, cfg.MaxAttempts)
			if err := st.Save(ctx, statsSession, ps); err != nil {
				return err
			}
		} else if ps, err = st.Load(ctx, statsSession); err != nil {
			return err
		}
		printPlayer(out, ps)
		return nil
	},
}

func printPlayer(out io.Writer, ps stats.PlayerStatistics) {
	fmt.Fprintln(out, "📊 Statistics")
	fmt.Fprintln(out, "-------------")
	fmt.Fprintf(out, "Played:         %d\n", ps.GamesPlayed)
	fmt.Fprintf(out, "Win %%:          %d\n", ps.WinPercentage)
	fmt.Fprintf(out, "Current streak: %d\n", ps.CurrentStreak)
	fmt.Fprintf(out, "Max streak:     %d\n", ps.MaxStreak)
	fmt.Fprintln(out, "Guess distribution:")
	peak := 0
	for _, n := range ps.GuessDistribution {
		peak = max(peak, n)
	}
	for i, n := range ps.GuessDistribution {
		fmt.Fprintf(out, "  %d | %s %d\n", i+1, bar(n, peak), n)
	}
}

func printReport(out io.Writer, rep stats.Report, maxAttempts int) {
	fmt.Fprintln(out, "📊 All players")
	fmt.Fprintln(out, "--------------")
	fmt.Fprintf(out, "Games:    %d\n", rep.TotalGames)
	fmt.Fprintf(out, "Wins:     %d\n", rep.TotalWins)
	fmt.Fprintf(out, "Win rate: %.2f%%\n", rep.WinRate)
	for i := 1; i <= maxAttempts; i++ {
		fmt.Fprintf(out, "  %d | %d\n", i, rep.Distribution[i])
	}
}

// bar scales n against peak to at most 20 blocks.
func bar(n, peak int) string {
	if peak == 0 || n == 0 {
		return ""
	}
	return strings.Repeat("█", max(1, n*20/peak))
}

func init() {
	statsCmd.Flags().StringVar(&statsSession, "session", "", "session ID to show")
	statsCmd.Flags().BoolVar(&statsRebuild, "rebuild", false, "recompute statistics from stored results")
	rootCmd.AddCommand(statsCmd)
}
