package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/fbwordle/internal/daily"
	"github.com/robalobadob/fbwordle/internal/words"
)

var (
	dailyDate string
	dailyDays int
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Print the word of the day",
	Long: `Print the word of the day for today (in DAILY_TIMEZONE) or --date.
With --days N, print N consecutive days starting at that date.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := loadWords(cfg)
		if err != nil {
			return err
		}
		day, err := parseDay(dailyDate, cfg.DailyLocation)
		if err != nil {
			return err
		}
		return printDaily(cmd.OutOrStdout(), list, day, dailyDays)
	},
}

func printDaily(out io.Writer, list *words.List, from time.Time, days int) error {
	if days < 1 {
		days = 1
	}
	answers := list.Answers()
	for i := 0; i < days; i++ {
		d := from.AddDate(0, 0, i)
		idx, err := daily.WordIndex(d, len(answers))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  #%-4d %s\n", daily.DateKey(d), idx, answers[idx])
	}
	return nil
}

func init() {
	dailyCmd.Flags().StringVar(&dailyDate, "date", "", "date as YYYY-MM-DD (default today)")
	dailyCmd.Flags().IntVar(&dailyDays, "days", 1, "number of consecutive days to print")
	rootCmd.AddCommand(dailyCmd)
}
