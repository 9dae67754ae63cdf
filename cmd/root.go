package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/fbwordle/internal/config"
	"github.com/robalobadob/fbwordle/internal/words"
)

// cfg is populated before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "fbwordle",
	Short: "F&B Wordle: a food-and-beverage word guessing game",
	Long: `fbwordle runs the F&B Wordle game engine.

Use "serve" for the HTTP API, "play" for a game in the terminal,
"daily" to inspect the word of the day and "stats" for stored statistics.
Settings are read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		setupLogging(cfg)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(c config.Config) {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func loadWords(c config.Config) (*words.List, error) {
	return words.Load(words.Config{
		AnswersFile: c.AnswersFile,
		AllowedFile: c.AllowedFile,
		WordLength:  c.WordLength,
	})
}

// parseDay returns today in the daily zone, or the given YYYY-MM-DD.
func parseDay(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}
