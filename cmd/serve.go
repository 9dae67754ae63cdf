package cmd

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/fbwordle/assets"
	"github.com/robalobadob/fbwordle/internal/daily"
	"github.com/robalobadob/fbwordle/internal/db"
	"github.com/robalobadob/fbwordle/internal/httpserver"
	"github.com/robalobadob/fbwordle/internal/stats"
	"github.com/robalobadob/fbwordle/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := loadWords(cfg)
		if err != nil {
			log.Error().Err(err).Msg("failed to load word lists")
			return err
		}
		if !list.IsAnswer(cfg.FallbackWord) {
			log.Warn().Str("word", cfg.FallbackWord).Msg("FALLBACK_WORD is not in the answer list")
		}

		conn, err := db.OpenMigrated(cfg.DBPath, assets.Migrations())
		if err != nil {
			log.Error().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
			return err
		}
		defer conn.Close()

		rot, err := daily.NewRotation(list.Head(cfg.RotationSize), daily.NewSQLCursor(conn))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		games := store.NewMemoryStore()
		go games.Janitor(ctx, 10*time.Minute, cfg.GameTTL)

		srv := httpserver.New(cfg, httpserver.Deps{
			Games:    games,
			Words:    list,
			Stats:    stats.NewSQLStore(conn, cfg.MaxAttempts),
			Rotation: rot,
		})

		answers, allowed := list.Stats()
		log.Info().
			Str("port", cfg.Port).
			Int("answers", answers).
			Int("allowed", allowed).
			Str("tz", cfg.DailyLocation.String()).
			Msg("starting fbwordle server")
		if err := srv.Run(ctx, ":"+cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server exited")
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
