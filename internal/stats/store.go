package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store persists results and per-session statistics.
type Store interface {
	SaveResult(ctx context.Context, r GameResult) (string, error)
	Results(ctx context.Context, sessionID string) ([]GameResult, error)
	AllResults(ctx context.Context) ([]GameResult, error)
	Load(ctx context.Context, sessionID string) (PlayerStatistics, error)
	Save(ctx context.Context, sessionID string, s PlayerStatistics) error
	Record(ctx context.Context, r GameResult) (PlayerStatistics, error)
}

// SQLStore is the SQLite implementation of Store (tables from assets/sql).
type SQLStore struct {
	db          *sql.DB
	maxAttempts int
}

var _ Store = (*SQLStore)(nil)

func NewSQLStore(db *sql.DB, maxAttempts int) *SQLStore {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &SQLStore{db: db, maxAttempts: maxAttempts}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLStore) SaveResult(ctx context.Context, r GameResult) (string, error) {
	return insertResult(ctx, s.db, r)
}

// withDefaults fills the ID and date a client may omit.
func (r GameResult) withDefaults() GameResult {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Date == "" {
		r.Date = time.Now().UTC().Format(time.RFC3339)
	}
	return r
}

func insertResult(ctx context.Context, ex execer, r GameResult) (string, error) {
	r = r.withDefaults()
	guesses, err := json.Marshal(r.Guesses)
	if err != nil {
		return "", err
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO game_results
			(id, session_id, player_name, target_word, guesses, is_win, attempts, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SessionID, r.PlayerName, r.TargetWord, string(guesses), r.IsWin, r.Attempts, r.Date,
	)
	if err != nil {
		return "", fmt.Errorf("insert result: %w", err)
	}
	return r.ID, nil
}

func (s *SQLStore) Results(ctx context.Context, sessionID string) ([]GameResult, error) {
	return s.queryResults(ctx, `
		SELECT id, session_id, player_name, target_word, guesses, is_win, attempts, date
		FROM game_results WHERE session_id=? ORDER BY date ASC, submitted_at ASC`, sessionID)
}

func (s *SQLStore) AllResults(ctx context.Context) ([]GameResult, error) {
	return s.queryResults(ctx, `
		SELECT id, session_id, player_name, target_word, guesses, is_win, attempts, date
		FROM game_results ORDER BY date ASC, submitted_at ASC`)
}

func (s *SQLStore) queryResults(ctx context.Context, q string, args ...any) ([]GameResult, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GameResult{}
	for rows.Next() {
		var r GameResult
		var guesses string
		if err := rows.Scan(&r.ID, &r.SessionID, &r.PlayerName, &r.TargetWord, &guesses, &r.IsWin, &r.Attempts, &r.Date); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(guesses), &r.Guesses); err != nil {
			return nil, fmt.Errorf("decode guesses for %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Load returns the stored statistics, or Empty when the session has none.
func (s *SQLStore) Load(ctx context.Context, sessionID string) (PlayerStatistics, error) {
	return loadStats(ctx, s.db, sessionID, s.maxAttempts)
}

func loadStats(ctx context.Context, ex execer, sessionID string, maxAttempts int) (PlayerStatistics, error) {
	var st PlayerStatistics
	var dist string
	err := ex.QueryRowContext(ctx, `
		SELECT games_played, games_won, current_streak, max_streak, win_percentage,
		       guess_distribution, last_played, last_completed
		FROM player_stats WHERE session_id=?`, sessionID,
	).Scan(&st.GamesPlayed, &st.GamesWon, &st.CurrentStreak, &st.MaxStreak, &st.WinPercentage,
		&dist, &st.LastPlayed, &st.LastCompleted)
	if errors.Is(err, sql.ErrNoRows) {
		return Empty(maxAttempts), nil
	}
	if err != nil {
		return PlayerStatistics{}, err
	}
	if err := json.Unmarshal([]byte(dist), &st.GuessDistribution); err != nil {
		return PlayerStatistics{}, fmt.Errorf("decode distribution: %w", err)
	}
	return st, nil
}

// Save upserts the statistics for a session.
func (s *SQLStore) Save(ctx context.Context, sessionID string, st PlayerStatistics) error {
	return saveStats(ctx, s.db, sessionID, st)
}

func saveStats(ctx context.Context, ex execer, sessionID string, st PlayerStatistics) error {
	dist, err := json.Marshal(st.GuessDistribution)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO player_stats
			(session_id, games_played, games_won, current_streak, max_streak, win_percentage,
			 guess_distribution, last_played, last_completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			games_played=excluded.games_played,
			games_won=excluded.games_won,
			current_streak=excluded.current_streak,
			max_streak=excluded.max_streak,
			win_percentage=excluded.win_percentage,
			guess_distribution=excluded.guess_distribution,
			last_played=excluded.last_played,
			last_completed=excluded.last_completed`,
		sessionID, st.GamesPlayed, st.GamesWon, st.CurrentStreak, st.MaxStreak, st.WinPercentage,
		string(dist), st.LastPlayed, st.LastCompleted,
	)
	if err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// Record stores r and folds it into the session's statistics in one transaction.
func (s *SQLStore) Record(ctx context.Context, r GameResult) (PlayerStatistics, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PlayerStatistics{}, err
	}
	defer func() { _ = tx.Rollback() }()

	r = r.withDefaults()
	if _, err := insertResult(ctx, tx, r); err != nil {
		return PlayerStatistics{}, err
	}
	prior, err := loadStats(ctx, tx, r.SessionID, s.maxAttempts)
	if err != nil {
		return PlayerStatistics{}, err
	}
	next := Update(prior, r)
	if err := saveStats(ctx, tx, r.SessionID, next); err != nil {
		return PlayerStatistics{}, err
	}
	if err := tx.Commit(); err != nil {
		return PlayerStatistics{}, fmt.Errorf("commit stats: %w", err)
	}
	return next, nil
}
