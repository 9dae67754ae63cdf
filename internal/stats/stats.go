// internal/stats/stats.go
//
// Player statistics derived from completed game results.
//
//   - Update folds one GameResult into prior statistics (pure, no mutation).
//   - Summarize recomputes statistics from scratch (migration/recovery).
//   - Aggregate produces the cross-player report served by /api/statistics/summary.
//
// Streak policy (wins only, keyed on calendar days of GameResult.Date):
//   - same day as LastCompleted  → streak unchanged (duplicate submission)
//   - the following day          → streak + 1
//   - any other gap / first win  → streak = 1
//
// A loss resets CurrentStreak to 0; MaxStreak never decreases.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DefaultMaxAttempts sizes the guess distribution when none is given.
const DefaultMaxAttempts = 6

// ErrInvalidResult is wrapped by GameResult.Validate failures.
var ErrInvalidResult = errors.New("invalid game result")

// GameResult is one completed game as submitted by a client.
type GameResult struct {
	ID         string   `json:"id,omitempty"`
	SessionID  string   `json:"sessionId"`
	PlayerName string   `json:"playerName"`
	TargetWord string   `json:"targetWord"`
	Guesses    []string `json:"guesses"`
	IsWin      bool     `json:"isWin"`
	Attempts   int      `json:"attempts"`
	Date       string   `json:"date"` // ISO-8601, date or date-time
}

// Validate checks the fields a stored result must carry.
func (r GameResult) Validate() error {
	switch {
	case strings.TrimSpace(r.SessionID) == "":
		return fmt.Errorf("%w: sessionId is required", ErrInvalidResult)
	case strings.TrimSpace(r.PlayerName) == "":
		return fmt.Errorf("%w: playerName is required", ErrInvalidResult)
	case strings.TrimSpace(r.TargetWord) == "":
		return fmt.Errorf("%w: targetWord is required", ErrInvalidResult)
	case r.Guesses == nil:
		return fmt.Errorf("%w: guesses is required", ErrInvalidResult)
	case r.Attempts < 0:
		return fmt.Errorf("%w: attempts must not be negative", ErrInvalidResult)
	case r.Date != "":
		if _, ok := Day(r.Date); !ok {
			return fmt.Errorf("%w: date %q is not ISO-8601", ErrInvalidResult, r.Date)
		}
	}
	return nil
}

// PlayerStatistics is the derived per-player record.
type PlayerStatistics struct {
	GamesPlayed       int    `json:"gamesPlayed"`
	GamesWon          int    `json:"gamesWon"`
	CurrentStreak     int    `json:"currentStreak"`
	MaxStreak         int    `json:"maxStreak"`
	WinPercentage     int    `json:"winPercentage"`
	GuessDistribution []int  `json:"guessDistribution"` // index = attempts-1
	LastPlayed        string `json:"lastPlayed"`
	LastCompleted     string `json:"lastCompleted"`
}

// Empty returns zeroed statistics with a distribution of maxAttempts buckets.
func Empty(maxAttempts int) PlayerStatistics {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return PlayerStatistics{GuessDistribution: make([]int, maxAttempts)}
}

// Update returns prior with result folded in. prior is left untouched.
func Update(prior PlayerStatistics, result GameResult) PlayerStatistics {
	next := prior
	next.GuessDistribution = append([]int(nil), prior.GuessDistribution...)
	if len(next.GuessDistribution) == 0 {
		next.GuessDistribution = make([]int, DefaultMaxAttempts)
	}

	next.GamesPlayed++
	next.LastPlayed = result.Date

	if result.IsWin {
		next.GamesWon++
		if i := result.Attempts - 1; i >= 0 && i < len(next.GuessDistribution) {
			next.GuessDistribution[i]++
		}

		gap, ok := dayGap(prior.LastCompleted, result.Date)
		switch {
		case ok && gap == 0:
			// Same day: unchanged, except that a win never leaves a zero streak.
			next.CurrentStreak = max(prior.CurrentStreak, 1)
		case ok && gap == 1:
			next.CurrentStreak = prior.CurrentStreak + 1
		default:
			next.CurrentStreak = 1
		}
		next.LastCompleted = result.Date
	} else {
		next.CurrentStreak = 0
	}

	next.MaxStreak = max(prior.MaxStreak, next.CurrentStreak)
	next.WinPercentage = WinPercentage(next.GamesWon, next.GamesPlayed)
	return next
}

// Summarize recomputes statistics from a full result history,
// applying results in date order.
func Summarize(results []GameResult) PlayerStatistics {
	return SummarizeN(results, DefaultMaxAttempts)
}

// SummarizeN is Summarize with an explicit distribution size.
func SummarizeN(results []GameResult, maxAttempts int) PlayerStatistics {
	ordered := append([]GameResult(nil), results...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, _ := Day(ordered[i].Date)
		b, _ := Day(ordered[j].Date)
		return a.Before(b)
	})
	return lo.Reduce(ordered, func(s PlayerStatistics, r GameResult, _ int) PlayerStatistics {
		return Update(s, r)
	}, Empty(maxAttempts))
}

// WinPercentage is round(100*won/played), 0 when nothing was played.
func WinPercentage(won, played int) int {
	if played <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(won) / float64(played)))
}

// Report is the aggregate view over many players' results.
type Report struct {
	TotalGames   int         `json:"totalGames"`
	TotalWins    int         `json:"totalWins"`
	WinRate      float64     `json:"winRate"`      // percent, two decimals
	Distribution map[int]int `json:"distribution"` // attempts -> wins
}

// Aggregate builds a Report. Wins without a recorded attempt count are
// bucketed at maxAttempts.
func Aggregate(results []GameResult, maxAttempts int) Report {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	wins := lo.Filter(results, func(r GameResult, _ int) bool { return r.IsWin })
	rep := Report{
		TotalGames: len(results),
		TotalWins:  len(wins),
		Distribution: lo.CountValuesBy(wins, func(r GameResult) int {
			if r.Attempts <= 0 {
				return maxAttempts
			}
			return r.Attempts
		}),
	}
	if rep.TotalGames > 0 {
		rate := 100 * float64(rep.TotalWins) / float64(rep.TotalGames)
		rep.WinRate = math.Round(rate*100) / 100
	}
	return rep
}

// Day parses the calendar day of an ISO-8601 date or date-time, keeping the
// day as written (no time zone conversion).
func Day(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dayGap returns the number of calendar days from a to b.
func dayGap(a, b string) (int, bool) {
	da, ok := Day(a)
	if !ok {
		return 0, false
	}
	db, ok := Day(b)
	if !ok {
		return 0, false
	}
	return int(math.Round(db.Sub(da).Hours() / 24)), true
}
