package stats

import (
	"errors"
	"testing"
)

func win(date string, attempts int) GameResult {
	return GameResult{SessionID: "s1", PlayerName: "ana", TargetWord: "apple", Guesses: []string{"apple"}, IsWin: true, Attempts: attempts, Date: date}
}

func loss(date string) GameResult {
	return GameResult{SessionID: "s1", PlayerName: "ana", TargetWord: "apple", Guesses: []string{}, Attempts: 6, Date: date}
}

func TestUpdateFirstWin(t *testing.T) {
	prior := Empty(6)
	got := Update(prior, win("2025-03-14", 3))
	if got.GamesPlayed != 1 || got.GamesWon != 1 || got.CurrentStreak != 1 || got.MaxStreak != 1 {
		t.Fatalf("stats = %+v", got)
	}
	if got.WinPercentage != 100 || got.GuessDistribution[2] != 1 {
		t.Fatalf("stats = %+v", got)
	}
	if got.LastPlayed != "2025-03-14" || got.LastCompleted != "2025-03-14" {
		t.Fatalf("dates = %q %q", got.LastPlayed, got.LastCompleted)
	}
	if prior.GuessDistribution[2] != 0 || prior.GamesPlayed != 0 {
		t.Fatal("Update mutated prior")
	}
}

func TestUpdateStreaks(t *testing.T) {
	tests := []struct {
		name    string
		results []GameResult
		current int
		max     int
	}{
		{"consecutive days", []GameResult{win("2025-03-14", 2), win("2025-03-15", 4), win("2025-03-16", 1)}, 3, 3},
		{"same day keeps streak", []GameResult{win("2025-03-14", 2), win("2025-03-15", 3), win("2025-03-15T20:00:00Z", 3)}, 2, 2},
		{"gap resets to one", []GameResult{win("2025-03-14", 2), win("2025-03-15", 2), win("2025-03-18", 2)}, 1, 2},
		{"loss resets to zero", []GameResult{win("2025-03-14", 2), win("2025-03-15", 2), loss("2025-03-16")}, 0, 2},
		{"same-day win after loss", []GameResult{win("2025-03-14", 2), loss("2025-03-14T12:00:00Z"), win("2025-03-14T18:00:00Z", 3)}, 1, 1},
		{"win after loss", []GameResult{win("2025-03-14", 2), loss("2025-03-15"), win("2025-03-16", 2)}, 1, 1},
		{"month boundary", []GameResult{win("2025-02-28T10:00:00Z", 2), win("2025-03-01T09:00:00Z", 2)}, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Empty(6)
			for _, r := range tt.results {
				s = Update(s, r)
			}
			if s.CurrentStreak != tt.current || s.MaxStreak != tt.max {
				t.Fatalf("streak = %d/%d, want %d/%d", s.CurrentStreak, s.MaxStreak, tt.current, tt.max)
			}
			if s.MaxStreak < s.CurrentStreak {
				t.Fatal("max streak below current")
			}
		})
	}
}

func TestUpdateDistributionBounds(t *testing.T) {
	s := Update(Empty(6), win("2025-03-14", 9))
	if s.GamesWon != 1 {
		t.Fatalf("won = %d", s.GamesWon)
	}
	total := 0
	for _, n := range s.GuessDistribution {
		total += n
	}
	if total != 0 {
		t.Fatalf("out-of-range attempts must not be bucketed: %v", s.GuessDistribution)
	}
	// Zero-value prior still gets a distribution.
	s = Update(PlayerStatistics{}, win("2025-03-14", 1))
	if len(s.GuessDistribution) != DefaultMaxAttempts || s.GuessDistribution[0] != 1 {
		t.Fatalf("distribution = %v", s.GuessDistribution)
	}
}

func TestWinPercentage(t *testing.T) {
	tests := []struct{ won, played, want int }{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{5, 5, 100},
	}
	for _, tt := range tests {
		if got := WinPercentage(tt.won, tt.played); got != tt.want {
			t.Errorf("WinPercentage(%d, %d) = %d, want %d", tt.won, tt.played, got, tt.want)
		}
	}
}

func TestSummarizeOrdersByDate(t *testing.T) {
	s := Summarize([]GameResult{win("2025-03-16", 1), win("2025-03-14", 2), win("2025-03-15", 3)})
	if s.GamesPlayed != 3 || s.CurrentStreak != 3 || s.LastCompleted != "2025-03-16" {
		t.Fatalf("stats = %+v", s)
	}
	if empty := Summarize(nil); empty.GamesPlayed != 0 || len(empty.GuessDistribution) != 6 {
		t.Fatalf("empty = %+v", empty)
	}
}

func TestAggregate(t *testing.T) {
	rep := Aggregate([]GameResult{win("2025-03-14", 2), win("2025-03-15", 2), loss("2025-03-16"), win("2025-03-17", 0)}, 6)
	if rep.TotalGames != 4 || rep.TotalWins != 3 || rep.WinRate != 75 {
		t.Fatalf("report = %+v", rep)
	}
	if rep.Distribution[2] != 2 || rep.Distribution[6] != 1 {
		t.Fatalf("distribution = %v", rep.Distribution)
	}
	rep = Aggregate([]GameResult{win("2025-03-14", 1), loss("2025-03-15"), loss("2025-03-16")}, 6)
	if rep.WinRate != 33.33 {
		t.Fatalf("win rate = %v", rep.WinRate)
	}
	if rep = Aggregate(nil, 6); rep.TotalGames != 0 || rep.WinRate != 0 {
		t.Fatalf("empty report = %+v", rep)
	}
}

func TestValidateResult(t *testing.T) {
	ok := win("2025-03-14", 3)
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid result: %v", err)
	}
	tests := map[string]func(*GameResult){
		"no session": func(r *GameResult) { r.SessionID = " " },
		"no player":  func(r *GameResult) { r.PlayerName = "" },
		"no target":  func(r *GameResult) { r.TargetWord = "" },
		"no guesses": func(r *GameResult) { r.Guesses = nil },
		"negative":   func(r *GameResult) { r.Attempts = -1 },
		"bad date":   func(r *GameResult) { r.Date = "14/03/2025" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			r := win("2025-03-14", 3)
			mutate(&r)
			if err := r.Validate(); !errors.Is(err, ErrInvalidResult) {
				t.Fatalf("err = %v, want ErrInvalidResult", err)
			}
		})
	}
}

func TestDay(t *testing.T) {
	for _, in := range []string{"2025-03-14", "2025-03-14T23:59:59Z", "2025-03-14T01:00:00+09:00", "2025-03-14T10:00:00.123Z"} {
		d, ok := Day(in)
		if !ok || d.Format("2006-01-02") != "2025-03-14" {
			t.Errorf("Day(%q) = %v, %v", in, d, ok)
		}
	}
	if _, ok := Day("yesterday"); ok {
		t.Error("expected parse failure")
	}
}
