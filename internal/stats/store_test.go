package stats

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/robalobadob/fbwordle/assets"
	"github.com/robalobadob/fbwordle/internal/db"
)

func newStore(t *testing.T) *SQLStore {
	t.Helper()
	conn, err := db.OpenMigrated(filepath.Join(t.TempDir(), "stats.db"), assets.Migrations())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewSQLStore(conn, 6)
}

func TestLoadUnknownSessionIsEmpty(t *testing.T) {
	s := newStore(t)
	got, err := s.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, Empty(6)) {
		t.Fatalf("got %+v", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	want := PlayerStatistics{
		GamesPlayed: 7, GamesWon: 5, CurrentStreak: 2, MaxStreak: 4, WinPercentage: 71,
		GuessDistribution: []int{0, 1, 2, 1, 1, 0},
		LastPlayed:        "2025-03-14", LastCompleted: "2025-03-14",
	}
	for i := 0; i < 2; i++ {
		if err := s.Save(ctx, "s1", want); err != nil {
			t.Fatal(err)
		}
		got, err := s.Load(ctx, "s1")
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("round %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestRecordFoldsResults(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if _, err := s.Record(ctx, win("2025-03-14", 3)); err != nil {
		t.Fatal(err)
	}
	got, err := s.Record(ctx, win("2025-03-15", 2))
	if err != nil {
		t.Fatal(err)
	}
	if got.GamesPlayed != 2 || got.CurrentStreak != 2 || got.GuessDistribution[1] != 1 || got.GuessDistribution[2] != 1 {
		t.Fatalf("stats = %+v", got)
	}
	loaded, err := s.Load(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, got) {
		t.Fatalf("loaded %+v, recorded %+v", loaded, got)
	}

	results, err := s.Results(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].ID == "" || results[0].Guesses[0] != "apple" {
		t.Fatalf("results = %+v", results)
	}
	// Replaying stored history reproduces the incremental statistics.
	if replay := SummarizeN(results, 6); !reflect.DeepEqual(replay, got) {
		t.Fatalf("replay %+v != %+v", replay, got)
	}
}

func TestSaveResultFillsDefaults(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	r := loss("")
	r.SessionID = "s2"
	id, err := s.SaveResult(ctx, r)
	if err != nil || id == "" {
		t.Fatalf("id=%q err=%v", id, err)
	}
	all, err := s.AllResults(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].ID != id || all[0].Date == "" || all[0].IsWin {
		t.Fatalf("all = %+v", all)
	}
}
