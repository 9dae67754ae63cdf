package daily

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/fbwordle/assets"
	"github.com/robalobadob/fbwordle/internal/db"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestHash(t *testing.T) {
	tests := []struct {
		in   string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 3105},
		{"20240101", -1922333502},
		{"20241231", -1922302657},
	}
	for _, tt := range tests {
		if got := Hash(tt.in); got != tt.want {
			t.Errorf("Hash(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSeedKeyUsesOwnCalendar(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 20:00 UTC on Jan 1 is already Jan 2 at UTC+10.
	instant := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	if got := SeedKey(instant); got != "20240101" {
		t.Fatalf("utc key = %s", got)
	}
	if got := SeedKey(instant.In(loc)); got != "20240102" {
		t.Fatalf("local key = %s", got)
	}
	if got := DateKey(instant); got != "2024-01-01" {
		t.Fatalf("date key = %s", got)
	}
}

func TestWordIndex(t *testing.T) {
	i, err := WordIndex(date(2024, 1, 1), 10)
	if err != nil {
		t.Fatal(err)
	}
	if i != 2 {
		t.Fatalf("index = %d, want 2", i)
	}
	if i, _ := WordIndex(date(2024, 1, 1), 1); i != 0 {
		t.Fatalf("single-word list index = %d", i)
	}
	if _, err := WordIndex(date(2024, 1, 1), 0); !errors.Is(err, ErrEmptyWordList) {
		t.Fatalf("expected ErrEmptyWordList, got %v", err)
	}
}

func TestWordIndexInRange(t *testing.T) {
	d := date(2020, 1, 1)
	for i := 0; i < 3*366; i++ {
		for _, n := range []int{1, 7, 30, 145} {
			idx, err := WordIndex(d, n)
			if err != nil {
				t.Fatal(err)
			}
			if idx < 0 || idx >= n {
				t.Fatalf("%s n=%d: index %d out of range", SeedKey(d), n, idx)
			}
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestSelectWordDeterministic(t *testing.T) {
	list, err := assets.AnswersList()
	if err != nil {
		t.Fatal(err)
	}
	a, err := SelectWord(date(2025, 6, 15), list)
	if err != nil {
		t.Fatal(err)
	}
	// Time of day does not matter, only the calendar date.
	b, _ := SelectWord(time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC), list)
	if a != b {
		t.Fatalf("same date gave %q and %q", a, b)
	}
	if _, err := SelectWord(date(2025, 6, 15), nil); !errors.Is(err, ErrEmptyWordList) {
		t.Fatalf("expected ErrEmptyWordList, got %v", err)
	}
}

func TestRotationWraps(t *testing.T) {
	ctx := context.Background()
	r, err := NewRotation([]string{"apple", "bread", "lemon"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"apple", "bread", "lemon", "apple", "bread"}
	for i, w := range want {
		got, _, err := r.Next(ctx, "s1")
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Fatalf("call %d: got %q want %q", i, got, w)
		}
	}
	// Independent session starts from the beginning.
	if got, next, _ := r.Next(ctx, "s2"); got != "apple" || next != 1 {
		t.Fatalf("s2 got %q next %d", got, next)
	}
}

func TestNewRotationEmpty(t *testing.T) {
	if _, err := NewRotation(nil, nil); !errors.Is(err, ErrEmptyWordList) {
		t.Fatalf("expected ErrEmptyWordList, got %v", err)
	}
}

func TestSQLCursorPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rotation.db")
	conn, err := db.OpenMigrated(path, assets.Migrations())
	if err != nil {
		t.Fatal(err)
	}
	r, _ := NewRotation([]string{"apple", "bread"}, NewSQLCursor(conn))
	if w, _, _ := r.Next(ctx, "s1"); w != "apple" {
		t.Fatalf("first = %q", w)
	}
	conn.Close()

	// Reopen: the cursor survives the restart.
	conn, err = db.OpenMigrated(path, assets.Migrations())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	r, _ = NewRotation([]string{"apple", "bread"}, NewSQLCursor(conn))
	for _, want := range []string{"bread", "apple"} {
		got, _, err := r.Next(ctx, "s1")
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("got %q want %q", got, want)
		}
	}
}
