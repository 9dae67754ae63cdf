package game

import (
	"strings"
	"testing"
	"time"
)

func TestShareTextWin(t *testing.T) {
	g, _ := New("apple", nil)
	g.ApplyGuess("balls")
	g.ApplyGuess("apple")
	got := ShareText(g, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	want := "F&B Wordle 2025-03-14 2/6\n\n⬛🟨⬛🟩⬛\n🟩🟩🟩🟩🟩\n"
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestShareTextLoss(t *testing.T) {
	g, _ := New("apple", nil, WithSize(2, 5))
	g.ApplyGuess("qwert")
	g.ApplyGuess("zzzzz")
	got := ShareText(g, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	if !strings.HasPrefix(got, "F&B Wordle 2025-03-14 X/2\n") {
		t.Fatalf("header: %q", got)
	}
	if n := strings.Count(got, "\n"); n != 4 {
		t.Fatalf("expected 2 grid rows, got %q", got)
	}
}
