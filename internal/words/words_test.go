package words

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestList(t *testing.T) *List {
	t.Helper()
	l, err := NewList(
		[]string{"APPLE", "bread", " Lemon ", "bread", "sushi-roll", "tea"},
		[]string{"olive", "brick"},
		5,
	)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	return l
}

func TestNewListNormalizes(t *testing.T) {
	l := newTestList(t)
	got := l.Answers()
	want := []string{"apple", "bread", "lemon"}
	if len(got) != len(want) {
		t.Fatalf("answers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("answers[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if a, g := l.Stats(); a != 3 || g != 5 {
		t.Fatalf("Stats() = (%d, %d), want (3, 5)", a, g)
	}
}

func TestNewListEmptyAnswers(t *testing.T) {
	_, err := NewList([]string{"tea", "12345"}, []string{"olive"}, 5)
	if !errors.Is(err, ErrEmptyAnswers) {
		t.Fatalf("expected ErrEmptyAnswers, got %v", err)
	}
}

func TestContainsAndIsAnswer(t *testing.T) {
	l := newTestList(t)
	tests := []struct {
		word     string
		contains bool
		answer   bool
	}{
		{"apple", true, true},
		{"APPLE", true, true},
		{"olive", true, false},
		{"Brick", true, false},
		{"steak", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		if got := l.Contains(tt.word); got != tt.contains {
			t.Errorf("Contains(%q) = %v, want %v", tt.word, got, tt.contains)
		}
		if got := l.IsAnswer(tt.word); got != tt.answer {
			t.Errorf("IsAnswer(%q) = %v, want %v", tt.word, got, tt.answer)
		}
	}
}

func TestByIndexWraps(t *testing.T) {
	l := newTestList(t)
	tests := map[int]string{0: "apple", 2: "lemon", 3: "apple", 7: "bread", -1: "lemon"}
	for i, want := range tests {
		if got := l.ByIndex(i); got != want {
			t.Errorf("ByIndex(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestRandomIsAnAnswer(t *testing.T) {
	l := newTestList(t)
	for i := 0; i < 20; i++ {
		if w := l.Random(); !l.IsAnswer(w) {
			t.Fatalf("Random() returned non-answer %q", w)
		}
	}
}

func TestHead(t *testing.T) {
	l := newTestList(t)
	if got := l.Head(2); len(got) != 2 || got[1] != "bread" {
		t.Fatalf("Head(2) = %v", got)
	}
	if got := l.Head(30); len(got) != 3 {
		t.Fatalf("Head(30) = %v, want all 3 answers", got)
	}
}

func TestLoadEmbedded(t *testing.T) {
	l, err := Load(Config{WordLength: 5})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Len() == 0 {
		t.Fatal("embedded answers are empty")
	}
	for _, w := range []string{"bread", "saute", "umami"} {
		if !l.IsAnswer(w) {
			t.Errorf("embedded answers missing %q", w)
		}
	}
	if !l.Contains("fries") {
		t.Error("embedded allowed list missing \"fries\"")
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.txt")
	allowed := filepath.Join(dir, "allowed.txt")
	if err := os.WriteFile(answers, []byte("# targets\nCOCOA\n\nhoney\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(allowed, []byte("wafer\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(Config{AnswersFile: answers, AllowedFile: allowed, WordLength: 5})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Len() != 2 || !l.IsAnswer("cocoa") || !l.Contains("wafer") || l.IsAnswer("wafer") {
		t.Fatalf("unexpected list: answers=%v", l.Answers())
	}

	// Only the allowed file: it doubles as the answer list.
	l, err = Load(Config{AllowedFile: allowed, WordLength: 5})
	if err != nil {
		t.Fatalf("Load allowed-only: %v", err)
	}
	if !l.IsAnswer("wafer") {
		t.Fatal("allowed-only load should use allowed words as answers")
	}

	// Only the answers file: extra guesses come from the embedded list.
	l, err = Load(Config{AnswersFile: answers, WordLength: 5})
	if err != nil {
		t.Fatalf("Load answers-only: %v", err)
	}
	if l.Len() != 2 || !l.IsAnswer("honey") {
		t.Fatalf("answers-only load: %v", l.Answers())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Config{AllowedFile: filepath.Join(t.TempDir(), "nope.txt")})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
