// internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from configured files or fall back
//     to the embedded F&B lists in package assets.
//   - Expose them through the Repository interface so the engine, the daily
//     selector and the HTTP layer never touch package-level word state.
//
// Word Lists:
//   - "answers": curated targets (daily word, session rotation, random games).
//   - "allowed": valid guesses (always includes answers).
//
// Load behavior:
//  1. AnswersFile and AllowedFile both set: answers from the first, extra
//     guesses from the second.
//  2. Only AllowedFile set: that file serves as both lists.
//  3. Only AnswersFile set: answers from that file, extra guesses embedded.
//  4. Neither set: embedded assets/answers.txt and assets/allowed.txt.
//
// Constraints:
//   - Words must be exactly WordLength ASCII letters; others are dropped.
//   - Lists are normalized to lowercase and de-duplicated (first wins).

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/fbwordle/assets"
)

// DefaultLength is the classic Wordle word length.
const DefaultLength = 5

// ErrEmptyAnswers is returned when no usable answer word was loaded.
var ErrEmptyAnswers = errors.New("words: answers list is empty")

// Membership is the only capability the validator needs.
type Membership interface {
	Contains(word string) bool
}

// Repository is the injected word source used across the server.
type Repository interface {
	Membership
	// ByIndex returns the answer at i, wrapping modulo Len.
	ByIndex(i int) string
	// Random returns a uniformly random answer.
	Random() string
	// Len is the number of answers.
	Len() int
}

// Config selects where word lists come from.
type Config struct {
	AnswersFile string
	AllowedFile string
	WordLength  int
}

// List is an immutable Repository backed by in-memory slices and sets.
type List struct {
	length    int
	answers   []string
	answerSet map[string]struct{}
	allowed   map[string]struct{} // answers ∪ guesses
}

var _ Repository = (*List)(nil)

// NewList normalizes and indexes the given lists.
// Answers are always accepted as guesses.
func NewList(answers, allowed []string, length int) (*List, error) {
	if length <= 0 {
		length = DefaultLength
	}
	ans := normalize(answers, length)
	if len(ans) == 0 {
		return nil, ErrEmptyAnswers
	}
	l := &List{
		length:    length,
		answers:   ans,
		answerSet: toSet(ans),
		allowed:   toSet(ans),
	}
	for _, w := range normalize(allowed, length) {
		l.allowed[w] = struct{}{}
	}
	return l, nil
}

// Load builds a List according to cfg (see package doc for precedence).
func Load(cfg Config) (*List, error) {
	var ansList, allowList []string
	var err error

	switch {
	case cfg.AnswersFile != "" && cfg.AllowedFile != "":
		if ansList, err = readWordFile(cfg.AnswersFile); err != nil {
			return nil, fmt.Errorf("read answers: %w", err)
		}
		if allowList, err = readWordFile(cfg.AllowedFile); err != nil {
			return nil, fmt.Errorf("read allowed: %w", err)
		}

	case cfg.AllowedFile != "":
		if allowList, err = readWordFile(cfg.AllowedFile); err != nil {
			return nil, fmt.Errorf("read allowed: %w", err)
		}
		ansList = allowList

	case cfg.AnswersFile != "":
		if ansList, err = readWordFile(cfg.AnswersFile); err != nil {
			return nil, fmt.Errorf("read answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
	}
	return NewList(ansList, allowList, cfg.WordLength)
}

// readWordFile loads one word per line; blank lines and # comments are skipped.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// normalize lowercases, filters to length-n alphabetic words and dedupes.
func normalize(list []string, n int) []string {
	cleaned := lo.Map(list, func(w string, _ int) string {
		return strings.ToLower(strings.TrimSpace(w))
	})
	return lo.Uniq(lo.Filter(cleaned, func(w string, _ int) bool {
		return len(w) == n && isAlpha(w)
	}))
}

func toSet(list []string) map[string]struct{} {
	return lo.SliceToMap(list, func(w string) (string, struct{}) {
		return w, struct{}{}
	})
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// WordLength is the length every listed word has.
func (l *List) WordLength() int { return l.length }

// Contains reports whether w is a valid guess (answers ∪ guesses).
func (l *List) Contains(w string) bool {
	_, ok := l.allowed[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answerSet[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// ByIndex returns answers[i mod Len]; negative indexes wrap too.
func (l *List) ByIndex(i int) string {
	n := len(l.answers)
	return l.answers[((i%n)+n)%n]
}

// Random returns a cryptographically random answer.
func (l *List) Random() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[nBig.Int64()]
}

// Len is the number of answers.
func (l *List) Len() int { return len(l.answers) }

// Answers returns a copy of the answer list in load order.
func (l *List) Answers() []string { return append([]string(nil), l.answers...) }

// Head returns a copy of the first n answers (all of them if n is larger).
func (l *List) Head(n int) []string {
	if n <= 0 || n > len(l.answers) {
		n = len(l.answers)
	}
	return append([]string(nil), l.answers[:n]...)
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowed)
}
