package words

import (
	"strings"
	"unicode/utf8"
)

// Reason explains why a word was rejected.
type Reason string

const (
	ReasonEmpty       Reason = "empty"
	ReasonWrongLength Reason = "wrong length"
	ReasonLettersOnly Reason = "letters only"
	ReasonNotInList   Reason = "not in word list"
)

// Message is the player-facing text for r.
// Format failures and unknown words read differently on purpose.
func (r Reason) Message() string {
	switch r {
	case ReasonEmpty, ReasonWrongLength:
		return "Not enough letters"
	case ReasonLettersOnly:
		return "Letters only"
	case ReasonNotInList:
		return "Not a valid word"
	case "":
		return ""
	default:
		return string(r)
	}
}

// Format reports whether r is a format failure rather than a membership one.
func (r Reason) Format() bool {
	return r == ReasonEmpty || r == ReasonWrongLength || r == ReasonLettersOnly
}

// Validation is the outcome of Validate. Reason is empty when Valid.
type Validation struct {
	Valid  bool   `json:"valid"`
	Reason Reason `json:"reason,omitempty"`
}

// Validator checks guesses against format rules and a word list.
type Validator struct {
	words  Membership
	length int
}

// NewValidator returns a Validator for words of the given length.
func NewValidator(m Membership, length int) *Validator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Validator{words: m, length: length}
}

// Validate runs the checks in order and reports the first failure:
// non-empty, exact length, letters only, list membership (case-insensitive).
func (v *Validator) Validate(word string) Validation {
	w := strings.TrimSpace(word)
	switch {
	case w == "":
		return Validation{Reason: ReasonEmpty}
	case utf8.RuneCountInString(w) != v.length:
		return Validation{Reason: ReasonWrongLength}
	case !isAlpha(strings.ToLower(w)):
		return Validation{Reason: ReasonLettersOnly}
	case !v.words.Contains(strings.ToLower(w)):
		return Validation{Reason: ReasonNotInList}
	}
	return Validation{Valid: true}
}
