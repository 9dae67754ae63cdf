package game

import "strings"

// Evaluate scores guess against answer using the two-pass Wordle algorithm.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count the remaining (non-correct) answer letters.
//
// Pass 2:
//   - For each non-correct guess letter: if a remaining count exists for that
//     letter, mark present and decrement; otherwise mark absent.
//
// Both words are lowercased first. The result always has len(answer) entries;
// positions a short guess does not reach are absent.
func Evaluate(guess, answer string) []TileState {
	g := []rune(strings.ToLower(guess))
	a := []rune(strings.ToLower(answer))
	res := make([]TileState, len(a))

	counts := make(map[rune]int, len(a))
	for i, r := range a {
		if i < len(g) && g[i] == r {
			res[i] = TileCorrect
		} else {
			counts[r]++
		}
	}

	for i := range res {
		if res[i] == TileCorrect {
			continue
		}
		if i < len(g) && counts[g[i]] > 0 {
			res[i] = TilePresent
			counts[g[i]]--
		} else {
			res[i] = TileAbsent
		}
	}
	return res
}
