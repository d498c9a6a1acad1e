// Package rating implements the lexical feel-good scorer. It is deliberately
// a naive keyword heuristic, not a sentiment model: positive keywords add a
// point, negative keywords subtract one, and the result is shifted and
// clamped into the 1-10 range.
package rating

import "strings"

var positives = []string{
	"help",
	"kind",
	"success",
	"hope",
	"inspire",
	"joy",
	"uplift",
	"community",
	"cure",
	"breakthrough",
}

var negatives = []string{
	"war",
	"crime",
	"death",
	"disaster",
	"crisis",
	"fail",
	"tragedy",
}

// Score rates text for feel-good sentiment on a 1-10 scale. Matching is
// case-insensitive substring membership: each keyword counts at most once,
// anywhere in the text. Pure and deterministic.
func Score(text string) int {
	lower := strings.ToLower(text)

	score := 0
	for _, word := range positives {
		if strings.Contains(lower, word) {
			score++
		}
	}
	for _, word := range negatives {
		if strings.Contains(lower, word) {
			score--
		}
	}

	return clamp(score+5, 1, 10)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
