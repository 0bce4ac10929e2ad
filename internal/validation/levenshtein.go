package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Normalize prepares a string for comparison: trim, lowercase, and collapse
// internal whitespace runs to single spaces.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRuns.ReplaceAllString(s, " ")
}

// Distance returns the Levenshtein distance between a and b, ignoring case
// and surrounding whitespace. Cost is O(len(a)*len(b)).
func Distance(a, b string) int {
	ra := []rune(Normalize(a))
	rb := []rune(Normalize(b))
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ra {
		curr[0] = i + 1
		for j, cb := range rb {
			cost := 0
			if ca != cb {
				cost = 1
			}
			curr[j+1] = min3(prev[j+1]+1, curr[j]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// CloseMatch reports whether candidate is within typo tolerance of target.
// The tolerance scales with the target's length: short words (4 runes or
// fewer) must match exactly after normalization, longer words allow one edit
// per five runes with a floor of one. This keeps "cat" from matching "hat"
// while accepting "Cloeta" for "Cloetta".
func CloseMatch(candidate, target string) bool {
	normTarget := Normalize(target)
	if Normalize(candidate) == normTarget {
		return true
	}
	length := utf8.RuneCountInString(normTarget)
	if length <= 4 {
		return false
	}
	allowed := length / 5
	if allowed < 1 {
		allowed = 1
	}
	return Distance(candidate, target) <= allowed
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
