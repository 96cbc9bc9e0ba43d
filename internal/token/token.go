package token

import (
	"regexp"
	"strings"
)

// Set is a set of normalized lexical tokens.
type Set map[string]struct{}

var wordRe = regexp.MustCompile(`[a-z0-9']+`)

// Tokenize lowercases text and extracts maximal runs of ASCII letters,
// digits, and apostrophes. Everything else collapses to token boundaries.
func Tokenize(text string) Set {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Overlap returns the number of tokens present in both sets.
func (s Set) Overlap(other Set) int {
	// iterate over the smaller set
	if len(other) < len(s) {
		s, other = other, s
	}
	n := 0
	for t := range s {
		if _, ok := other[t]; ok {
			n++
		}
	}
	return n
}

// Contains reports whether t is in the set.
func (s Set) Contains(t string) bool {
	_, ok := s[t]
	return ok
}

// Words returns the tokens in unspecified order.
func (s Set) Words() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	return out
}
