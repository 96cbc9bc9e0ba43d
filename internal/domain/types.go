package domain

import "docagent/internal/token"

// Fragment is one paragraph-sized unit of a source document together with
// its precomputed token set. Fragments are built once at corpus-load time
// and never mutated.
type Fragment struct {
	Source string
	Text   string
	Tokens token.Set
}

// NewFragment builds a fragment, tokenizing text.
func NewFragment(source, text string) Fragment {
	return Fragment{Source: source, Text: text, Tokens: token.Tokenize(text)}
}

// Match pairs a fragment with its keyword-overlap score for one query.
type Match struct {
	Fragment Fragment
	Score    int
}

// Message is a single chat message sent to the language model.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)
