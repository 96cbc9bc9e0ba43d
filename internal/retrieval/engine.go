// Package retrieval scores and ranks corpus fragments against a query by
// keyword overlap.
package retrieval

import (
	"fmt"
	"sort"
	"strings"

	"docagent/internal/domain"
	"docagent/internal/token"
)

// DefaultTopK is the number of fragments handed to the answer step.
const DefaultTopK = 3

// NoResultsText is the sentinel passed to the answer step when no fragment
// matched. Downstream prompting treats it as a distinct "no evidence" case,
// not merely an empty list.
const NoResultsText = "NO_RESULTS"

// Result is the outcome of one search: the no-results sentinel, or up to
// topK scored fragments in descending score order.
type Result struct {
	Matches []domain.Match
}

// NoResults reports whether the search found no qualifying fragment.
func (r Result) NoResults() bool { return len(r.Matches) == 0 }

// Render formats the result for the answer prompt: one line per match
// embedding the source, the score, and the raw fragment text verbatim.
func (r Result) Render() string {
	if r.NoResults() {
		return NoResultsText
	}
	lines := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		lines = append(lines, fmt.Sprintf("[source=%s score=%d] %s", m.Fragment.Source, m.Score, m.Fragment.Text))
	}
	return strings.Join(lines, "\n")
}

// Engine ranks an immutable fragment corpus against queries. The corpus is
// shared read-only, so an Engine is safe for concurrent use.
type Engine struct {
	fragments []domain.Fragment
	topK      int
}

// NewEngine creates an engine over the loaded corpus. topK values <= 0 fall
// back to DefaultTopK.
func NewEngine(fragments []domain.Fragment, topK int) *Engine {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Engine{fragments: fragments, topK: topK}
}

// Search tokenizes the query, scores every fragment by token overlap, drops
// zero scores, and returns the topK best. Ties keep corpus insertion order.
func (e *Engine) Search(query string) Result {
	queryTokens := token.Tokenize(query)
	var matches []domain.Match
	for _, f := range e.fragments {
		score := queryTokens.Overlap(f.Tokens)
		if score > 0 {
			matches = append(matches, domain.Match{Fragment: f, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > e.topK {
		matches = matches[:e.topK]
	}
	return Result{Matches: matches}
}
