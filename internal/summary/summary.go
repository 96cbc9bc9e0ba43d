// Package summary produces the short corpus overview shown in the console
// header, by ranking sentences across all fragments by token frequency.
package summary

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"docagent/internal/domain"
	"docagent/internal/token"
)

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// Overview returns up to maxSentences representative sentences from the
// corpus, in original order. An empty corpus yields an empty string.
func Overview(fragments []domain.Fragment, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = 2
	}
	var sentences []string
	for _, f := range fragments {
		parts := sentenceRe.FindAllString(f.Text, -1)
		if len(parts) == 0 {
			parts = []string{f.Text}
		}
		sentences = append(sentences, parts...)
	}
	if len(sentences) == 0 {
		return ""
	}

	// Normalized content-word frequencies over the whole corpus.
	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range token.Tokenize(sent).Words() {
			if _, ok := stopwords[tok]; ok {
				continue
			}
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(sentences))
	for i, sent := range sentences {
		toks := token.Tokenize(sent).Words()
		s := 0.0
		for _, tok := range toks {
			s += freq[tok]
		}
		// length normalization so long sentences do not dominate
		if n := float64(len(toks)); n > 0 {
			s /= math.Sqrt(n)
		}
		scores[i] = scored{i, s}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)

	out := make([]string, 0, maxSentences)
	for _, idx := range selected {
		out = append(out, strings.TrimSpace(sentences[idx]))
	}
	return strings.Join(out, " ")
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was",
		"were", "be", "been", "being", "it", "this", "that", "these", "those",
		"from", "up", "down", "over", "under", "than", "so", "such", "into",
		"about", "between", "through", "during", "before", "after", "out",
		"off", "own", "same", "too", "very", "can", "will", "just", "i", "we",
		"my", "our", "you", "your",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
