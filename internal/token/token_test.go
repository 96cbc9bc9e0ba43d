package token

import (
	"sort"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "letters and digits",
			input: "Paris, 2023!",
			want:  []string{"2023", "paris"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "punctuation only",
			input: "?!... --- ###",
			want:  nil,
		},
		{
			name:  "apostrophes kept inside tokens",
			input: "Don't stop",
			want:  []string{"don't", "stop"},
		},
		{
			name:  "duplicates collapse",
			input: "go go GO",
			want:  []string{"go"},
		},
		{
			name:  "symbols are boundaries",
			input: "rome-to-paris_by_train",
			want:  []string{"by", "paris", "rome", "to", "train"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got.Words(), tt.want)
			}
			for _, w := range tt.want {
				if !got.Contains(w) {
					t.Errorf("Tokenize(%q) missing token %q", tt.input, w)
				}
			}
		})
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	first := Tokenize("Trains to Rome, 2023! Don't miss it.")
	again := Tokenize(strings.Join(first.Words(), " "))

	a, b := first.Words(), again.Words()
	sort.Strings(a)
	sort.Strings(b)
	if len(a) != len(b) {
		t.Fatalf("re-tokenizing changed the set: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("re-tokenizing changed the set: %v vs %v", a, b)
		}
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"two shared", "train to rome", "rome train", 2},
		{"disjoint", "paris museum", "rome train", 0},
		{"one empty", "", "rome train", 0},
		{"identical", "rome train", "train rome", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tokenize(tt.a).Overlap(Tokenize(tt.b)); got != tt.want {
				t.Errorf("Overlap(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
