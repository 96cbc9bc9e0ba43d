// Package corpus builds the in-memory fragment index from a directory of
// plain-text documents.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"docagent/internal/domain"
)

// DefaultExtensions is used when the config names no document extensions.
var DefaultExtensions = []string{".txt"}

var blankLineRe = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)

// Load reads every matching plain-text file in dir (non-recursive) and
// splits its contents on blank-line boundaries into paragraph fragments.
// A missing directory or a directory with no matching files yields an empty
// slice, not an error; the agent still runs and retrieval reports no results.
func Load(dir string, extensions []string) ([]domain.Fragment, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read docs dir %s: %w", dir, err)
	}

	var fragments []domain.Fragment
	for _, entry := range entries {
		if entry.IsDir() || !matchesExtension(entry.Name(), extensions) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		fragments = append(fragments, split(entry.Name(), string(data))...)
	}
	return fragments, nil
}

// split turns one document into paragraph fragments. Invalid byte sequences
// are replaced rather than treated as fatal.
func split(source, raw string) []domain.Fragment {
	raw = strings.ToValidUTF8(raw, "�")
	var fragments []domain.Fragment
	for _, part := range blankLineRe.Split(raw, -1) {
		text := strings.TrimSpace(part)
		if text == "" {
			continue
		}
		fragments = append(fragments, domain.NewFragment(source, text))
	}
	return fragments
}

func matchesExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
