// Package discover maps source feature files to their output paths.
package discover

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var ErrOutsideBase = errors.New("file is outside base")

// Pair is one input file and the path its compiled output is written to.
type Pair struct {
	Input  string
	Output string
}

// Find expands the source glob and places every match under destination,
// keeping its path relative to base. Matches inside destination are skipped
// so compiled output is never read back as input.
func Find(source, base, destination string) ([]Pair, error) {
	matches, err := doublestar.FilepathGlob(source, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", source, err)
	}
	sort.Strings(matches)

	var pairs []Pair
	for _, m := range matches {
		if within(destination, m) {
			continue
		}
		rel := m
		if base != "" {
			if !within(base, m) {
				return nil, fmt.Errorf("%s: %w %s", m, ErrOutsideBase, base)
			}
			if rel, err = filepath.Rel(base, m); err != nil {
				return nil, fmt.Errorf("%s: %w", m, err)
			}
		}
		pairs = append(pairs, Pair{Input: m, Output: filepath.Join(destination, rel)})
	}
	return pairs, nil
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// OutputNames returns the paths for n documents compiled from one input.
// A single document keeps output; more are numbered name.1.feature,
// name.2.feature and so on.
func OutputNames(output string, n int) []string {
	if n == 1 {
		return []string{output}
	}
	ext := filepath.Ext(output)
	stem := strings.TrimSuffix(output, ext)
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = stem + "." + strconv.Itoa(i+1) + ext
	}
	return names
}
