// Package fileset resolves include patterns against a source directory into a
// deterministic list of files to publish.
//
// Patterns use forward slashes relative to the source directory. A "*" segment
// matches within one directory level, a "**" segment matches any number of
// levels (including none). Literal patterns name a single file.
package fileset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Match resolves patterns against sourceDir and returns the matched files as
// sorted, slash-separated paths relative to sourceDir. Each file appears once
// even when multiple patterns match it. Directories are never returned.
func Match(sourceDir string, patterns []string) ([]string, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("source directory %s: %w", sourceDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", sourceDir)
	}

	for _, p := range patterns {
		if err := validatePattern(p); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]struct{})
	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(sourceDir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		for _, p := range patterns {
			if matchPattern(p, rel) {
				seen[rel] = struct{}{}
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", sourceDir, err)
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

func validatePattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("empty pattern")
	}
	if strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("pattern %q must be relative", pattern)
	}
	for _, seg := range strings.Split(pattern, "/") {
		if seg == ".." {
			return fmt.Errorf("pattern %q must not escape the source directory", pattern)
		}
	}
	return nil
}

// matchPattern matches a slash-separated relative path against a pattern.
// Matching is segment-wise so "*" never crosses a directory boundary.
func matchPattern(pattern, rel string) bool {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(rel, "/"))
}

func matchSegments(pattern, segs []string) bool {
	if len(pattern) == 0 {
		return len(segs) == 0
	}
	if pattern[0] == "**" {
		// "**" absorbs zero or more leading segments.
		for skip := 0; skip <= len(segs); skip++ {
			if matchSegments(pattern[1:], segs[skip:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	ok, err := filepath.Match(pattern[0], segs[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pattern[1:], segs[1:])
}
