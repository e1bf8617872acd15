// Package glob expands doublestar include and exclude patterns over a
// filesystem.
package glob

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/bazelbuild/bazel-gazelle/rule"
	"github.com/bmatcuk/doublestar/v4"
)

// Apply returns the sorted, distinct names in fsys matched by a pattern of g
// and by none of its excludes.  Only regular files match.
func Apply(g rule.GlobValue, fsys fs.FS) ([]string, error) {
	// part 1: gather candidates
	seen := make(map[string]bool)
	var includes []string
	for _, pattern := range g.Patterns {
		names, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				includes = append(includes, name)
			}
		}
	}

	for _, exclude := range g.Excludes {
		if !doublestar.ValidatePattern(exclude) {
			return nil, fmt.Errorf("exclude %q: %w", exclude, doublestar.ErrBadPattern)
		}
	}

	// part 2: filter candidates
	var srcs []string
loop:
	for _, name := range includes {
		for _, exclude := range g.Excludes {
			if ok, _ := doublestar.PathMatch(exclude, name); ok {
				continue loop
			}
		}
		srcs = append(srcs, name)
	}

	sort.Strings(srcs)
	return srcs, nil
}
