package workbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ErrNoInputs is returned when no export file could be selected.
var ErrNoInputs = errors.New("no input files")

var stampPattern = regexp.MustCompile(`(\d{8})`)

// ResolveExports selects the periodic export files. Explicit paths take
// precedence over the pattern. Pattern matches are ordered by the yyyymmdd
// stamp in their file name, then by name.
func ResolveExports(pattern string, overrides []string) ([]string, error) {
	if len(overrides) > 0 {
		for _, p := range overrides {
			if _, err := os.Stat(p); err != nil {
				return nil, fmt.Errorf("export %s: %w", p, err)
			}
		}
		return overrides, nil
	}
	if pattern == "" {
		return nil, fmt.Errorf("%w: no export pattern configured", ErrNoInputs)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad export pattern %q: %w", pattern, err)
	}
	// Excel keeps "~$name" lock files next to open workbooks
	kept := matches[:0]
	for _, m := range matches {
		if !strings.HasPrefix(filepath.Base(m), "~$") {
			kept = append(kept, m)
		}
	}
	matches = kept
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: nothing matches %q", ErrNoInputs, pattern)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		si, sj := stamp(matches[i]), stamp(matches[j])
		if si != sj {
			return si < sj
		}
		return matches[i] < matches[j]
	})
	return matches, nil
}

func stamp(path string) string {
	return stampPattern.FindString(filepath.Base(path))
}
