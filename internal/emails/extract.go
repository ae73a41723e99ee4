package emails

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	AllFile    = "emails_all.txt"
	UniqueFile = "emails_unique.txt"
)

var addressPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// Lists holds the addresses found in a log.
type Lists struct {
	All    []string // every occurrence, in log order
	Unique []string // deduplicated, sorted
}

// Extract scans r line by line. Addresses are lower-cased.
func Extract(r io.Reader) (*Lists, error) {
	out := &Lists{}
	seen := make(map[string]struct{})

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		for _, m := range addressPattern.FindAllString(sc.Text(), -1) {
			addr := strings.ToLower(strings.TrimRight(m, "."))
			out.All = append(out.All, addr)
			if _, ok := seen[addr]; !ok {
				seen[addr] = struct{}{}
				out.Unique = append(out.Unique, addr)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan log: %w", err)
	}
	sort.Strings(out.Unique)
	return out, nil
}

// ExtractFile runs Extract over the log at path.
func ExtractFile(path string) (*Lists, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Extract(f)
}

// Save writes both lists into dir, one address per line, and returns the paths.
func (l *Lists) Save(dir string) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	allPath := filepath.Join(dir, AllFile)
	uniquePath := filepath.Join(dir, UniqueFile)
	if err := writeLines(allPath, l.All); err != nil {
		return "", "", err
	}
	if err := writeLines(uniquePath, l.Unique); err != nil {
		return "", "", err
	}
	return allPath, uniquePath, nil
}

func writeLines(path string, lines []string) error {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
