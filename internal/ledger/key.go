package ledger

import (
	"regexp"
	"strings"
)

var (
	floatArtifact = regexp.MustCompile(`(\.0+)+$`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

// DisplayAccount is the account as shown in reports: text, trimmed, without
// the ".0" a spreadsheet leaves on integral numbers. Leading zeros are kept.
func DisplayAccount(raw string) string {
	return floatArtifact.ReplaceAllString(strings.TrimSpace(raw), "")
}

// MatchKey is the join form of an account: the display form without leading
// zeros, so "00123", "123" and "123.0" all match. It is idempotent.
func MatchKey(raw string) string {
	d := DisplayAccount(raw)
	k := strings.TrimLeft(d, "0")
	if k == "" && d != "" {
		return "0"
	}
	return k
}

// NormalizeLabel trims a header label and collapses internal whitespace.
func NormalizeLabel(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		k := strings.ToLower(NormalizeLabel(h))
		if _, dup := idx[k]; !dup && k != "" {
			idx[k] = i
		}
	}
	return idx
}

func lookup(idx map[string]int, label string) (int, bool) {
	if label == "" {
		return -1, false
	}
	i, ok := idx[strings.ToLower(NormalizeLabel(label))]
	return i, ok
}
