package dialect

import (
	"strconv"
	"strings"
)

// DefaultNormalizeType lowercases a type name and drops any "(n)" or "(p,s)" suffix.
func DefaultNormalizeType(sqlType string) string {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

// DefaultGetSchemaName is a default implementation for Getting Schema Name (identity).
func DefaultGetSchemaName(input string) string {
	return input
}

// DeclaredLength extracts n from a "TYPE(n)" or "TYPE(n,m)" declaration.
// It returns 0 when the declaration carries no length.
func DeclaredLength(sqlType string) int {
	open := strings.IndexByte(sqlType, '(')
	if open < 0 {
		return 0
	}
	rest := sqlType[open+1:]
	end := strings.IndexAny(rest, ",)")
	if end < 0 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest[:end]))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// quote wraps an identifier in open/close, doubling any embedded close rune.
func quote(name, open, close string) string {
	return open + strings.ReplaceAll(name, close, close+close) + close
}

func qualify(schema, table, open, close string) string {
	if schema == "" {
		return quote(table, open, close)
	}
	return quote(schema, open, close) + "." + quote(table, open, close)
}

// GeneratePlaceholders joins n placeholders produced by p.
func GeneratePlaceholders(n int, p func(int) string) string {
	vals := make([]string, n)
	for i := range vals {
		vals[i] = p(i)
	}
	return strings.Join(vals, ", ")
}
