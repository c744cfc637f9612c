// utils/text.go - string and id helpers shared by validation, services and storage
package utils

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EscapeLike escapes LIKE wildcards so s matches literally. Use with ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// FoldKey returns the Unicode case-folded form of s. Names, titles and search
// text are compared on this form because SQLite's LOWER only folds ASCII.
func FoldKey(s string) string {
	return cases.Fold().String(s)
}

// ContainsPattern returns a case-folded LIKE pattern matching s as a substring.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(FoldKey(s)) + "%"
}

// UniqueIDs drops repeated ids, keeping the first occurrence of each.
func UniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
