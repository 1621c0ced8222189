// Package design extracts design codes from photo filenames and resolves them
// against an index built from spreadsheet rows.
package design

import "strings"

// Normalize uppercases code and drops everything that is not A-Z or 0-9.
// Non-ASCII letters are removed rather than folded.
func Normalize(code string) string {
	upper := strings.ToUpper(code)

	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
