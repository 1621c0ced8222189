package design

import (
	"regexp"

	"github.com/Veraticus/photomatch/internal/model"
)

// codePattern finds a design code such as "ABC-123", "abcd12 b" or "XYZ100".
var codePattern = regexp.MustCompile(`[A-Za-z]{3,4}-?\d+\s?[A-Za-z]?`)

// ExtractCode returns the first design-code-looking substring of filename.
func ExtractCode(filename string) (string, bool) {
	code := codePattern.FindString(filename)
	if code == "" {
		return "", false
	}
	return code, true
}

// Match extracts a code from filename and resolves it against idx.
func Match(filename string, idx *Index) model.MatchResult {
	code, ok := ExtractCode(filename)
	if !ok {
		return model.MatchResult{Reason: model.NoCodeExtracted}
	}
	return idx.Resolve(code)
}
