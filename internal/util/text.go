package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Normalize collapses all whitespace runs (including tabs and newlines) to a
// single space, trims the ends and lowercases. Total: whitespace-only input
// yields the empty string.
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(reSpaces.ReplaceAllString(input, " ")))
}

// Tokenize splits the normalized form on spaces. No length filtering: the
// matcher's token-overlap score is defined over the raw whitespace split.
func Tokenize(input string) []string {
	return strings.Fields(Normalize(input))
}

func StringPtr(v string) *string { return &v }
