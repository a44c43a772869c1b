package player

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var punctuation = strings.NewReplacer(".", "", ",", "", "!", "", "?", "")

// Normalize prepares an answer for comparison: NFC form, without . , ! ?,
// whitespace collapsed to single spaces, lower-cased.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = punctuation.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return cases.Lower(language.Und).String(s)
}

// IsCorrect reports whether the answer matches the expected one after normalization.
func IsCorrect(answer, expected string) bool {
	return Normalize(answer) == Normalize(expected)
}

// CleanOptions trims options, drops blank ones and keeps the first of duplicates.
func CleanOptions(options []string) []string {
	out := make([]string, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		if _, ok := seen[opt]; ok {
			continue
		}
		seen[opt] = struct{}{}
		out = append(out, opt)
	}
	return out
}

// expectedUtterance is the text sent to the speech judge.
func expectedUtterance(text string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(text))
}
