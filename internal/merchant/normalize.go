// Package merchant canonicalizes free-text merchant labels into stable
// grouping keys, so charges that differ only by store number, transaction
// id, or formatting group together.
package merchant

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// Transaction/store identifier tokens: "*12345", "#1234", ":9876", "_42".
	starID  = regexp.MustCompile(`\*\d+`)
	punctID = regexp.MustCompile(`[#:_]\d+`)
	// Long digit runs are card fragments or reference numbers.
	longDigits = regexp.MustCompile(`\d{4,}`)
	// Corporate suffixes, whole words only, optional trailing period.
	corpWords = regexp.MustCompile(`\b(inc|corp|llc|usa)\b\.?`)
	// Punctuation becomes whitespace, not deletion, so adjacent words
	// do not fuse.
	nonLetters = regexp.MustCompile(`[^a-z\s]`)
	spaceRuns  = regexp.MustCompile(`\s+`)
)

// Normalize maps arbitrary merchant text to a coarse grouping key.
// The transform is deterministic and idempotent; each rule assumes the
// previous one has already run.
func Normalize(raw string) string {
	out := strings.ToLower(raw)
	out = starID.ReplaceAllString(out, "")
	out = punctID.ReplaceAllString(out, "")
	out = longDigits.ReplaceAllString(out, "")
	out = corpWords.ReplaceAllString(out, "")
	out = nonLetters.ReplaceAllString(out, " ")
	out = spaceRuns.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// TitleCase lowercases s and capitalizes the first letter of each
// whitespace-separated word. Words are split on whitespace only, so
// "netflix.com" stays one word.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError && size <= 1 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
