package generation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var specialTokenPattern = regexp.MustCompile(`<\|.*?\|>`)

// cleanCandidate normalizes a raw model continuation: residual special
// tokens go away, whitespace collapses, the first letter is capitalized
// and the text ends with sentence punctuation.
func cleanCandidate(text string) string {
	text = specialTokenPattern.ReplaceAllString(text, "")
	text = strings.Join(strings.Fields(text), " ")

	if text == "" {
		return text
	}

	first, size := utf8.DecodeRuneInString(text)
	text = string(unicode.ToUpper(first)) + text[size:]

	if !strings.ContainsRune(".!?", rune(text[len(text)-1])) {
		text += "."
	}

	return text
}
