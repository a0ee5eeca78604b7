package quotecard

import "strings"

// sentenceTerminators end a leading sentence when followed by whitespace or
// end of string.
const sentenceTerminators = ".?!"

// SplitLeadingSentence splits question text into its first sentence and the
// remainder. Splitting is purely syntactic: the first terminator followed by
// whitespace (or ending the string) wins. Terminators inside abbreviations
// are not special-cased.
func SplitLeadingSentence(text string) (first, rest string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ""
	}

	runes := []rune(trimmed)
	for i, r := range runes {
		if !strings.ContainsRune(sentenceTerminators, r) {
			continue
		}
		if i == len(runes)-1 {
			return trimmed, ""
		}
		if isSpace(runes[i+1]) {
			first = string(runes[:i+1])
			rest = strings.TrimSpace(string(runes[i+1:]))
			return first, rest
		}
	}

	return trimmed, ""
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
