package resume

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	nameScanLines    = 10
	nameMaxLineChars = 50
	nameMinWords     = 2
	nameMaxWords     = 4
)

var (
	nameStopwords = []string{"resume", "cv", "curriculum", "vitae", "profile", "contact"}
	// Capitalized word, optionally joined to a second one: Smith-Jones, O'Brien.
	nameWordRe = regexp.MustCompile(`^\p{Lu}\p{Ll}*(?:[-']\p{Lu}\p{Ll}+)?$`)
)

// candidateName returns the first line among the first lines of text that looks like
// a person name, or UnknownCandidate. The scan never looks past nameScanLines lines.
func candidateName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}

	for _, line := range lines {
		if name, ok := nameFromLine(line); ok {
			return name
		}
	}

	return UnknownCandidate
}

func nameFromLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || utf8.RuneCountInString(line) > nameMaxLineChars {
		return "", false
	}

	lower := strings.ToLower(line)
	for _, stop := range nameStopwords {
		if strings.Contains(lower, stop) {
			return "", false
		}
	}

	// One-character tokens are ignored for counting and checking but stay in the name.
	words := make([]string, 0, nameMaxWords)
	for _, field := range strings.Fields(line) {
		if utf8.RuneCountInString(field) > 1 {
			words = append(words, field)
		}
	}

	if len(words) < nameMinWords || len(words) > nameMaxWords {
		return "", false
	}

	for _, word := range words {
		if !nameWordRe.MatchString(word) {
			return "", false
		}
	}

	return line, true
}
