package services

import (
	"regexp"
	"strings"
)

// nonLetterRegexp matches everything a menu token may not contain.
var nonLetterRegexp = regexp.MustCompile(`[^a-zA-Z'"]`)

// NormalizeMenu turns raw menu text into a menu token string: characters other
// than ASCII letters and quote marks become spaces, the text is lowercased,
// split on whitespace, stripped of English stopwords and rejoined with single
// spaces. Normalising an already normalised string returns it unchanged.
func NormalizeMenu(text string) string {
	letters := nonLetterRegexp.ReplaceAllString(text, " ")
	words := strings.Fields(strings.ToLower(letters))

	kept := words[:0]
	for _, w := range words {
		if IsStopword(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
