package subtitle

import (
	"strings"
	"unicode"
)

// common English function words
var englishStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"he": {}, "her": {}, "his": {}, "i": {}, "in": {}, "is": {}, "it": {},
	"its": {}, "not": {}, "of": {}, "on": {}, "or": {}, "she": {},
	"that": {}, "the": {}, "their": {}, "they": {}, "this": {}, "to": {},
	"was": {}, "we": {}, "were": {}, "will": {}, "with": {}, "you": {},
}

const englishStopwordThreshold = 0.1

// guesses "en" when the share of English stopwords exceeds the threshold.
// This is a heuristic, not a language detector; other text yields "".
func detectLanguage(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	if len(words) == 0 {
		return ""
	}

	matched := 0
	for _, w := range words {
		if _, ok := englishStopwords[w]; ok {
			matched++
		}
	}

	if float64(matched)/float64(len(words)) > englishStopwordThreshold {
		return "en"
	}
	return ""
}
