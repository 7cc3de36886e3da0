package subtitle

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// speakerRule recognizes one speaker attribution syntax. Rules are tried in
// order and the first match wins.
type speakerRule struct {
	name    string
	pattern *regexp.Regexp
	accept  func(speaker string) bool
}

const maxColonSpeakerLen = 50

// rules applied to parsed WebVTT cue text
var cueSpeakerRules = []speakerRule{
	{
		name:    "voice-tag",
		pattern: regexp.MustCompile(`(?s)^<v(?:\.[^\s>]*)?\s+([^>]+)>(.*)$`),
	},
	{
		name:    "colon",
		pattern: regexp.MustCompile(`(?s)^([^:\n>]+):\s*(.*)$`),
		accept: func(speaker string) bool {
			return utf8.RuneCountInString(speaker) < maxColonSpeakerLen
		},
	},
}

// rules applied to free text segments during transformation
var textSpeakerRules = []speakerRule{
	{
		name:    "name-colon",
		pattern: regexp.MustCompile(`(?s)^([A-Z][A-Za-z .'-]{0,29}):\s+(.+)$`),
	},
	{
		name:    "bracketed",
		pattern: regexp.MustCompile(`(?s)^\[([A-Z][^\]\n>]{0,29})\]\s*(.+)$`),
	},
	{
		name:    "allcaps-colon",
		pattern: regexp.MustCompile(`(?s)^([A-Z]{2,20}):\s*(.+)$`),
	},
}

// returns the speaker and the remaining text for the first matching rule,
// or an empty speaker and the unchanged text
func extractSpeaker(text string, rules []speakerRule) (speaker, rest string) {
	for _, rule := range rules {
		m := rule.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		if rule.accept != nil && !rule.accept(m[1]) {
			continue
		}
		return name, strings.TrimSuffix(m[2], "</v>")
	}
	return "", text
}
