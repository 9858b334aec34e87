package reply

import (
	"regexp"
	"strings"
)

type intentRule struct {
	intent  Intent
	pattern *regexp.Regexp
}

// Rule order is significant: the first matching rule wins, so
// "Hi, thanks!" resolves to greeting rather than thanks.
var intentRules = []intentRule{
	{IntentGreeting, regexp.MustCompile(`\b(hi|hello|hey|good morning|good afternoon)\b`)},
	{IntentFarewell, regexp.MustCompile(`\b(bye|goodbye|see you|talk later|take care)\b`)},
	{IntentThanks, regexp.MustCompile(`\b(thank|thanks|appreciate|grateful)\b`)},
	{IntentQuestion, regexp.MustCompile(`\?\s*$|\b(what|how|why|when|where|who|could you|can you)\b`)},
}

// DetectIntent maps free text to an intent. It never fails: unmatched
// input resolves to IntentGeneral.
func DetectIntent(text string) Intent {
	textLower := strings.ToLower(text)

	for _, rule := range intentRules {
		if rule.pattern.MatchString(textLower) {
			return rule.intent
		}
	}

	return IntentGeneral
}
