// Package usecases - intent.go handles small-talk detection.
package usecases

import "regexp"

// IntentRule pairs a pattern with its canned response. The rule list is
// ordered and first-match-wins; order is part of the contract.
type IntentRule struct {
	Pattern  *regexp.Regexp
	Response string
}

// DefaultIntentRules covers greetings, time-of-day and thanks.
// Static configuration, never mutated at runtime.
func DefaultIntentRules() []IntentRule {
	return []IntentRule{
		{regexp.MustCompile(`(?i)(^|\b)(hi|hello|hey|yo)\b`), "Hey! Ask any C++ topic and I'll fetch it from the knowledge base."},
		{regexp.MustCompile(`(?i)\bgood (morning|afternoon|evening)\b`), "Hello! What C++ concept is needed?"},
		{regexp.MustCompile(`(?i)\b(thanks|thank you|appreciate)\b`), "Anytime! Want another C++ topic?"},
	}
}

// MatchIntent returns the response of the first rule whose pattern matches
// anywhere in the raw text, or ok=false when no rule matches.
func MatchIntent(rules []IntentRule, rawText string) (string, bool) {
	for _, r := range rules {
		if r.Pattern.MatchString(rawText) {
			return r.Response, true
		}
	}
	return "", false
}
