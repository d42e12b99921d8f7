// Package classify assigns incoming text to a task type with a small
// keyword table.
package classify

import "strings"

// TaskType is the category a piece of work is routed as.
type TaskType string

const (
	// TaskGrammar is grammar/typo correction. Also the default.
	TaskGrammar TaskType = "grammar"

	// TaskEmail is email drafting.
	TaskEmail TaskType = "email"

	// TaskSearch is information lookup.
	TaskSearch TaskType = "search"
)

var (
	grammarKeywords = []string{"grammar", "fix", "correct", "typo"}
	emailKeywords   = []string{"email", "draft", "write to"}
	searchKeywords  = []string{"search", "find", "what", "how"}
)

// Classify picks a task type for the text. Keyword checks run in priority
// order; anything unmatched falls back to grammar.
//
// TODO: replace with the gating network once it is trained; keywords are a
// stand-in.
func Classify(text string) TaskType {
	lower := strings.ToLower(text)

	if containsAny(lower, grammarKeywords) {
		return TaskGrammar
	}
	if containsAny(lower, emailKeywords) {
		return TaskEmail
	}
	if strings.Contains(text, "?") || containsAny(lower, searchKeywords) {
		return TaskSearch
	}
	return TaskGrammar
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
