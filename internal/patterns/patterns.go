// Package patterns holds the ordered regular-expression rule tables used by the heuristic resume extractors.
package patterns

import (
	"regexp"
	"strings"
)

// Rule is one alternative in an ordered rule table.
type Rule struct {
	// Name identifies the rule in logs and tests.
	Name string
	// Pattern is matched against the candidate text.
	Pattern *regexp.Regexp
	// Group is the capture group holding the value; 0 means the whole match.
	Group int
	// Accept optionally rejects a candidate value so later matches and rules are tried.
	Accept func(value string) bool
}

// Match returns the first accepted value this rule produces in text.
func (r Rule) Match(text string) (string, bool) {
	for _, m := range r.Pattern.FindAllStringSubmatch(text, -1) {
		if r.Group >= len(m) {
			continue
		}
		value := FirstLine(m[r.Group])
		if value == "" {
			continue
		}
		if r.Accept != nil && !r.Accept(value) {
			continue
		}
		return value, true
	}
	return "", false
}

// Rules is an ordered table of alternatives. Earlier rules win.
type Rules []Rule

// Match tries each rule in order and returns the first accepted value with the index
// of the rule that produced it. It returns ("", -1) when nothing matches.
func (rs Rules) Match(text string) (string, int) {
	for i, r := range rs {
		if value, ok := r.Match(text); ok {
			return value, i
		}
	}
	return "", -1
}

// Find is Match without the rule index.
func (rs Rules) Find(text string) string {
	value, _ := rs.Match(text)
	return value
}

// FirstLine returns the first line of s with surrounding whitespace removed.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
