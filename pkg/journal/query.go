package journal

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FilterPlan is the compiled, ANDed set of predicates derived from a raw
// search query. When IDLookup is set the plan is a direct primary-key lookup
// and every other field is ignored.
type FilterPlan struct {
	EntryID  int64
	IDLookup bool

	Tags     []string // required tags, each matched as a whole stored tag
	Phrases  []string // required exact substrings of title or description
	Keywords []string // required substrings of title, description or tags

	HasTimeRange bool
	RangeStart   time.Time
	RangeEnd     time.Time
	TimeExpr     string // the matched time expression text, for display
}

var (
	idQueryRe  = regexp.MustCompile(`^(?i)(?:id:)?(\d+)$`)
	tagTokenRe = regexp.MustCompile(`(?i)(?:tag:|#)(\w+)`)
	phraseRe   = regexp.MustCompile(`"([^"]*)"`)

	// The whole-word time vocabulary understood by ResolveTimeRange. The
	// "last N unit" alternative precedes "last week" so the counted form wins
	// at the same position.
	timeExprRe = regexp.MustCompile(`(?i)\b(last \d+ (?:days?|weeks?|months?)` +
		`|last week|last month|last year` +
		`|this week|current week|this month|current month|this year|current year` +
		`|today|yesterday` +
		`|(?:january|february|march|april|may|june|july|august|september|october|november|december)(?:\s+\d{4})?` +
		`|\d{4}-\d{2}-\d{2})\b`)
)

// CompileQuery tokenizes a raw search string into independent filter clauses.
// It is a pure, total function: malformed fragments degrade to literal
// keywords, never errors. now anchors relative time expressions.
//
// The passes run in a fixed order, each consuming its matches from the
// working string before the next runs: ID shortcut (exclusive), tag tokens
// (tag:name or #name), double-quoted phrases, one whole-word time expression,
// then residual whitespace-separated keywords.
func CompileQuery(rawQuery string, now time.Time) FilterPlan {
	var plan FilterPlan

	working := strings.TrimSpace(rawQuery)

	// A query that is nothing but a numeric identifier (optionally prefixed
	// with "id:") is a direct lookup; no other filter applies.
	if m := idQueryRe.FindStringSubmatch(working); m != nil {
		if id, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			plan.EntryID = id
			plan.IDLookup = true
			return plan
		}
	}

	working, plan.Tags = extractTags(working)
	working, plan.Phrases = extractPhrases(working)
	working, plan.RangeStart, plan.RangeEnd, plan.TimeExpr, plan.HasTimeRange = extractTimeRange(working, now)
	plan.Keywords = strings.Fields(working)

	return plan
}

// extractTags removes every tag:name / #name token, returning the remaining
// string and the lowercased tag names in first-seen order, deduplicated.
// Tokens are deleted outright, not replaced by a space; adjacent words may
// merge, which is accepted.
func extractTags(q string) (string, []string) {
	matches := tagTokenRe.FindAllStringSubmatch(q, -1)
	if matches == nil {
		return q, nil
	}

	seen := make(map[string]bool)
	var tags []string
	for _, m := range matches {
		name := strings.ToLower(m[1])
		if !seen[name] {
			seen[name] = true
			tags = append(tags, name)
		}
	}

	return tagTokenRe.ReplaceAllString(q, ""), tags
}

// extractPhrases removes every double-quoted segment, collecting the inner
// texts. An unterminated quote matches nothing and stays literal; empty
// quotes constrain nothing and are dropped.
func extractPhrases(q string) (string, []string) {
	matches := phraseRe.FindAllStringSubmatch(q, -1)
	if matches == nil {
		return q, nil
	}

	var phrases []string
	for _, m := range matches {
		if m[1] != "" {
			phrases = append(phrases, m[1])
		}
	}

	return phraseRe.ReplaceAllString(q, ""), phrases
}

// extractTimeRange finds the first whole-word time expression, removes the
// matched span, and resolves it to a creation-time range.
func extractTimeRange(q string, now time.Time) (string, time.Time, time.Time, string, bool) {
	idx := timeExprRe.FindStringIndex(q)
	if idx == nil {
		return q, time.Time{}, time.Time{}, "", false
	}

	expr := q[idx[0]:idx[1]]
	remaining := q[:idx[0]] + q[idx[1]:]

	start, end := ResolveTimeRange(expr, now)
	return remaining, start, end, expr, true
}
