// Package extract pulls structured data out of free-form model replies.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?i)```json\\s*(\\{[\\s\\S]*?\\})\\s*```")

// JSON finds a JSON object in text: first a fenced block labelled json,
// otherwise the span from the first '{' to the last '}'. It reports false
// when no candidate is found or the candidate does not parse.
func JSON(text string) (map[string]any, bool) {
	raw, ok := candidate(text)
	if !ok {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, false
	}
	return obj, obj != nil
}

func candidate(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// Result is either a parsed object or the raw reply kept as fallback.
type Result struct {
	Object   map[string]any
	Fallback string
}

// Parse extracts the JSON object from text, keeping text as the fallback
// when extraction fails.
func Parse(text string) Result {
	if obj, ok := JSON(text); ok {
		return Result{Object: obj}
	}
	return Result{Fallback: text}
}

// Parsed reports whether a JSON object was found.
func (r Result) Parsed() bool {
	return r.Object != nil
}

// Empty reports whether there is neither an object nor fallback text.
func (r Result) Empty() bool {
	return r.Object == nil && strings.TrimSpace(r.Fallback) == ""
}

// Fields returns the parsed object, or the fallback text as a plain
// description with no tags.
func (r Result) Fields() map[string]any {
	if r.Object != nil {
		return r.Object
	}
	return map[string]any{"description": r.Fallback, "tags": []any{}}
}

// Lines splits a non-JSON reply into list entries: blank lines and code
// fences are dropped, leading and trailing bullets are trimmed.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "```") {
			continue
		}
		item := strings.Trim(line, "- •\t\r")
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Strings returns the string entries of a JSON array value. A single
// string becomes a one-element slice.
func Strings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	default:
		return nil
	}
}
