package reconcile

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// ToHTML renders an AI value as simple, escaped HTML: strings become a
// paragraph, lists a bullet list, anything else its text form. Empty
// values render as "".
func ToHTML(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		text := strings.TrimSpace(t)
		if text == "" {
			return ""
		}
		return "<p>" + html.EscapeString(text) + "</p>"
	case []any:
		var b strings.Builder
		for _, item := range t {
			s := ""
			if item != nil {
				s = strings.TrimSpace(scalar(item))
			}
			if s != "" {
				b.WriteString("<li>" + html.EscapeString(s) + "</li>")
			}
		}
		if b.Len() == 0 {
			return ""
		}
		return "<ul>" + b.String() + "</ul>"
	default:
		s := strings.TrimSpace(scalar(t))
		if s == "" {
			return ""
		}
		return "<p>" + html.EscapeString(s) + "</p>"
	}
}

// scalar renders a decoded JSON value as text. Objects and arrays are
// rendered as compact JSON.
func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64, bool, json.Number:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// truthy mirrors JSON "has a value": nil, "", 0, false and empty
// collections are all absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
