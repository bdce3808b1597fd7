package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   map[string]any
		wantOK bool
	}{
		{name: "fenced", text: "```json\n{\"a\":1}\n```", want: map[string]any{"a": float64(1)}, wantOK: true},
		{name: "fenced uppercase label", text: "Here:\n```JSON\n{\"a\":\"b\"}\n```\nbye", want: map[string]any{"a": "b"}, wantOK: true},
		{name: "surrounding prose", text: "noise {\"a\":1} trailing", want: map[string]any{"a": float64(1)}, wantOK: true},
		{name: "nested braces", text: "x {\"a\":{\"b\":[1,2]}} y", want: map[string]any{"a": map[string]any{"b": []any{float64(1), float64(2)}}}, wantOK: true},
		{name: "no braces", text: "no braces here"},
		{name: "empty", text: ""},
		{name: "malformed", text: "{\"a\": 1,,}"},
		{name: "reversed braces", text: "} nothing {"},
		{name: "fence wins over outer braces", text: "{broken ```json\n{\"ok\":true}\n``` }", want: map[string]any{"ok": true}, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := JSON(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("JSON() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFallback(t *testing.T) {
	r := Parse("just prose, no object")
	assert.False(t, r.Parsed())
	assert.False(t, r.Empty())
	assert.Equal(t, map[string]any{"description": "just prose, no object", "tags": []any{}}, r.Fields())

	r = Parse("")
	assert.False(t, r.Parsed())
	assert.True(t, r.Empty())

	r = Parse(`{"description":"d","tags":["x"]}`)
	assert.True(t, r.Parsed())
	assert.Equal(t, "d", r.Fields()["description"])
}

func TestLines(t *testing.T) {
	text := "```\n- step one\n\n• step two\n  - step three  \n```"
	want := []string{"step one", "step two", "step three"}
	if diff := cmp.Diff(want, Lines(text)); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"a"}, Strings("a"))
	assert.Equal(t, []string{"a", "b"}, Strings([]any{"a", 3, "b"}))
	assert.Nil(t, Strings(nil))
	assert.Nil(t, Strings(map[string]any{}))
}
