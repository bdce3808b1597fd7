package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/daedaly/internal/model"
)

func TestGlyph(t *testing.T) {
	assert.Equal(t, "✅", Glyph(model.NotificationSuccess))
	assert.Equal(t, "⚠", Glyph(model.NotificationWarning))
	assert.Equal(t, "❌", Glyph(model.NotificationFailure))
	assert.Equal(t, "•", Glyph("other"))
}

func TestStatusKeepsMessage(t *testing.T) {
	out := Status(model.NotificationFailure, "project p1: not found")
	assert.Contains(t, out, "❌ project p1: not found")
}
