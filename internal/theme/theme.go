// Package theme holds the lipgloss styles of the command-line output.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/daedaly/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the title of a command's report.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// PanelStyle wraps a block of generated text.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// MutedStyle is used for secondary details such as ids and sources.
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// KeyStyle renders parameter names.
var KeyStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// KindStyle returns a color-coded style for a notification kind.
func KindStyle(kind string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch kind {
	case model.NotificationSuccess:
		return base.Foreground(ColorGreen)
	case model.NotificationWarning:
		return base.Foreground(ColorYellow)
	case model.NotificationFailure:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// Glyph returns the status glyph of a notification kind.
func Glyph(kind string) string {
	switch kind {
	case model.NotificationSuccess:
		return "✅"
	case model.NotificationWarning:
		return "⚠"
	case model.NotificationFailure:
		return "❌"
	default:
		return "•"
	}
}

// Status renders "<glyph> message" in the style of kind.
func Status(kind, message string) string {
	return KindStyle(kind).Render(Glyph(kind) + " " + message)
}
