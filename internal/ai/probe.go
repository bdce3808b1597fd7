package ai

import (
	"context"
	"fmt"
	"strings"
)

const probePrompt = "ping"

// Probe sends a minimal prompt to the active provider and reports the
// outcome as a one-line, glyph-prefixed message.
func (g *Gateway) Probe(ctx context.Context) string {
	s, err := g.Settings(ctx)
	if err != nil {
		return "❌ " + err.Error()
	}
	if s.Provider == ProviderNone {
		return "⚠ No AI provider configured."
	}
	_, err = g.chat(ctx, s, probePrompt)
	return probeMessage(s.Provider, err)
}

func probeMessage(p Provider, err error) string {
	switch {
	case err == nil:
		return fmt.Sprintf("✅ %s API connection successful.", p)
	case isQuotaError(err):
		return fmt.Sprintf("❌ No API credit left on %s: %v", p, err)
	default:
		return fmt.Sprintf("❌ %s connection failed: %v", p, err)
	}
}

// isQuotaError reports whether the upstream error mentions exhausted quota.
func isQuotaError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "insufficient_balance")
}
