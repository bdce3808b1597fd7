// Package ai talks to the configured language-model provider. Every
// provider is reduced to the same contract: one prompt in, one text out.
package ai

import "strings"

// Provider identifies a backend.
type Provider int

const (
	ProviderNone Provider = iota
	ProviderOpenAI
	ProviderGemini
	ProviderDeepSeek
	ProviderLocal
)

// ParseProvider maps the stored parameter value to a Provider.
// Unknown values map to ProviderNone.
func ParseProvider(s string) Provider {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "openai":
		return ProviderOpenAI
	case "gemini":
		return ProviderGemini
	case "deepseek":
		return ProviderDeepSeek
	case "local":
		return ProviderLocal
	default:
		return ProviderNone
	}
}

// Key returns the parameter value that selects p.
func (p Provider) Key() string {
	switch p {
	case ProviderOpenAI:
		return "openai"
	case ProviderGemini:
		return "gemini"
	case ProviderDeepSeek:
		return "deepseek"
	case ProviderLocal:
		return "local"
	default:
		return ""
	}
}

func (p Provider) String() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderGemini:
		return "Gemini"
	case ProviderDeepSeek:
		return "DeepSeek"
	case ProviderLocal:
		return "Local gateway"
	default:
		return "none"
	}
}
