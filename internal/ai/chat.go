package ai

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RequestTimeout bounds every outbound provider call.
const RequestTimeout = 60 * time.Second

// ChatModel sends a single stateless prompt and returns the reply text.
type ChatModel interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// Options carries transport wiring shared by all adapters. Zero values
// select the public endpoints and a 60 s HTTP client.
type Options struct {
	HTTPClient *http.Client
	Logger     *zap.Logger

	// Endpoint overrides, mainly for tests.
	OpenAIBaseURL   string
	GeminiBaseURL   string
	DeepSeekBaseURL string
}

func (o Options) withDefaults() Options {
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: RequestTimeout}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.OpenAIBaseURL == "" {
		o.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	if o.DeepSeekBaseURL == "" {
		o.DeepSeekBaseURL = "https://api.deepseek.com/v1"
	}
	return o
}

// NewChatModel builds the adapter for the active provider. Settings are
// validated here, so a ConfigurationError is returned before any network
// call is made.
func NewChatModel(s Settings, opts Options) (ChatModel, error) {
	opts = opts.withDefaults()
	switch s.Provider {
	case ProviderOpenAI:
		return newOpenAI(s, opts)
	case ProviderGemini:
		return newGemini(s, opts)
	case ProviderDeepSeek:
		return newDeepSeek(s, opts)
	case ProviderLocal:
		return newLocal(s, opts)
	default:
		return nil, configErr(ProviderNone, "no AI provider configured")
	}
}
