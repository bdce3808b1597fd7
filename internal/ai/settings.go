package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/nhle/daedaly/internal/model"
)

// Defaults applied when a parameter is absent.
const (
	DefaultProvider      = "openai"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultGeminiModel   = "models/gemini-flash-latest"
	DefaultDeepSeekModel = "deepseek-chat"
	DefaultLocalURL      = "http://localhost:11434/api/generate"
	DefaultLocalModel    = "llama3"
)

// ParamReader reads a parameter, returning def when it is absent.
type ParamReader interface {
	Param(ctx context.Context, key, def string) (string, error)
}

// SecretReader looks API keys up outside the parameter store. An empty
// result means no secret is stored.
type SecretReader interface {
	Secret(key string) (string, error)
}

// Settings is an immutable snapshot of the provider configuration.
type Settings struct {
	Provider Provider

	OpenAIKey         string
	OpenAIModel       string
	OpenAISDKDisabled bool

	GeminiKey   string
	GeminiModel string

	DeepSeekKey   string
	DeepSeekModel string

	LocalURL     string
	LocalModel   string
	LocalHeaders string

	AgentURL string
}

// Model returns the model name used by the active provider.
func (s Settings) Model() string {
	switch s.Provider {
	case ProviderOpenAI:
		return s.OpenAIModel
	case ProviderGemini:
		return s.GeminiModel
	case ProviderDeepSeek:
		return s.DeepSeekModel
	case ProviderLocal:
		return s.LocalModel
	default:
		return ""
	}
}

// LoadSettings takes a fresh snapshot. secrets may be nil; when set it is
// consulted for API keys whose parameter is empty.
func LoadSettings(ctx context.Context, params ParamReader, secrets SecretReader) (Settings, error) {
	var (
		s   Settings
		err error
	)
	read := func(key, def string) string {
		if err != nil {
			return ""
		}
		var v string
		v, err = params.Param(ctx, key, def)
		return v
	}
	secret := func(key string) string {
		v := strings.TrimSpace(read(key, ""))
		if v != "" || secrets == nil || err != nil {
			return v
		}
		var sv string
		sv, err = secrets.Secret(key)
		if err != nil {
			err = fmt.Errorf("reading secret %s: %w", key, err)
		}
		return strings.TrimSpace(sv)
	}

	s.Provider = ParseProvider(read(model.ParamProvider, DefaultProvider))
	s.OpenAIKey = secret(model.ParamOpenAIKey)
	s.OpenAIModel = strings.TrimSpace(read(model.ParamOpenAIModel, DefaultOpenAIModel))
	s.OpenAISDKDisabled = strings.EqualFold(strings.TrimSpace(read(model.ParamOpenAISDK, "")), "disabled")
	s.GeminiKey = secret(model.ParamGeminiKey)
	s.GeminiModel = strings.TrimSpace(read(model.ParamGeminiModel, DefaultGeminiModel))
	s.DeepSeekKey = secret(model.ParamDeepSeekKey)
	s.DeepSeekModel = strings.TrimSpace(read(model.ParamDeepSeekModel, DefaultDeepSeekModel))
	s.LocalURL = strings.TrimSpace(read(model.ParamLocalGatewayURL, DefaultLocalURL))
	s.LocalModel = strings.TrimSpace(read(model.ParamLocalModelName, DefaultLocalModel))
	s.LocalHeaders = strings.TrimSpace(read(model.ParamLocalExtraHeaders, ""))
	s.AgentURL = strings.TrimSpace(read(model.ParamAgentURL, ""))
	if err != nil {
		return Settings{}, fmt.Errorf("loading AI settings: %w", err)
	}

	if s.OpenAIModel == "" {
		s.OpenAIModel = DefaultOpenAIModel
	}
	if s.DeepSeekModel == "" {
		s.DeepSeekModel = DefaultDeepSeekModel
	}
	return s, nil
}
