// Package setup holds the interactive provider configuration form and
// writes its answers to the parameter store and the keyring.
package setup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nhle/daedaly/internal/ai"
	"github.com/nhle/daedaly/internal/model"
)

// ParamReader reads a parameter with a default.
type ParamReader interface {
	Param(ctx context.Context, key, def string) (string, error)
}

// ParamWriter persists parameters.
type ParamWriter interface {
	SetParam(ctx context.Context, key, value string) error
}

// SecretWriter persists API keys outside the database.
type SecretWriter interface {
	Set(key, value string) error
}

// Values are the answers of the setup form.
type Values struct {
	Provider string

	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string

	DeepSeekKey   string
	DeepSeekModel string

	LocalURL     string
	LocalModel   string
	LocalHeaders string

	AgentURL string

	// UseKeyring stores API keys in the OS keyring instead of the
	// parameter table.
	UseKeyring bool
}

// Load pre-fills Values from the current parameters.
func Load(ctx context.Context, params ParamReader) (Values, error) {
	var v Values
	fields := []struct {
		key string
		def string
		dst *string
	}{
		{model.ParamProvider, ai.DefaultProvider, &v.Provider},
		{model.ParamOpenAIKey, "", &v.OpenAIKey},
		{model.ParamOpenAIModel, ai.DefaultOpenAIModel, &v.OpenAIModel},
		{model.ParamGeminiKey, "", &v.GeminiKey},
		{model.ParamGeminiModel, ai.DefaultGeminiModel, &v.GeminiModel},
		{model.ParamDeepSeekKey, "", &v.DeepSeekKey},
		{model.ParamDeepSeekModel, ai.DefaultDeepSeekModel, &v.DeepSeekModel},
		{model.ParamLocalGatewayURL, ai.DefaultLocalURL, &v.LocalURL},
		{model.ParamLocalModelName, ai.DefaultLocalModel, &v.LocalModel},
		{model.ParamLocalExtraHeaders, "", &v.LocalHeaders},
		{model.ParamAgentURL, "", &v.AgentURL},
	}
	for _, f := range fields {
		val, err := params.Param(ctx, f.key, f.def)
		if err != nil {
			return v, err
		}
		*f.dst = val
	}
	return v, nil
}

// Form builds the huh form bound to v. Only the group of the selected
// provider is shown.
func (v *Values) Form() *huh.Form {
	provider := func(p string) func() bool {
		return func() bool { return v.Provider != p }
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("AI provider").
				Description("Which provider answers generation requests").
				Options(
					huh.NewOption("OpenAI", "openai"),
					huh.NewOption("Gemini", "gemini"),
					huh.NewOption("DeepSeek", "deepseek"),
					huh.NewOption("Local gateway (Ollama, TGI, OpenAI-compatible)", "local"),
				).
				Value(&v.Provider),
			huh.NewConfirm().
				Title("Store API keys in the OS keyring?").
				Value(&v.UseKeyring),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("OpenAI API key").
				EchoMode(huh.EchoModePassword).
				Value(&v.OpenAIKey).
				Validate(validateRequired("API key")),
			huh.NewInput().
				Title("Model").
				Placeholder(ai.DefaultOpenAIModel).
				Value(&v.OpenAIModel),
		).WithHideFunc(provider("openai")),
		huh.NewGroup(
			huh.NewInput().
				Title("Gemini API key").
				EchoMode(huh.EchoModePassword).
				Value(&v.GeminiKey).
				Validate(validateRequired("API key")),
			huh.NewInput().
				Title("Model").
				Placeholder(ai.DefaultGeminiModel).
				Value(&v.GeminiModel),
		).WithHideFunc(provider("gemini")),
		huh.NewGroup(
			huh.NewInput().
				Title("DeepSeek API key").
				EchoMode(huh.EchoModePassword).
				Value(&v.DeepSeekKey).
				Validate(validateRequired("API key")),
			huh.NewInput().
				Title("Model").
				Placeholder(ai.DefaultDeepSeekModel).
				Value(&v.DeepSeekModel),
		).WithHideFunc(provider("deepseek")),
		huh.NewGroup(
			huh.NewInput().
				Title("Gateway URL").
				Placeholder(ai.DefaultLocalURL).
				Value(&v.LocalURL).
				Validate(validateURL),
			huh.NewInput().
				Title("Model name").
				Value(&v.LocalModel).
				Validate(validateRequired("Model name")),
			huh.NewText().
				Title("Extra headers").
				Description(`Optional JSON object, e.g. {"X-Api-Key": "..."}`).
				Value(&v.LocalHeaders).
				Validate(validateJSONObject),
		).WithHideFunc(provider("local")),
		huh.NewGroup(
			huh.NewInput().
				Title("Agent endpoint").
				Description("Optional service asked when the provider fails").
				Value(&v.AgentURL).
				Validate(validateOptionalURL),
		),
	)
}

// Params returns the parameter values to store. API keys are omitted
// when UseKeyring is set.
func (v Values) Params() map[string]string {
	params := map[string]string{
		model.ParamProvider:          v.Provider,
		model.ParamOpenAIModel:       v.OpenAIModel,
		model.ParamGeminiModel:       v.GeminiModel,
		model.ParamDeepSeekModel:     v.DeepSeekModel,
		model.ParamLocalGatewayURL:   v.LocalURL,
		model.ParamLocalModelName:    v.LocalModel,
		model.ParamLocalExtraHeaders: v.LocalHeaders,
		model.ParamAgentURL:          v.AgentURL,
	}
	for k, secret := range v.secrets() {
		if !v.UseKeyring {
			params[k] = secret
		}
	}
	return params
}

func (v Values) secrets() map[string]string {
	return map[string]string{
		model.ParamOpenAIKey:   v.OpenAIKey,
		model.ParamGeminiKey:   v.GeminiKey,
		model.ParamDeepSeekKey: v.DeepSeekKey,
	}
}

// Save writes v. Blank API keys are left untouched. When UseKeyring is
// set, keys go to secrets and their parameters are cleared.
func Save(ctx context.Context, params ParamWriter, secrets SecretWriter, v Values) error {
	if v.UseKeyring && secrets == nil {
		return fmt.Errorf("no keyring available")
	}
	for key, value := range v.Params() {
		if isSecret(key) && strings.TrimSpace(value) == "" {
			continue
		}
		if err := params.SetParam(ctx, key, strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	if !v.UseKeyring {
		return nil
	}
	for key, value := range v.secrets() {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if err := secrets.Set(key, strings.TrimSpace(value)); err != nil {
			return err
		}
		if err := params.SetParam(ctx, key, ""); err != nil {
			return err
		}
	}
	return nil
}

func isSecret(key string) bool {
	for _, k := range model.SecretParamKeys {
		if k == key {
			return true
		}
	}
	return false
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("URL is required")
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("URL must include scheme and host (e.g., http://localhost:11434)")
	}
	return nil
}

func validateOptionalURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateURL(s)
}

func validateJSONObject(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return fmt.Errorf("headers must be a JSON object: %w", err)
	}
	return nil
}
