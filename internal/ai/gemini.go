package ai

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

// geminiChat calls the Gemini API through the genai client.
type geminiChat struct {
	key     string
	model   string
	baseURL string
	opts    Options
}

func newGemini(s Settings, o Options) (ChatModel, error) {
	if s.GeminiKey == "" {
		return nil, configErr(ProviderGemini, "API key not configured")
	}
	name := s.GeminiModel
	if name == "" {
		name = DefaultGeminiModel
	}
	if !strings.HasPrefix(name, "models/") {
		name = "models/" + name
	}
	return &geminiChat{key: s.GeminiKey, model: name, baseURL: o.GeminiBaseURL, opts: o}, nil
}

func (c *geminiChat) Chat(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.ClientConfig{
		APIKey:     c.key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.opts.HTTPClient,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", &ProviderError{Provider: ProviderGemini, Message: "creating client", Err: err}
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &ProviderError{Provider: ProviderGemini, Message: "generate content failed", Err: err}
	}

	text, ok := firstGeminiMatch(resp, geminiDirectText, geminiCandidateParts)
	if !ok {
		return "", &ProviderError{Provider: ProviderGemini, Message: "no text content in response"}
	}
	return text, nil
}

type geminiMatcher func(resp *genai.GenerateContentResponse) (string, bool)

func firstGeminiMatch(resp *genai.GenerateContentResponse, matchers ...geminiMatcher) (string, bool) {
	if resp == nil {
		return "", false
	}
	for _, m := range matchers {
		if text, ok := m(resp); ok {
			return text, true
		}
	}
	return "", false
}

// geminiDirectText uses the response's own text accessor.
func geminiDirectText(resp *genai.GenerateContentResponse) (string, bool) {
	text := resp.Text()
	return text, text != ""
}

// geminiCandidateParts joins the text parts of the first candidate that
// has any.
func geminiCandidateParts(resp *genai.GenerateContentResponse) (string, bool) {
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var texts []string
		for _, part := range cand.Content.Parts {
			if part != nil && part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
		if len(texts) > 0 {
			return strings.Join(texts, "\n"), true
		}
	}
	return "", false
}
