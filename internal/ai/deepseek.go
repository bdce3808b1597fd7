package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type deepSeekChat struct {
	client *http.Client
	url    string
	key    string
	model  string
}

func newDeepSeek(s Settings, o Options) (ChatModel, error) {
	if s.DeepSeekKey == "" {
		return nil, configErr(ProviderDeepSeek, "API key not configured")
	}
	name := s.DeepSeekModel
	if name == "" {
		name = DefaultDeepSeekModel
	}
	return &deepSeekChat{
		client: o.HTTPClient,
		url:    strings.TrimRight(o.DeepSeekBaseURL, "/") + "/chat/completions",
		key:    s.DeepSeekKey,
		model:  name,
	}, nil
}

func (c *deepSeekChat) Chat(ctx context.Context, prompt string) (string, error) {
	body, err := postJSON(ctx, c.client, ProviderDeepSeek, c.url,
		map[string]string{"Authorization": "Bearer " + c.key},
		map[string]any{
			"model": c.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
			"stream": false,
		})
	if err != nil {
		return "", err
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return "", &ProviderError{Provider: ProviderDeepSeek, Message: "decoding response", Body: string(body), Err: err}
	}
	if choices, _ := data["choices"].([]any); len(choices) == 0 {
		return "", &ProviderError{Provider: ProviderDeepSeek, Message: "response has no choices", Body: string(body)}
	}
	text, ok := chatChoiceContent(data)
	if !ok {
		return "", &ProviderError{Provider: ProviderDeepSeek, Message: "no content in response", Body: string(body)}
	}
	return text, nil
}
