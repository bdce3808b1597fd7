package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// localChat talks to a self-hosted generation gateway (Ollama, TGI or an
// OpenAI-compatible server).
type localChat struct {
	client  *http.Client
	url     string
	model   string
	headers map[string]string
}

func newLocal(s Settings, o Options) (ChatModel, error) {
	if s.LocalURL == "" {
		return nil, configErr(ProviderLocal, "gateway URL not configured")
	}
	if s.LocalModel == "" {
		return nil, configErr(ProviderLocal, "model name not configured")
	}
	headers, err := parseExtraHeaders(s.LocalHeaders)
	if err != nil {
		return nil, configErr(ProviderLocal, "invalid extra headers: %v", err)
	}
	return &localChat{client: o.HTTPClient, url: s.LocalURL, model: s.LocalModel, headers: headers}, nil
}

// parseExtraHeaders decodes a JSON object string into header values.
// Non-string values are stringified.
func parseExtraHeaders(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("value is not a JSON object")
	}
	headers := make(map[string]string, len(obj))
	for k, val := range obj {
		if s, ok := val.(string); ok {
			headers[k] = s
		} else {
			headers[k] = fmt.Sprint(val)
		}
	}
	return headers, nil
}

func (c *localChat) Chat(ctx context.Context, prompt string) (string, error) {
	body, err := postJSON(ctx, c.client, ProviderLocal, c.url, c.headers, map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
	})
	if err != nil {
		return "", err
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return "", &ProviderError{Provider: ProviderLocal, Message: "unrecognized response", Body: string(body)}
	}
	text, ok := firstMatch(data, ollamaResponse, tgiOutputText, chatChoiceContent)
	if !ok {
		return "", &ProviderError{Provider: ProviderLocal, Message: "unrecognized response", Body: string(body)}
	}
	return text, nil
}

// ollamaResponse matches {"response":"..."}.
func ollamaResponse(data map[string]any) (string, bool) {
	text, _ := data["response"].(string)
	return text, text != ""
}

// tgiOutputText matches {"output":{"text":"..."}}.
func tgiOutputText(data map[string]any) (string, bool) {
	output, _ := data["output"].(map[string]any)
	text, _ := output["text"].(string)
	return text, text != ""
}
