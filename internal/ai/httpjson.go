package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// postJSON sends body as JSON and returns the raw response. Non-2xx
// statuses become a ProviderError carrying the body.
func postJSON(
	ctx context.Context,
	client *http.Client,
	p Provider,
	url string,
	headers map[string]string,
	body any,
) ([]byte, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, &ProviderError{Provider: p, Message: "creating request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: p, Message: "sending request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: p, Message: "reading response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{
			Provider: p,
			Message:  fmt.Sprintf("API returned status %d", resp.StatusCode),
			Body:     string(respBody),
		}
	}
	return respBody, nil
}

// matcher pulls the reply text out of one known response shape. It
// reports false when the shape does not apply.
type matcher func(data map[string]any) (string, bool)

// firstMatch tries matchers in order and returns the first hit.
func firstMatch(data map[string]any, matchers ...matcher) (string, bool) {
	for _, m := range matchers {
		if text, ok := m(data); ok {
			return text, true
		}
	}
	return "", false
}

// chatChoiceContent matches {"choices":[{"message":{"content":"..."}}]}.
func chatChoiceContent(data map[string]any) (string, bool) {
	choices, _ := data["choices"].([]any)
	if len(choices) == 0 {
		return "", false
	}
	choice, _ := choices[0].(map[string]any)
	message, _ := choice["message"].(map[string]any)
	content, _ := message["content"].(string)
	return content, content != ""
}
