package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// errSDKUnavailable marks the typed client as unusable, which switches
// the OpenAI adapter to the raw HTTP path.
var errSDKUnavailable = errors.New("openai SDK unavailable")

// openAIChat uses the typed SDK client.
type openAIChat struct {
	client openai.Client
	model  string
}

// openAIRawChat posts to the chat completions endpoint directly and reads
// the reply from a generic map.
type openAIRawChat struct {
	client *http.Client
	url    string
	key    string
	model  string
}

func newOpenAI(s Settings, o Options) (ChatModel, error) {
	if s.OpenAIKey == "" {
		return nil, configErr(ProviderOpenAI, "API key not configured")
	}
	m, err := newOpenAISDK(s, o)
	if errors.Is(err, errSDKUnavailable) {
		o.Logger.Debug("openai SDK unavailable, using raw HTTP client")
		return &openAIRawChat{
			client: o.HTTPClient,
			url:    strings.TrimRight(o.OpenAIBaseURL, "/") + "/chat/completions",
			key:    s.OpenAIKey,
			model:  s.OpenAIModel,
		}, nil
	}
	return m, err
}

func newOpenAISDK(s Settings, o Options) (ChatModel, error) {
	if s.OpenAISDKDisabled {
		return nil, errSDKUnavailable
	}
	client := openai.NewClient(
		option.WithAPIKey(s.OpenAIKey),
		option.WithBaseURL(strings.TrimRight(o.OpenAIBaseURL, "/")+"/"),
		option.WithHTTPClient(o.HTTPClient),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(RequestTimeout),
	)
	return &openAIChat{client: client, model: s.OpenAIModel}, nil
}

func (c *openAIChat) Chat(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", &ProviderError{Provider: ProviderOpenAI, Message: "chat completion failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: ProviderOpenAI, Message: "no choices in response", Body: resp.RawJSON()}
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", &ProviderError{Provider: ProviderOpenAI, Message: "empty reply", Body: resp.RawJSON()}
	}
	return content, nil
}

func (c *openAIRawChat) Chat(ctx context.Context, prompt string) (string, error) {
	body, err := postJSON(ctx, c.client, ProviderOpenAI, c.url,
		map[string]string{"Authorization": "Bearer " + c.key},
		map[string]any{
			"model": c.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		})
	if err != nil {
		return "", err
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return "", &ProviderError{Provider: ProviderOpenAI, Message: "decoding response", Body: string(body), Err: err}
	}
	text, ok := firstMatch(data, chatChoiceContent)
	if !ok {
		return "", &ProviderError{Provider: ProviderOpenAI, Message: "unrecognized response", Body: string(body)}
	}
	return text, nil
}

