package ai

import (
	"context"
	"net/http"
	"strings"
)

// AgentClient asks a secondary, externally configured agent service.
type AgentClient struct {
	client *http.Client
}

// NewAgentClient creates an AgentClient. A nil client gets the standard
// 60 s timeout.
func NewAgentClient(client *http.Client) *AgentClient {
	if client == nil {
		client = &http.Client{Timeout: RequestTimeout}
	}
	return &AgentClient{client: client}
}

// Ask posts {"question": question} to {baseURL}/ask and returns the raw
// response body. The agent usually answers with the JSON object itself.
func (a *AgentClient) Ask(ctx context.Context, baseURL, question string) (string, error) {
	url := strings.TrimRight(baseURL, "/") + "/ask"
	body, err := postJSON(ctx, a.client, ProviderNone, url, nil, map[string]string{"question": question})
	if err != nil {
		return "", err
	}
	return string(body), nil
}
