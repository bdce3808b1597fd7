package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/nhle/daedaly/internal/model"
)

type mapParams map[string]string

func (m mapParams) Param(_ context.Context, key, def string) (string, error) {
	if v, ok := m[key]; ok {
		return v, nil
	}
	return def, nil
}

type mapSecrets map[string]string

func (m mapSecrets) Secret(key string) (string, error) {
	return m[key], nil
}

// countingServer serves body for every request and counts the hits.
func countingServer(t *testing.T, status int, body string, inspect func(r *http.Request, body []byte)) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		reqBody, _ := io.ReadAll(r.Body)
		if inspect != nil {
			inspect(r, reqBody)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func testOptions(url string) Options {
	return Options{
		OpenAIBaseURL:   url,
		GeminiBaseURL:   url,
		DeepSeekBaseURL: url,
	}
}

const chatCompletionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "gpt-4o-mini",
	"choices": [{"index": 0, "finish_reason": "stop",
		"message": {"role": "assistant", "content": "hello from openai"}}]
}`

func TestOpenAIChat(t *testing.T) {
	for _, disabled := range []bool{false, true} {
		name := "sdk"
		if disabled {
			name = "raw"
		}
		t.Run(name, func(t *testing.T) {
			var gotPath string
			var gotReq map[string]any
			srv, hits := countingServer(t, http.StatusOK, chatCompletionBody, func(r *http.Request, body []byte) {
				gotPath = r.URL.Path
				assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
				require.NoError(t, json.Unmarshal(body, &gotReq))
			})

			m, err := NewChatModel(Settings{
				Provider:          ProviderOpenAI,
				OpenAIKey:         "sk-test",
				OpenAIModel:       DefaultOpenAIModel,
				OpenAISDKDisabled: disabled,
			}, testOptions(srv.URL))
			require.NoError(t, err)

			text, err := m.Chat(context.Background(), "say hello")
			require.NoError(t, err)
			assert.Equal(t, "hello from openai", text)
			assert.EqualValues(t, 1, hits.Load())
			assert.Equal(t, "/chat/completions", gotPath)
			assert.Equal(t, "gpt-4o-mini", gotReq["model"])

			msgs, _ := gotReq["messages"].([]any)
			require.Len(t, msgs, 1)
			msg, _ := msgs[0].(map[string]any)
			assert.Equal(t, "user", msg["role"])
			assert.Equal(t, "say hello", msg["content"])
		})
	}
}

func TestOpenAIRequestFailureDoesNotFallBack(t *testing.T) {
	srv, hits := countingServer(t, http.StatusInternalServerError, `{"error":{"message":"boom"}}`, nil)

	m, err := NewChatModel(Settings{Provider: ProviderOpenAI, OpenAIKey: "sk", OpenAIModel: "gpt-4o-mini"},
		testOptions(srv.URL))
	require.NoError(t, err)

	_, err = m.Chat(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, IsProviderError(err))
	assert.EqualValues(t, 1, hits.Load(), "a failed SDK call is not retried through the raw path")
}

func TestGeminiChat(t *testing.T) {
	body := `{"candidates":[{"content":{"role":"model","parts":[{"text":"hello from gemini"}]},"finishReason":"STOP"}]}`
	var gotPath, gotKey string
	srv, hits := countingServer(t, http.StatusOK, body, func(r *http.Request, _ []byte) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
	})

	m, err := NewChatModel(Settings{
		Provider:    ProviderGemini,
		GeminiKey:   "g-key",
		GeminiModel: "gemini-2.0-flash",
	}, testOptions(srv.URL))
	require.NoError(t, err)

	text, err := m.Chat(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello from gemini", text)
	assert.EqualValues(t, 1, hits.Load())
	assert.Contains(t, gotPath, "models/gemini-2.0-flash:generateContent")
	assert.Equal(t, "g-key", gotKey)
}

func TestGeminiNoText(t *testing.T) {
	srv, hits := countingServer(t, http.StatusOK, `{"candidates":[]}`, nil)

	m, err := NewChatModel(Settings{Provider: ProviderGemini, GeminiKey: "g"}, testOptions(srv.URL))
	require.NoError(t, err)

	_, err = m.Chat(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, IsProviderError(err))
	assert.EqualValues(t, 1, hits.Load())
}

func TestGeminiCandidatePartsFallback(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{}},
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "first"}, {Text: ""}, {Text: "second"}}}},
		},
	}

	text, ok := firstGeminiMatch(resp, geminiDirectText, geminiCandidateParts)
	require.True(t, ok)
	assert.Equal(t, "first\nsecond", text)

	_, ok = firstGeminiMatch(&genai.GenerateContentResponse{}, geminiDirectText, geminiCandidateParts)
	assert.False(t, ok)
}

func TestDeepSeekChat(t *testing.T) {
	var gotReq map[string]any
	srv, hits := countingServer(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"hello from deepseek"}}]}`,
		func(r *http.Request, body []byte) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer ds-key", r.Header.Get("Authorization"))
			require.NoError(t, json.Unmarshal(body, &gotReq))
		})

	m, err := NewChatModel(Settings{Provider: ProviderDeepSeek, DeepSeekKey: "ds-key"}, testOptions(srv.URL))
	require.NoError(t, err)

	text, err := m.Chat(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello from deepseek", text)
	assert.EqualValues(t, 1, hits.Load())
	assert.Equal(t, "deepseek-chat", gotReq["model"])
	assert.Equal(t, false, gotReq["stream"])
}

func TestDeepSeekFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http error", status: http.StatusBadGateway, body: `upstream down`},
		{name: "empty choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "empty content", status: http.StatusOK, body: `{"choices":[{"message":{"content":""}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := countingServer(t, tt.status, tt.body, nil)
			m, err := NewChatModel(Settings{Provider: ProviderDeepSeek, DeepSeekKey: "k"}, testOptions(srv.URL))
			require.NoError(t, err)

			_, err = m.Chat(context.Background(), "x")
			require.Error(t, err)

			var pe *ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.body, pe.Body)
			assert.EqualValues(t, 1, hits.Load())
		})
	}
}

func TestLocalChatShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "ollama", body: `{"response":"from ollama","done":true}`, want: "from ollama"},
		{name: "tgi", body: `{"output":{"text":"from tgi"}}`, want: "from tgi"},
		{name: "openai compatible", body: `{"choices":[{"message":{"content":"from compat"}}]}`, want: "from compat"},
		{name: "first match wins", body: `{"response":"first","output":{"text":"second"}}`, want: "first"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotReq map[string]any
			var gotHeader string
			srv, hits := countingServer(t, http.StatusOK, tt.body, func(r *http.Request, body []byte) {
				gotHeader = r.Header.Get("X-Api-Token")
				require.NoError(t, json.Unmarshal(body, &gotReq))
			})

			m, err := NewChatModel(Settings{
				Provider:     ProviderLocal,
				LocalURL:     srv.URL + "/api/generate",
				LocalModel:   "llama3",
				LocalHeaders: `{"X-Api-Token": "tok"}`,
			}, Options{})
			require.NoError(t, err)

			text, err := m.Chat(context.Background(), "prompt")
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
			assert.EqualValues(t, 1, hits.Load())
			assert.Equal(t, "tok", gotHeader)
			assert.Equal(t, "llama3", gotReq["model"])
			assert.Equal(t, "prompt", gotReq["prompt"])
			assert.Equal(t, false, gotReq["stream"])
		})
	}
}

func TestLocalUnrecognizedResponse(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK, `{"status":"ok"}`, nil)
	m, err := NewChatModel(Settings{Provider: ProviderLocal, LocalURL: srv.URL, LocalModel: "m"}, Options{})
	require.NoError(t, err)

	_, err = m.Chat(context.Background(), "x")
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, `{"status":"ok"}`, pe.Body)
}

func TestConfigurationErrorsBeforeNetwork(t *testing.T) {
	tests := []struct {
		name   string
		params mapParams
	}{
		{name: "no provider", params: mapParams{model.ParamProvider: "none"}},
		{name: "openai without key", params: mapParams{model.ParamProvider: "openai"}},
		{name: "openai raw without key", params: mapParams{model.ParamProvider: "openai", model.ParamOpenAISDK: "disabled"}},
		{name: "gemini without key", params: mapParams{model.ParamProvider: "gemini"}},
		{name: "deepseek without key", params: mapParams{model.ParamProvider: "deepseek"}},
		{name: "local without url", params: mapParams{model.ParamProvider: "local", model.ParamLocalGatewayURL: ""}},
		{name: "local without model", params: mapParams{model.ParamProvider: "local", model.ParamLocalModelName: " "}},
		{name: "local invalid headers", params: mapParams{model.ParamProvider: "local", model.ParamLocalExtraHeaders: "{not json"}},
		{name: "local non-object headers", params: mapParams{model.ParamProvider: "local", model.ParamLocalExtraHeaders: `["a"]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := countingServer(t, http.StatusOK, `{}`, nil)
			if _, ok := tt.params[model.ParamLocalGatewayURL]; !ok {
				tt.params[model.ParamLocalGatewayURL] = srv.URL
			}
			g := NewGateway(tt.params, nil, testOptions(srv.URL))

			_, err := g.Chat(context.Background(), "x")
			require.Error(t, err)
			assert.True(t, IsConfigurationError(err), "got %v", err)
			assert.False(t, IsProviderError(err))
			assert.Zero(t, hits.Load())
		})
	}
}

func TestGatewayUsesKeyringSecret(t *testing.T) {
	srv, hits := countingServer(t, http.StatusOK,
		`{"choices":[{"message":{"content":"ok"}}]}`, func(r *http.Request, _ []byte) {
			assert.Equal(t, "Bearer from-keyring", r.Header.Get("Authorization"))
		})

	g := NewGateway(
		mapParams{model.ParamProvider: "deepseek"},
		mapSecrets{model.ParamDeepSeekKey: "from-keyring"},
		testOptions(srv.URL),
	)
	text, err := g.Chat(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.EqualValues(t, 1, hits.Load())
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(context.Background(), mapParams{}, nil)
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, s.Provider)
	assert.Equal(t, DefaultOpenAIModel, s.OpenAIModel)
	assert.Equal(t, DefaultGeminiModel, s.GeminiModel)
	assert.Equal(t, DefaultDeepSeekModel, s.DeepSeekModel)
	assert.Equal(t, DefaultLocalURL, s.LocalURL)
	assert.Equal(t, DefaultLocalModel, s.LocalModel)
	assert.False(t, s.OpenAISDKDisabled)
	assert.Empty(t, s.AgentURL)
}

func TestProbe(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, hits := countingServer(t, http.StatusOK, `{"choices":[{"message":{"content":"pong"}}]}`,
			func(_ *http.Request, body []byte) {
				assert.Contains(t, string(body), `"ping"`)
			})
		g := NewGateway(mapParams{model.ParamProvider: "deepseek", model.ParamDeepSeekKey: "k"}, nil, testOptions(srv.URL))
		msg := g.Probe(context.Background())
		assert.Equal(t, "✅ DeepSeek API connection successful.", msg)
		assert.EqualValues(t, 1, hits.Load())
	})

	t.Run("quota", func(t *testing.T) {
		srv, _ := countingServer(t, http.StatusTooManyRequests,
			`{"error":{"code":"insufficient_quota","message":"You exceeded your current quota"}}`, nil)
		g := NewGateway(mapParams{model.ParamProvider: "deepseek", model.ParamDeepSeekKey: "k"}, nil, testOptions(srv.URL))
		msg := g.Probe(context.Background())
		assert.True(t, strings.HasPrefix(msg, "❌ No API credit left on DeepSeek"), msg)
		assert.Contains(t, msg, "exceeded your current quota")
	})

	t.Run("failure", func(t *testing.T) {
		srv, _ := countingServer(t, http.StatusUnauthorized, `bad key`, nil)
		g := NewGateway(mapParams{model.ParamProvider: "deepseek", model.ParamDeepSeekKey: "k"}, nil, testOptions(srv.URL))
		msg := g.Probe(context.Background())
		assert.True(t, strings.HasPrefix(msg, "❌ DeepSeek connection failed"), msg)
		assert.Contains(t, msg, "bad key")
	})

	t.Run("no provider", func(t *testing.T) {
		g := NewGateway(mapParams{model.ParamProvider: ""}, nil, Options{})
		assert.Equal(t, "⚠ No AI provider configured.", g.Probe(context.Background()))
	})
}

func TestAgentAsk(t *testing.T) {
	var gotReq map[string]string
	srv, hits := countingServer(t, http.StatusOK, `{"description":"from agent","tags":["x"]}`,
		func(r *http.Request, body []byte) {
			assert.Equal(t, "/ask", r.URL.Path)
			require.NoError(t, json.Unmarshal(body, &gotReq))
		})

	answer, err := NewAgentClient(nil).Ask(context.Background(), srv.URL+"/", "what?")
	require.NoError(t, err)
	assert.Equal(t, `{"description":"from agent","tags":["x"]}`, answer)
	assert.Equal(t, "what?", gotReq["question"])
	assert.EqualValues(t, 1, hits.Load())
}

func TestParseProvider(t *testing.T) {
	assert.Equal(t, ProviderOpenAI, ParseProvider("openai"))
	assert.Equal(t, ProviderGemini, ParseProvider(" Gemini "))
	assert.Equal(t, ProviderDeepSeek, ParseProvider("deepseek"))
	assert.Equal(t, ProviderLocal, ParseProvider("local"))
	assert.Equal(t, ProviderNone, ParseProvider("claude"))
	assert.Equal(t, ProviderNone, ParseProvider(""))
}
