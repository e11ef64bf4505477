package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/germanamz/budgetoptimizer/pkg/chats/message"
	"github.com/germanamz/budgetoptimizer/pkg/chats/role"
	"github.com/germanamz/budgetoptimizer/pkg/llm"
	"github.com/germanamz/budgetoptimizer/pkg/providers/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg llm.Config, handler http.HandlerFunc) *openai.Adapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.Provider = llm.OpenAI
	cfg.BaseURL = srv.URL
	cfg.APIKey = "test-key"
	if cfg.Model == "" {
		cfg.Model = "gpt-4"
	}

	l, err := llm.New(cfg)
	require.NoError(t, err)

	a, err := openai.New(l, srv.Client())
	require.NoError(t, err)

	return a
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Errorf("failed to read body: %v", err)
		return nil
	}

	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		t.Errorf("failed to unmarshal body: %v", err)
		return nil
	}

	return req
}

func TestComplete_SimpleText(t *testing.T) {
	adapter := newTestServer(t, llm.Config{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		req := readBody(t, r)

		assert.Equal(t, "gpt-4", req["model"])
		assert.InDelta(t, 4096, req["max_tokens"], 1e-9)
		assert.NotContains(t, req, "temperature")

		msgs, ok := req["messages"].([]any)
		assert.True(t, ok)
		assert.Len(t, msgs, 2)

		writeJSON(t, w, map[string]any{
			"choices": []map[string]any{
				{
					"message":       map[string]any{"role": "assistant", "content": "Hello there!"},
					"finish_reason": "stop",
				},
			},
		})
	})

	got, err := adapter.Complete(context.Background(), []message.Message{
		message.System("Be terse."),
		message.User("Hi"),
	})

	require.NoError(t, err)
	assert.Equal(t, role.Assistant, got.Role)
	assert.Equal(t, "Hello there!", got.Content)
}

func TestComplete_Temperature(t *testing.T) {
	adapter := newTestServer(t, llm.Config{Temperature: 0.7, MaxTokens: 100}, func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)

		assert.InDelta(t, 0.7, req["temperature"], 1e-9)
		assert.InDelta(t, 100, req["max_tokens"], 1e-9)

		writeJSON(t, w, map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": "ok"}}},
		})
	})

	_, err := adapter.Complete(context.Background(), []message.Message{message.User("Hi")})
	require.NoError(t, err)
}

func TestComplete_EmptyChoices(t *testing.T) {
	adapter := newTestServer(t, llm.Config{}, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"choices": []any{}})
	})

	_, err := adapter.Complete(context.Background(), []message.Message{message.User("Hi")})
	assert.EqualError(t, err, "openai: empty choices in response")
}

func TestComplete_NullContent(t *testing.T) {
	adapter := newTestServer(t, llm.Config{}, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": nil}}},
		})
	})

	got, err := adapter.Complete(context.Background(), []message.Message{message.User("Hi")})
	require.NoError(t, err)
	assert.Empty(t, got.Content)
}

func TestComplete_Unauthorized(t *testing.T) {
	adapter := newTestServer(t, llm.Config{}, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"Incorrect API key provided"}}`, http.StatusUnauthorized)
	})

	_, err := adapter.Complete(context.Background(), []message.Message{message.User("Hi")})
	assert.ErrorContains(t, err, "unexpected status 401")
}

func TestListModels(t *testing.T) {
	adapter := newTestServer(t, llm.Config{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)

		writeJSON(t, w, map[string]any{
			"data": []map[string]any{{"id": "gpt-4o"}, {"id": "gpt-4"}},
		})
	})

	models, err := adapter.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4", "gpt-4o"}, models)
}

func TestNew_RejectsOtherProviders(t *testing.T) {
	l, err := llm.New(llm.Config{Provider: llm.Ollama, Model: "llama3.1:8b"})
	require.NoError(t, err)

	_, err = openai.New(l, nil)
	assert.ErrorContains(t, err, `handle provider is "ollama"`)
}
