// Package ollama provides a Completer for a locally hosted Ollama server.
package ollama

import (
	"context"
	"fmt"
	"net/http"

	"github.com/germanamz/budgetoptimizer/pkg/chats/message"
	"github.com/germanamz/budgetoptimizer/pkg/chats/role"
	"github.com/germanamz/budgetoptimizer/pkg/llm"
	"github.com/germanamz/budgetoptimizer/pkg/providers/provider"
)

const (
	chatPath = "/api/chat"
	tagsPath = "/api/tags"
)

var (
	_ provider.Completer   = (*Adapter)(nil)
	_ provider.ModelLister = (*Adapter)(nil)
)

// Adapter talks to the Ollama REST API.
type Adapter struct {
	provider.Provider
}

// New creates an Adapter from an Ollama handle. A nil client falls back to
// http.DefaultClient. Ollama needs no API key; one set on the handle is
// still sent as a bearer token for servers behind an auth proxy.
func New(l *llm.LLM, client *http.Client) (*Adapter, error) {
	if l.Provider() != llm.Ollama {
		return nil, fmt.Errorf("ollama: handle provider is %q", l.Provider())
	}

	return &Adapter{Provider: provider.FromLLM(l, provider.Auth{Key: l.APIKey()}, client)}, nil
}

// Complete sends the conversation to /api/chat with streaming disabled.
func (a *Adapter) Complete(ctx context.Context, msgs []message.Message) (message.Message, error) {
	req := chatRequest{
		Model:    a.Name,
		Messages: make([]chatMessage, len(msgs)),
		Stream:   false,
	}
	for i, m := range msgs {
		req.Messages[i] = chatMessage{Role: m.Role.String(), Content: m.Content}
	}

	if a.Temperature != 0 || a.MaxTokens != 0 {
		req.Options = &chatOptions{NumPredict: a.MaxTokens}
		if a.Temperature != 0 {
			t := a.Temperature
			req.Options.Temperature = &t
		}
	}

	var resp chatResponse
	if err := a.PostJSON(ctx, chatPath, req, &resp); err != nil {
		return message.Message{}, fmt.Errorf("ollama: %w", err)
	}

	if resp.Error != "" {
		return message.Message{}, fmt.Errorf("ollama: %s", resp.Error)
	}

	r := role.Role(resp.Message.Role)
	if !r.Valid() {
		r = role.Assistant
	}

	return message.New(r, resp.Message.Content), nil
}

// ListModels returns the names of the models pulled on the server.
func (a *Adapter) ListModels(ctx context.Context) ([]string, error) {
	var resp tagsResponse
	if err := a.GetJSON(ctx, tagsPath, &resp); err != nil {
		return nil, fmt.Errorf("ollama: list models: %w", err)
	}

	names := make([]string, len(resp.Models))
	for i, m := range resp.Models {
		names[i] = m.Name
	}

	return names, nil
}

// --- wire types ---

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *chatOptions  `json:"options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
	Error   string      `json:"error"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}
