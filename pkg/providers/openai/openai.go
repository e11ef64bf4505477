// Package openai provides a Completer for the OpenAI Chat Completions API.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/germanamz/budgetoptimizer/pkg/chats/message"
	"github.com/germanamz/budgetoptimizer/pkg/chats/role"
	"github.com/germanamz/budgetoptimizer/pkg/llm"
	"github.com/germanamz/budgetoptimizer/pkg/providers/provider"
)

const (
	completionsPath = "/v1/chat/completions"
	modelsPath      = "/v1/models"
)

var (
	_ provider.Completer   = (*Adapter)(nil)
	_ provider.ModelLister = (*Adapter)(nil)
)

// Adapter implements provider.Completer for the OpenAI Chat Completions API.
type Adapter struct {
	provider.Provider
}

// New creates an Adapter from an OpenAI handle. The handle's API key is sent
// as a bearer token.
func New(l *llm.LLM, client *http.Client) (*Adapter, error) {
	if l.Provider() != llm.OpenAI {
		return nil, fmt.Errorf("openai: handle provider is %q", l.Provider())
	}

	a := &Adapter{Provider: provider.FromLLM(l, provider.Auth{Key: l.APIKey()}, client)}
	if a.MaxTokens == 0 {
		a.MaxTokens = 4096
	}

	return a, nil
}

// Complete sends a conversation to the OpenAI Chat Completions API and returns
// the assistant's reply.
func (a *Adapter) Complete(ctx context.Context, msgs []message.Message) (message.Message, error) {
	req := apiRequest{
		Model:     a.Name,
		MaxTokens: a.MaxTokens,
		Messages:  make([]apiMessage, len(msgs)),
	}

	if a.Temperature != 0 {
		t := a.Temperature
		req.Temperature = &t
	}

	for i, m := range msgs {
		text := m.Content
		req.Messages[i] = apiMessage{Role: m.Role.String(), Content: &text}
	}

	var resp apiResponse
	if err := a.PostJSON(ctx, completionsPath, req, &resp); err != nil {
		return message.Message{}, fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return message.Message{}, fmt.Errorf("openai: empty choices in response")
	}

	var text string
	if c := resp.Choices[0].Message.Content; c != nil {
		text = *c
	}

	return message.New(role.Assistant, text), nil
}

// ListModels returns the model IDs visible to the API key, sorted.
func (a *Adapter) ListModels(ctx context.Context) ([]string, error) {
	var resp modelsResponse
	if err := a.GetJSON(ctx, modelsPath, &resp); err != nil {
		return nil, fmt.Errorf("openai: list models: %w", err)
	}

	ids := make([]string, len(resp.Data))
	for i, m := range resp.Data {
		ids[i] = m.ID
	}
	sort.Strings(ids)

	return ids, nil
}

// --- request types ---

type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature *float64     `json:"temperature,omitempty"`
}

type apiMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// --- response types ---

type apiResponse struct {
	Choices []apiChoice `json:"choices"`
}

type apiChoice struct {
	Message      apiMessage `json:"message"`
	FinishReason string     `json:"finish_reason"`
}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}
