package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/germanamz/budgetoptimizer/pkg/chats/message"
	"github.com/germanamz/budgetoptimizer/pkg/llm"
	"github.com/germanamz/budgetoptimizer/pkg/providers/model"
)

// Completer sends a conversation to an LLM and returns the assistant's reply.
type Completer interface {
	Complete(ctx context.Context, msgs []message.Message) (message.Message, error)
}

// ModelLister is implemented by completers that can enumerate the models
// their endpoint serves. It doubles as a connectivity check.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Auth holds authentication settings for an LLM provider API.
type Auth struct {
	Key    string // API key value.
	Header string // Header name (default: "Authorization").
	Scheme string // Scheme prefix (default: "Bearer" when Header is "Authorization").
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Provider holds shared state for provider implementations. Embed it in
// concrete completers to get HTTP helpers, auth, custom headers and verbose
// request logging.
type Provider struct {
	model.Model                   // Embeds Name, Temperature, MaxTokens.
	Auth        Auth              // Authentication settings.
	BaseURL     string            // API base URL (no trailing slash).
	Client      *http.Client      // HTTP client; falls back to http.DefaultClient.
	Headers     map[string]string // Extra headers applied to every request.
	Verbose     bool              // Log request and response bodies at debug level.
	Log         *slog.Logger      // Never nil after FromLLM.
}

// FromLLM copies the connection settings of a handle into a Provider.
// A nil client falls back to http.DefaultClient at call time.
func FromLLM(l *llm.LLM, auth Auth, client *http.Client) Provider {
	return Provider{
		Model:   l.Settings(),
		Auth:    auth,
		BaseURL: l.BaseURL(),
		Client:  client,
		Verbose: l.Verbose(),
		Log:     l.Logger(),
	}
}

// Complete is a stub that returns an error. Concrete providers that embed
// Provider define their own Complete method to shadow this one.
func (p *Provider) Complete(_ context.Context, _ []message.Message) (message.Message, error) {
	return message.Message{}, errors.New("provider: Complete not implemented")
}

func (p *Provider) httpClient() *http.Client {
	if p.Client != nil {
		return p.Client
	}

	return http.DefaultClient
}

func (p *Provider) logger() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}

	return slog.New(slog.DiscardHandler)
}

// NewRequest builds an *http.Request with the base URL, auth, and custom
// headers already applied.
func (p *Provider) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := p.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	if p.Auth.Key != "" {
		header := p.Auth.Header
		if header == "" {
			header = "Authorization"
		}

		value := p.Auth.Key
		if header == "Authorization" {
			scheme := p.Auth.Scheme
			if scheme == "" {
				scheme = "Bearer"
			}

			value = scheme + " " + value
		} else if p.Auth.Scheme != "" {
			value = p.Auth.Scheme + " " + value
		}

		req.Header.Set(header, value)
	}

	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends the request using the configured HTTP client.
func (p *Provider) Do(req *http.Request) (*http.Response, error) {
	return p.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
}

// PostJSON marshals payload as JSON, sends a POST to the given path,
// checks for a 2xx status, and unmarshals the response body into dest.
// If dest is nil the response body is discarded after the status check.
func (p *Provider) PostJSON(ctx context.Context, path string, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	if p.Verbose {
		p.logger().Debug("llm request", "model", p.Name, "url", p.BaseURL+path, "body", string(body))
	}

	req, err := p.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return p.send(req, dest)
}

// GetJSON sends a GET to the given path and unmarshals the 2xx response
// body into dest.
func (p *Provider) GetJSON(ctx context.Context, path string, dest any) error {
	req, err := p.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	return p.send(req, dest)
}

func (p *Provider) send(req *http.Request, dest any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := p.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if p.Verbose {
		p.logger().Debug("llm response", "model", p.Name, "status", resp.StatusCode, "body", string(respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if dest == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
