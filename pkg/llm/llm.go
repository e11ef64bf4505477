package llm

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/germanamz/budgetoptimizer/pkg/providers/model"
)

var (
	ErrUnknownProvider = errors.New("llm: unknown provider")
	ErrEmptyModel      = errors.New("llm: model name is required")
	ErrInvalidBaseURL  = errors.New("llm: invalid base url")
)

// Config describes a model deployment as it appears in configuration files.
type Config struct {
	Provider    Kind    `yaml:"provider"`
	Model       string  `yaml:"model"`
	Verbose     bool    `yaml:"verbose"`
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key,omitempty"` //nolint:gosec // configuration field, not a hardcoded secret
	Temperature float64 `yaml:"temperature,omitempty"`
	MaxTokens   int     `yaml:"max_tokens,omitempty"`
}

// LLM is an immutable handle describing how to reach and use one model.
type LLM struct {
	provider Kind
	settings model.Model
	verbose  bool
	baseURL  string
	apiKey   string
	log      *slog.Logger
}

// Option configures New.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger used for construction warnings and, when the
// handle is verbose, by completers built from it.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// New validates cfg and returns a handle. The model name is trimmed of
// surrounding whitespace and an empty base URL resolves to the provider's
// default. No network I/O happens here.
func New(cfg Config, opts ...Option) (*LLM, error) {
	o := options{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	if !cfg.Provider.Valid() {
		return nil, fmt.Errorf("%w %q", ErrUnknownProvider, cfg.Provider)
	}

	name, trimmed := model.NormalizeName(cfg.Model)
	if name == "" {
		return nil, ErrEmptyModel
	}
	if trimmed {
		o.log.Warn("llm: trimmed whitespace from model name",
			"provider", cfg.Provider, "raw", cfg.Model, "model", name)
	}

	baseURL, err := resolveBaseURL(cfg.Provider, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	return &LLM{
		provider: cfg.Provider,
		settings: model.Model{
			Name:        name,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		},
		verbose: cfg.Verbose,
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		log:     o.log,
	}, nil
}

func resolveBaseURL(kind Kind, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return kind.DefaultBaseURL(), nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidBaseURL, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w %q: scheme must be http or https", ErrInvalidBaseURL, raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w %q: host is required", ErrInvalidBaseURL, raw)
	}

	return strings.TrimRight(raw, "/"), nil
}

// Provider returns the backend kind.
func (l *LLM) Provider() Kind { return l.provider }

// Model returns the normalized model name.
func (l *LLM) Model() string { return l.settings.Name }

// Verbose reports whether completers should log requests and responses.
func (l *LLM) Verbose() bool { return l.verbose }

// BaseURL returns the endpoint without a trailing slash.
func (l *LLM) BaseURL() string { return l.baseURL }

// APIKey returns the configured key, possibly empty.
func (l *LLM) APIKey() string { return l.apiKey }

// Settings returns the model settings.
func (l *LLM) Settings() model.Model { return l.settings }

// Logger returns the handle's logger. It is never nil.
func (l *LLM) Logger() *slog.Logger { return l.log }

// Config returns the normalized configuration the handle was built from.
func (l *LLM) Config() Config {
	return Config{
		Provider:    l.provider,
		Model:       l.settings.Name,
		Verbose:     l.verbose,
		BaseURL:     l.baseURL,
		APIKey:      l.apiKey,
		Temperature: l.settings.Temperature,
		MaxTokens:   l.settings.MaxTokens,
	}
}

// String describes the handle without exposing the API key.
func (l *LLM) String() string {
	return fmt.Sprintf("%s/%s@%s (verbose=%t)", l.provider, l.settings.Name, l.baseURL, l.verbose)
}
