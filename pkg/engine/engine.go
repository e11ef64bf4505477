package engine

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/germanamz/budgetoptimizer/pkg/agents/agent"
	"github.com/germanamz/budgetoptimizer/pkg/envfile"
	"github.com/germanamz/budgetoptimizer/pkg/llm"
	"github.com/germanamz/budgetoptimizer/pkg/providers/provider"
)

// ErrPingUnsupported is returned by Ping when the completer cannot list models.
var ErrPingUnsupported = errors.New("engine: completer does not support listing models")

// Engine holds the components assembled from a Config.
type Engine struct {
	cfg       Config
	llm       *llm.LLM
	agent     *agent.Agent
	completer provider.Completer
	openAIKey string
	log       *slog.Logger
}

// Option configures New.
type Option func(*options)

type options struct {
	log       *slog.Logger
	env       envfile.Env
	client    *http.Client
	factories map[llm.Kind]ProviderFactory
}

// WithLogger sets the logger passed down to the model handle. A nil logger
// is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithEnv sets the variables consulted for secrets before the process
// environment.
func WithEnv(env envfile.Env) Option {
	return func(o *options) { o.env = env }
}

// WithHTTPClient sets the client used by the completer.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

// WithProviderFactory overrides the completer factory for a provider kind.
func WithProviderFactory(kind llm.Kind, f ProviderFactory) Option {
	return func(o *options) { o.factories[kind] = f }
}

// New validates cfg and assembles an Engine. It does not contact the
// inference server.
func New(cfg Config, opts ...Option) (*Engine, error) {
	o := options{
		log:       slog.New(slog.DiscardHandler),
		factories: defaultFactories(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l, err := llm.New(cfg.LLM, llm.WithLogger(o.log))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg: cfg,
		llm: l,
		// Read for parity with deployments that export it; nothing here uses it.
		openAIKey: o.env.Lookup(envfile.OpenAIAPIKey),
		log:       o.log,
	}

	if !cfg.Agent.IsZero() {
		e.agent, err = agent.New(cfg.Agent, l)
		if err != nil {
			return nil, err
		}
	}

	e.completer, err = buildCompleter(o.factories, l, o.client)
	if err != nil {
		return nil, err
	}

	o.log.Debug("engine: ready", "name", cfg.Name, "llm", l.String(), "agent", e.agent != nil)

	return e, nil
}

// Name returns the configured name.
func (e *Engine) Name() string { return e.cfg.Name }

// Config returns the configuration the engine was built from.
func (e *Engine) Config() Config { return e.cfg }

// LLM returns the model handle.
func (e *Engine) LLM() *llm.LLM { return e.llm }

// Agent returns the agent handle, or nil when none is configured.
func (e *Engine) Agent() *agent.Agent { return e.agent }

// Completer returns the completer built for the model handle.
func (e *Engine) Completer() provider.Completer { return e.completer }

// OpenAIAPIKey returns the OPENAI_API_KEY value seen at construction, or "".
func (e *Engine) OpenAIAPIKey() string { return e.openAIKey }

// Ping contacts the inference server and returns the models it serves.
func (e *Engine) Ping(ctx context.Context) ([]string, error) {
	lister, ok := e.completer.(provider.ModelLister)
	if !ok {
		return nil, ErrPingUnsupported
	}

	models, err := lister.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	e.log.Debug("engine: ping", "llm", e.llm.String(), "models", len(models))

	return models, nil
}

// HasModel reports whether name is in models, ignoring an implicit
// ":latest" tag on either side.
func HasModel(models []string, name string) bool {
	for _, m := range models {
		if m == name || m == name+":latest" || m+":latest" == name {
			return true
		}
	}

	return false
}
