package engine

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/germanamz/budgetoptimizer/pkg/agents/agent"
	"github.com/germanamz/budgetoptimizer/pkg/envfile"
	"github.com/germanamz/budgetoptimizer/pkg/llm"
)

// DefaultName is the name given to configurations that do not set one.
const DefaultName = "budget_optimizer"

// Config is the top-level configuration.
type Config struct {
	Name  string       `yaml:"name"`
	LLM   llm.Config   `yaml:"llm"`
	Agent agent.Config `yaml:"agent,omitempty"`
}

// DefaultConfig returns the budget optimizer's built-in configuration: a
// verbose llama3.1:8b served by a local Ollama. The model name keeps the
// stray trailing space it has always been written with; llm.New trims it.
func DefaultConfig() Config {
	return Config{
		Name: DefaultName,
		LLM: llm.Config{
			Provider: llm.Ollama,
			Model:    "llama3.1:8b ",
			Verbose:  true,
			BaseURL:  "http://localhost:11434",
		},
	}
}

// LoadConfig reads a YAML file and returns a Config.
// After parsing, ${VAR} references in the llm model, base_url and api_key
// are expanded, first from env and then from the process environment, so API
// keys can live in a .env file rather than in the config. Other fields are
// taken literally.
func LoadConfig(path string, env envfile.Env) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, err
	}

	cfg.LLM.Model = env.Expand(cfg.LLM.Model)
	cfg.LLM.BaseURL = env.Expand(cfg.LLM.BaseURL)
	cfg.LLM.APIKey = env.Expand(cfg.LLM.APIKey)

	return cfg, nil
}

// ParseConfig parses YAML without expanding variable references. Use it when
// the result is written back to disk.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: parse config: %w", err)
	}

	if cfg.Name == "" {
		cfg.Name = DefaultName
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if !c.LLM.Provider.Valid() {
		return fmt.Errorf("engine: config: unknown llm provider %q (known: %s)", c.LLM.Provider, knownKinds())
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return fmt.Errorf("engine: config: llm model is required")
	}

	if !c.Agent.IsZero() {
		if err := c.Agent.Validate(); err != nil {
			return fmt.Errorf("engine: config: %w", err)
		}
	}

	return nil
}

func knownKinds() string {
	kinds := llm.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}

	return strings.Join(names, ", ")
}
