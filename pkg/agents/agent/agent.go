// Package agent binds a role, goal and backstory to a model handle.
//
// An Agent is a description, not a runner: it carries no tool loop, no memory
// and no scheduler.
package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/germanamz/budgetoptimizer/pkg/llm"
)

var (
	ErrMissingRole = errors.New("agent: role is required")
	ErrMissingGoal = errors.New("agent: goal is required")
	ErrMissingLLM  = errors.New("agent: llm handle is required")
)

// Config describes an agent as it appears in configuration files.
type Config struct {
	Name      string `yaml:"name,omitempty"`
	Role      string `yaml:"role"`
	Goal      string `yaml:"goal"`
	Backstory string `yaml:"backstory,omitempty"`
}

// IsZero reports whether no field is set.
func (c Config) IsZero() bool {
	return c == Config{}
}

// Validate checks that the required fields are present.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Role) == "" {
		return ErrMissingRole
	}
	if strings.TrimSpace(c.Goal) == "" {
		return ErrMissingGoal
	}

	return nil
}

// Agent is an immutable role/goal description bound to an LLM handle.
type Agent struct {
	cfg Config
	llm *llm.LLM
}

// New validates cfg and binds it to l.
func New(cfg Config, l *llm.LLM) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrMissingLLM
	}

	cfg.Role = strings.TrimSpace(cfg.Role)
	cfg.Goal = strings.TrimSpace(cfg.Goal)
	cfg.Backstory = strings.TrimSpace(cfg.Backstory)
	if cfg.Name == "" {
		cfg.Name = cfg.Role
	}

	return &Agent{cfg: cfg, llm: l}, nil
}

// Name returns the agent's name, which defaults to its role.
func (a *Agent) Name() string { return a.cfg.Name }

// Role returns the trimmed role.
func (a *Agent) Role() string { return a.cfg.Role }

// Goal returns the trimmed goal.
func (a *Agent) Goal() string { return a.cfg.Goal }

// Backstory returns the trimmed backstory, empty when none was given.
func (a *Agent) Backstory() string { return a.cfg.Backstory }

// LLM returns the bound model handle.
func (a *Agent) LLM() *llm.LLM { return a.llm }

// Config returns the normalized configuration.
func (a *Agent) Config() Config { return a.cfg }

// SystemPrompt renders the description as the system message a completer
// would receive.
func (a *Agent) SystemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s.", a.cfg.Role)
	if a.cfg.Backstory != "" {
		b.WriteString(" ")
		b.WriteString(a.cfg.Backstory)
	}
	fmt.Fprintf(&b, "\nYour goal is: %s", a.cfg.Goal)

	return b.String()
}
