package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	"github.com/germanamz/budgetoptimizer/pkg/agents/agent"
	"github.com/germanamz/budgetoptimizer/pkg/engine"
	"github.com/germanamz/budgetoptimizer/pkg/envfile"
	"github.com/germanamz/budgetoptimizer/pkg/llm"
)

var errAborted = errors.New("init: aborted, nothing written")

type providerDefault struct {
	Model   string
	APIKey  string //nolint:gosec // env var reference template, not a secret
	BaseURL string
}

//nolint:gosec // env var reference templates, not hardcoded secrets
var providerDefaults = map[llm.Kind]providerDefault{
	llm.Ollama: {Model: "llama3.1:8b", BaseURL: llm.Ollama.DefaultBaseURL()},
	llm.OpenAI: {Model: "gpt-4o-mini", APIKey: "${" + envfile.OpenAIAPIKey + "}", BaseURL: llm.OpenAI.DefaultBaseURL()},
}

func runInit(path string, force bool) error {
	start, existing, err := loadInitConfig(path)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("budgetoptimizer init"))
	fmt.Println(dimStyle.Render("Writing " + path))

	cfg, err := wizardConfig(start)
	if err != nil {
		return err
	}

	data, err := marshalConfig(cfg)
	if err != nil {
		return err
	}

	if existing != nil && !force {
		diff, err := configDiff(path, existing, data)
		if err != nil {
			return err
		}
		if diff == "" {
			fmt.Println(dimStyle.Render("No changes."))
			return nil
		}

		fmt.Println(diff)

		var ok bool
		if err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title("Overwrite " + path + "?").Value(&ok),
		)).Run(); err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // config file, not secret
		return fmt.Errorf("init: write config: %w", err)
	}

	fmt.Println(okStyle.Render("✓ wrote " + path))

	return nil
}

// loadInitConfig returns the config to start the wizard from and the raw
// bytes of path, or the defaults and nil when path does not exist. ${VAR}
// references are kept as written so secrets never reach the rewritten file.
func loadInitConfig(path string) (engine.Config, []byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-provided config path
	if errors.Is(err, os.ErrNotExist) {
		return engine.DefaultConfig(), nil, nil
	}
	if err != nil {
		return engine.Config{}, nil, fmt.Errorf("init: %w", err)
	}

	cfg, err := engine.ParseConfig(data)
	if err != nil {
		return engine.Config{}, nil, err
	}

	return cfg, data, nil
}

// wizardConfig prompts for every field, pre-filled from start.
func wizardConfig(start engine.Config) (engine.Config, error) {
	cfg := start
	kind := string(cfg.LLM.Provider)

	opts := make([]huh.Option[string], 0, len(llm.Kinds()))
	for _, k := range llm.Kinds() {
		opts = append(opts, huh.NewOption(k.String(), k.String()))
	}

	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&cfg.Name),
		huh.NewSelect[string]().Title("Provider").Options(opts...).Value(&kind),
	)).Run(); err != nil {
		return cfg, err
	}

	applyProviderDefaults(&cfg, llm.Kind(kind))

	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Model").Value(&cfg.LLM.Model).Validate(validateModel),
		huh.NewInput().Title("Base URL (empty = provider default)").Value(&cfg.LLM.BaseURL).Validate(validateBaseURL),
		huh.NewInput().Title("API key (env var reference recommended)").Value(&cfg.LLM.APIKey),
		huh.NewConfirm().Title("Verbose request logging?").Value(&cfg.LLM.Verbose),
	)).Run(); err != nil {
		return cfg, err
	}

	withAgent := !cfg.Agent.IsZero()
	if err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("Configure an agent role and goal?").Value(&withAgent),
	)).Run(); err != nil {
		return cfg, err
	}

	if !withAgent {
		cfg.Agent = agent.Config{}
		return cfg, nil
	}

	if cfg.Agent.Role == "" {
		cfg.Agent.Role = "Budget Optimizer"
	}

	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Role").Value(&cfg.Agent.Role).Validate(validateRequired),
		huh.NewInput().Title("Goal").Value(&cfg.Agent.Goal).Validate(validateRequired),
		huh.NewText().Title("Backstory").Value(&cfg.Agent.Backstory),
	)).Run()

	return cfg, err
}

// applyProviderDefaults switches cfg to kind, replacing model, base URL and
// API key with the kind's defaults when the kind changed.
func applyProviderDefaults(cfg *engine.Config, kind llm.Kind) {
	if cfg.LLM.Provider == kind {
		return
	}

	d := providerDefaults[kind]
	cfg.LLM.Provider = kind
	cfg.LLM.Model = d.Model
	cfg.LLM.BaseURL = d.BaseURL
	cfg.LLM.APIKey = d.APIKey
}

func validateModel(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("model is required")
	}
	if strings.TrimSpace(s) != s {
		return fmt.Errorf("model must not start or end with whitespace")
	}

	return nil
}

func validateBaseURL(s string) error {
	if s == "" {
		return nil
	}

	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an http(s) URL, e.g. http://localhost:11434")
	}

	return nil
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}

	return nil
}

// marshalConfig renders cfg as YAML with two-space indentation.
func marshalConfig(cfg engine.Config) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("init: marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("init: marshal config: %w", err)
	}

	return buf.Bytes(), nil
}

// configDiff returns a unified diff between the current and proposed file
// contents, or "" when they are equal.
func configDiff(path string, current, proposed []byte) (string, error) {
	if bytes.Equal(current, proposed) {
		return "", nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(proposed)),
		FromFile: path,
		ToFile:   path + " (new)",
		Context:  3,
	})
}
