package engine

import (
	"fmt"
	"net/http"

	"github.com/germanamz/budgetoptimizer/pkg/llm"
	"github.com/germanamz/budgetoptimizer/pkg/providers/ollama"
	"github.com/germanamz/budgetoptimizer/pkg/providers/openai"
	"github.com/germanamz/budgetoptimizer/pkg/providers/provider"
)

// ProviderFactory creates a Completer from a model handle.
type ProviderFactory func(l *llm.LLM, client *http.Client) (provider.Completer, error)

func defaultFactories() map[llm.Kind]ProviderFactory {
	return map[llm.Kind]ProviderFactory{
		llm.Ollama: newOllama,
		llm.OpenAI: newOpenAI,
	}
}

func newOllama(l *llm.LLM, client *http.Client) (provider.Completer, error) {
	a, err := ollama.New(l, client)
	if err != nil {
		return nil, err
	}

	return a, nil
}

func newOpenAI(l *llm.LLM, client *http.Client) (provider.Completer, error) {
	a, err := openai.New(l, client)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// buildCompleter creates a Completer for l using the factory registered for
// its kind.
func buildCompleter(factories map[llm.Kind]ProviderFactory, l *llm.LLM, client *http.Client) (provider.Completer, error) {
	factory, ok := factories[l.Provider()]
	if !ok {
		return nil, fmt.Errorf("engine: no completer for provider kind %q", l.Provider())
	}

	c, err := factory(l, client)
	if err != nil {
		return nil, fmt.Errorf("engine: provider %q: %w", l.Provider(), err)
	}

	return c, nil
}
