// Package providers groups the LLM completion backends.
//
// Sub-packages:
//   - [github.com/germanamz/budgetoptimizer/pkg/providers/model]: model settings shared by all providers (name, temperature, max tokens)
//   - [github.com/germanamz/budgetoptimizer/pkg/providers/provider]: Completer and ModelLister interfaces, embeddable Provider base with HTTP helpers
//   - [github.com/germanamz/budgetoptimizer/pkg/providers/ollama]: Ollama chat API
//   - [github.com/germanamz/budgetoptimizer/pkg/providers/openai]: OpenAI chat completions API
//
// Completers are built from an [github.com/germanamz/budgetoptimizer/pkg/llm.LLM]
// handle and only touch the network when a method is called.
package providers
