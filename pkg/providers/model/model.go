package model

import "strings"

// Model holds provider-agnostic LLM settings.
// The zero value is valid; zero Temperature and MaxTokens mean "use the
// server default".
type Model struct {
	Name        string
	Temperature float64
	MaxTokens   int
}

// NormalizeName trims surrounding whitespace from a model name and reports
// whether anything was removed.
func NormalizeName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	return trimmed, trimmed != name
}
