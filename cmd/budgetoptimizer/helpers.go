package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/germanamz/budgetoptimizer/pkg/engine"
)

// mdRenderer is nil when no renderer could be built; output is then plain.
var mdRenderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return
	}
	mdRenderer = r
}

// renderMarkdown converts markdown text to terminal-formatted output.
func renderMarkdown(text string) string {
	if mdRenderer == nil {
		return text
	}
	out, err := mdRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// summaryMarkdown describes the engine's handles. The API key is reported
// only as set or unset.
func summaryMarkdown(eng *engine.Engine) string {
	l := eng.LLM()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", eng.Name())
	b.WriteString("| setting | value |\n|---|---|\n")
	fmt.Fprintf(&b, "| provider | `%s` |\n", l.Provider())
	fmt.Fprintf(&b, "| model | `%s` |\n", l.Model())
	fmt.Fprintf(&b, "| base url | %s |\n", l.BaseURL())
	fmt.Fprintf(&b, "| verbose | %t |\n", l.Verbose())
	fmt.Fprintf(&b, "| api key | %s |\n", setOrUnset(l.APIKey()))
	fmt.Fprintf(&b, "| OPENAI_API_KEY | %s |\n", setOrUnset(eng.OpenAIAPIKey()))

	if a := eng.Agent(); a != nil {
		fmt.Fprintf(&b, "\n## Agent: %s\n\n", a.Name())
		for _, line := range strings.Split(a.SystemPrompt(), "\n") {
			fmt.Fprintf(&b, "> %s\n", line)
		}
	} else {
		b.WriteString("\n_No agent configured._\n")
	}

	return b.String()
}

func setOrUnset(v string) string {
	if v == "" {
		return "unset"
	}
	return "set"
}
