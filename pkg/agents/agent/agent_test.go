package agent

import (
	"testing"

	"github.com/germanamz/budgetoptimizer/pkg/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLLM(t *testing.T) *llm.LLM {
	t.Helper()

	l, err := llm.New(llm.Config{Provider: llm.Ollama, Model: "llama3.1:8b", Verbose: true})
	require.NoError(t, err)

	return l
}

func TestNew(t *testing.T) {
	l := newLLM(t)

	a, err := New(Config{
		Role:      " Budget Optimizer ",
		Goal:      "Reduce monthly spending without hurting essentials",
		Backstory: "A frugal analyst.",
	}, l)

	require.NoError(t, err)
	assert.Equal(t, "Budget Optimizer", a.Role())
	assert.Equal(t, "Budget Optimizer", a.Name())
	assert.Equal(t, "Reduce monthly spending without hurting essentials", a.Goal())
	assert.Equal(t, "A frugal analyst.", a.Backstory())
	assert.Same(t, l, a.LLM())
}

func TestNew_KeepsExplicitName(t *testing.T) {
	a, err := New(Config{Name: "budget_optimizer", Role: "r", Goal: "g"}, newLLM(t))

	require.NoError(t, err)
	assert.Equal(t, "budget_optimizer", a.Name())
	assert.Equal(t, Config{Name: "budget_optimizer", Role: "r", Goal: "g"}, a.Config())
}

func TestNew_Errors(t *testing.T) {
	l := newLLM(t)

	_, err := New(Config{Goal: "g"}, l)
	assert.ErrorIs(t, err, ErrMissingRole)

	_, err = New(Config{Role: "r", Goal: "  "}, l)
	assert.ErrorIs(t, err, ErrMissingGoal)

	_, err = New(Config{Role: "r", Goal: "g"}, nil)
	assert.ErrorIs(t, err, ErrMissingLLM)
}

func TestConfig_IsZero(t *testing.T) {
	assert.True(t, Config{}.IsZero())
	assert.False(t, Config{Backstory: "x"}.IsZero())
}

func TestSystemPrompt(t *testing.T) {
	a, err := New(Config{Role: "a budget optimizer", Goal: "cut costs", Backstory: "You love spreadsheets."}, newLLM(t))
	require.NoError(t, err)

	assert.Equal(t, "You are a budget optimizer. You love spreadsheets.\nYour goal is: cut costs", a.SystemPrompt())
}

func TestSystemPrompt_NoBackstory(t *testing.T) {
	a, err := New(Config{Role: "a budget optimizer", Goal: "cut costs"}, newLLM(t))
	require.NoError(t, err)

	assert.Equal(t, "You are a budget optimizer.\nYour goal is: cut costs", a.SystemPrompt())
}
