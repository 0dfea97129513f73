package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_KnownModels(t *testing.T) {
	r := DefaultRegistry()

	m, ok := r.Get("gpt-4o")
	require.True(t, ok)
	assert.Equal(t, "openai", m.Provider)
	assert.Equal(t, "gpt-4o", m.Model)
	assert.Equal(t, 3000, m.MaxTokens)
	assert.Equal(t, "max-tokens", m.TokenParameter())

	m, ok = r.Get("o1-preview")
	require.True(t, ok)
	assert.Equal(t, "max-completion-tokens", m.TokenParameter())
	assert.Equal(t, 1.0, m.Temperature)

	m, ok = r.Get("claude-3-5-sonnet")
	require.True(t, ok)
	assert.Equal(t, "anthropic", m.Provider)
	assert.Equal(t, "Claude-3.5-Sonnet", m.Display())

	_, ok = r.Get("nonexistent")
	assert.False(t, ok)
}

func TestRegistryGet_CaseInsensitive(t *testing.T) {
	r := DefaultRegistry()
	m, ok := r.Get("GPT-4O")
	require.True(t, ok)
	assert.Equal(t, "gpt-4o", m.Name)
}

func TestMatchTitle_SpecificBeforeGeneric(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		title string
		want  string
	}{
		{"Test PR for gpt-4o-mini benchmark", "GPT-4o-Mini"},
		{"Test PR for gpt-4o benchmark", "GPT-4o"},
		{"Benchmark run: GPT-4-Turbo", "GPT-4-Turbo"},
		{"o1-mini review pass", "O1-Mini"},
		{"claude-3-5-sonnet evaluation", "Claude-3.5-Sonnet"},
		{"trying claude on PR 12", "Claude-3.5-Sonnet"},
		{"groq speed test", "Llama-3.1-8B"},
		{"gpt-4.1 configured automatically", "GPT-4.1"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, ok := r.MatchTitle(tt.title)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchTitle_NoMatch(t *testing.T) {
	r := DefaultRegistry()
	_, ok := r.MatchTitle("Fix typo in README")
	assert.False(t, ok)
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	content := `models:
  - name: gpt-4o
    display_name: GPT-4o
    provider: openai
    model: gpt-4o
    temperature: 0.2
    max_tokens: 3000
    reviewers: [ai-reviewer-bot]
    title_patterns: [gpt-4o]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o"}, r.Names())
	assert.Equal(t, map[string]string{"ai-reviewer-bot": "GPT-4o"}, r.ReviewerMap())
}

func TestLoadRegistry_Invalid(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("models: []\n"), 0644))
	_, err := LoadRegistry(empty)
	assert.ErrorContains(t, err, "no models defined")

	missing := filepath.Join(dir, "missing.yaml")
	require.NoError(t, os.WriteFile(missing, []byte("models:\n  - name: x\n"), 0644))
	_, err = LoadRegistry(missing)
	assert.ErrorContains(t, err, "required")

	_, err = LoadRegistry(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestRatingFor(t *testing.T) {
	assert.Equal(t, RatingExcellent, RatingFor(70))
	assert.Equal(t, RatingExcellent, RatingFor(100))
	assert.Equal(t, RatingGood, RatingFor(40))
	assert.Equal(t, RatingGood, RatingFor(69.9))
	assert.Equal(t, RatingPoor, RatingFor(39.9))
	assert.Equal(t, RatingPoor, RatingFor(0))
}
