package models

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ModelConfig describes one reviewer model the benchmark can exercise.
type ModelConfig struct {
	Name        string  `yaml:"name"`
	DisplayName string  `yaml:"display_name"`
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	// TokenParam is the workflow input carrying the token limit. The o1
	// family uses max-completion-tokens; everything else max-tokens.
	TokenParam string `yaml:"token_param,omitempty"`
	// Reviewers are GitHub logins that post reviews as this model.
	Reviewers []string `yaml:"reviewers,omitempty"`
	// TitlePatterns attribute PR titles to this model, most specific first.
	TitlePatterns []string `yaml:"title_patterns,omitempty"`
}

// Display returns the presentation name, falling back to Name.
func (m ModelConfig) Display() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Name
}

// TokenParameter returns the workflow input key for the token limit.
func (m ModelConfig) TokenParameter() string {
	if m.TokenParam != "" {
		return m.TokenParam
	}
	return "max-tokens"
}

// Registry holds the ordered set of reviewer models. Order matters for
// title attribution: earlier entries shadow later ones (gpt-4o-mini must
// match before gpt-4o).
type Registry struct {
	models []ModelConfig
}

// DefaultRegistry returns the built-in reviewer models.
func DefaultRegistry() *Registry {
	return &Registry{models: []ModelConfig{
		{
			Name: "o1-mini", DisplayName: "O1-Mini",
			Provider: "openai", Model: "o1-mini",
			Temperature: 1.0, MaxTokens: 3000, TokenParam: "max-completion-tokens",
			TitlePatterns: []string{"o1-mini"},
		},
		{
			Name: "gpt-4.1", DisplayName: "GPT-4.1",
			Provider: "openai", Model: "gpt-4-turbo",
			Temperature: 0.2, MaxTokens: 4000,
			TitlePatterns: []string{"gpt-4.1"},
		},
		{
			Name: "gpt-5", DisplayName: "GPT-5",
			Provider: "openai", Model: "gpt-4o",
			Temperature: 0.15, MaxTokens: 4000,
			TitlePatterns: []string{"gpt-5"},
		},
		{
			Name: "o1-preview", DisplayName: "O1-Preview",
			Provider: "openai", Model: "o1-preview",
			Temperature: 1.0, MaxTokens: 3000, TokenParam: "max-completion-tokens",
			TitlePatterns: []string{"o1-preview"},
		},
		{
			Name: "gpt-4o-mini", DisplayName: "GPT-4o-Mini",
			Provider: "openai", Model: "gpt-4o-mini",
			Temperature: 0.2, MaxTokens: 3000,
			TitlePatterns: []string{"gpt-4o-mini"},
		},
		{
			Name: "gpt-4o", DisplayName: "GPT-4o",
			Provider: "openai", Model: "gpt-4o",
			Temperature: 0.2, MaxTokens: 3000,
			TitlePatterns: []string{"gpt-4o"},
		},
		{
			Name: "gpt-4-turbo", DisplayName: "GPT-4-Turbo",
			Provider: "openai", Model: "gpt-4-turbo",
			Temperature: 0.2, MaxTokens: 3000,
			TitlePatterns: []string{"gpt-4-turbo"},
		},
		{
			Name: "claude-3-5-sonnet", DisplayName: "Claude-3.5-Sonnet",
			Provider: "anthropic", Model: "claude-3-5-sonnet-20241022",
			Temperature: 0.2, MaxTokens: 3000,
			TitlePatterns: []string{"claude-3-5-sonnet", "claude"},
		},
		{
			Name: "groq-llama-3.1", DisplayName: "Llama-3.1-8B",
			Provider: "groq", Model: "llama-3.1-8b-instant",
			Temperature: 0.2, MaxTokens: 3000,
			TitlePatterns: []string{"llama-3.1", "llama", "groq"},
		},
	}}
}

// LoadRegistry reads a registry override file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var file struct {
		Models []ModelConfig `yaml:"models"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	if len(file.Models) == 0 {
		return nil, fmt.Errorf("registry %s: no models defined", path)
	}
	for i, m := range file.Models {
		if m.Name == "" || m.Provider == "" || m.Model == "" {
			return nil, fmt.Errorf("registry %s: model %d: name, provider, and model are required", path, i+1)
		}
	}
	return &Registry{models: file.Models}, nil
}

// Models returns the registered models in order.
func (r *Registry) Models() []ModelConfig {
	out := make([]ModelConfig, len(r.models))
	copy(out, r.models)
	return out
}

// Names returns the registered model names in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.models))
	for i, m := range r.models {
		names[i] = m.Name
	}
	return names
}

// Get looks up a model by name, case-insensitively.
func (r *Registry) Get(name string) (ModelConfig, bool) {
	for _, m := range r.models {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return ModelConfig{}, false
}

// MatchTitle attributes a PR title to a model via its title patterns.
// Models are tried in registry order so more specific names win.
func (r *Registry) MatchTitle(title string) (string, bool) {
	lower := strings.ToLower(title)
	for _, m := range r.models {
		for _, p := range m.TitlePatterns {
			if p != "" && strings.Contains(lower, p) {
				return m.Display(), true
			}
		}
	}
	return "", false
}

// ReviewerMap flattens the per-model reviewer logins into a login to
// display-name mapping for identity resolution.
func (r *Registry) ReviewerMap() map[string]string {
	out := make(map[string]string)
	for _, m := range r.models {
		for _, login := range m.Reviewers {
			out[login] = m.Display()
		}
	}
	return out
}
