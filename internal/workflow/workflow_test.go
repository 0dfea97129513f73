package workflow

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/reviewbench/reviewbench/internal/models"
)

var testTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type parsedWorkflow struct {
	Name        string            `yaml:"name"`
	Permissions map[string]string `yaml:"permissions"`
	Jobs        map[string]struct {
		RunsOn string `yaml:"runs-on"`
		Name   string `yaml:"name"`
		Steps  []struct {
			Name string         `yaml:"name"`
			Uses string         `yaml:"uses"`
			Run  string         `yaml:"run"`
			With map[string]any `yaml:"with"`
		} `yaml:"steps"`
	} `yaml:"jobs"`
}

func mustModel(t *testing.T, name string) models.ModelConfig {
	t.Helper()
	cfg, ok := models.DefaultRegistry().Get(name)
	require.True(t, ok, "model %s not in default registry", name)
	return cfg
}

func TestGenerate(t *testing.T) {
	out, err := Generate(mustModel(t, "gpt-4o"))
	require.NoError(t, err)
	content := string(out)

	// The secrets expression must survive templating untouched.
	assert.Contains(t, content, "github-token: ${{ secrets.GITHUB_TOKEN }}")
	assert.Contains(t, content, "branches: [test-gpt-4o-*]")

	var wf parsedWorkflow
	require.NoError(t, yaml.Unmarshal(out, &wf))

	assert.Equal(t, "Test gpt-4o", wf.Name)
	assert.Equal(t, "read", wf.Permissions["contents"])
	assert.Equal(t, "write", wf.Permissions["pull-requests"])

	job, ok := wf.Jobs["test-gpt-4o"]
	require.True(t, ok, "jobs: %v", wf.Jobs)
	assert.Equal(t, "ubuntu-latest", job.RunsOn)
	require.Len(t, job.Steps, 5)

	review := job.Steps[3]
	assert.Equal(t, "./.github/actions/ai-pr-reviewer", review.Uses)
	assert.Equal(t, "openai", review.With["provider"])
	assert.Equal(t, "gpt-4o", review.With["model"])
	assert.Equal(t, "0.2", review.With["temperature"])
	assert.Equal(t, "3000", review.With["max-tokens"])
	assert.Equal(t, "true", review.With["include-tests"])
}

func TestGenerate_CompletionTokenModels(t *testing.T) {
	out, err := Generate(mustModel(t, "o1-mini"))
	require.NoError(t, err)

	var wf parsedWorkflow
	require.NoError(t, yaml.Unmarshal(out, &wf))

	review := wf.Jobs["test-o1-mini"].Steps[3]
	assert.Equal(t, "3000", review.With["max-completion-tokens"])
	assert.NotContains(t, review.With, "max-tokens")
	assert.Equal(t, "1.0", review.With["temperature"])
}

func TestGenerate_JobNameFlattening(t *testing.T) {
	out, err := Generate(mustModel(t, "groq-llama-3.1"))
	require.NoError(t, err)

	var wf parsedWorkflow
	require.NoError(t, yaml.Unmarshal(out, &wf))

	_, ok := wf.Jobs["test-groq-llama-3-1"]
	assert.True(t, ok, "jobs: %v", wf.Jobs)
}

func TestBranchName(t *testing.T) {
	assert.Equal(t, "test-gpt-4o-20250101_120000", BranchName("gpt-4o", testTime))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "test-claude-3-5-sonnet.yml", Filename("claude-3-5-sonnet"))
}

func TestMarkerLine(t *testing.T) {
	line := MarkerLine("gpt-4o", testTime)
	assert.Equal(t, "// Test run for gpt-4o at 2025-01-01T12:00:00Z", line)
}

func TestAppendMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark-test.ts")
	require.NoError(t, os.WriteFile(path, []byte("export {}\n"), 0644))

	require.NoError(t, AppendMarker(path, "gpt-4o", testTime))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export {}\n\n// Test run for gpt-4o at 2025-01-01T12:00:00Z\n", string(data))
}

func TestAppendMarker_MissingFixture(t *testing.T) {
	err := AppendMarker(filepath.Join(t.TempDir(), "missing.ts"), "gpt-4o", testTime)
	assert.Error(t, err)
}

func TestSwitchModel(t *testing.T) {
	original := strings.Join([]string{
		"name: AI PR Review",
		"jobs:",
		"  review:",
		"    steps:",
		"      - uses: ./.github/actions/ai-pr-reviewer",
		"        with:",
		`          provider: "openai"`,
		`          model: "gpt-4-turbo"`,
		`          temperature: "0.2"`,
		`          max-tokens: "4000"`,
		"",
	}, "\n")

	claude := mustModel(t, "claude-3-5-sonnet")
	out := string(SwitchModel([]byte(original), claude))

	assert.Contains(t, out, `          provider: "anthropic"`)
	assert.Contains(t, out, `          model: "claude-3-5-sonnet-20241022"`)
	assert.Contains(t, out, `          temperature: "0.2"`)
	assert.Contains(t, out, `          max-tokens: "3000"`)
	assert.NotContains(t, out, "gpt-4-turbo")
	// Untouched lines survive byte for byte.
	assert.Contains(t, out, "name: AI PR Review")
}

func TestSwitchModel_TokenParamRename(t *testing.T) {
	original := `          max-tokens: "4000"` + "\n"

	o1 := mustModel(t, "o1-mini")
	out := string(SwitchModel([]byte(original), o1))

	assert.Contains(t, out, `          max-completion-tokens: "3000"`)
	assert.NotContains(t, out, "max-tokens:")

	// Switching back restores the plain token parameter.
	back := string(SwitchModel([]byte(out), mustModel(t, "gpt-4o")))
	assert.Contains(t, back, `          max-tokens: "3000"`)
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "0.2", formatTemperature(0.2))
	assert.Equal(t, "1.0", formatTemperature(1))
	assert.Equal(t, "0.15", formatTemperature(0.15))
}
