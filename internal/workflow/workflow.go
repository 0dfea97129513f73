// Package workflow provisions per-model test branches: it names branches,
// stamps the fixture with a marker commit, and generates the GitHub Actions
// workflow that runs one model's review.
package workflow

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/reviewbench/reviewbench/internal/models"
)

const branchTimeFormat = "20060102_150405"

// workflowTemplate uses [[ ]] delimiters so the ${{ }} expressions pass
// through to GitHub Actions untouched.
const workflowTemplate = `name: Test [[ .Name ]]

on:
  workflow_dispatch:
  push:
    branches: [test-[[ .Name ]]-*]

permissions:
  contents: read
  pull-requests: write

jobs:
  test-[[ .JobName ]]:
    runs-on: ubuntu-latest
    name: "Test [[ .Name ]]"
    steps:
      - name: Checkout
        uses: actions/checkout@v4
        with:
          fetch-depth: 2

      - name: Setup Node.js
        uses: actions/setup-node@v4
        with:
          node-version: '20'

      - name: Install dependencies
        run: |
          cd .github/actions/ai-pr-reviewer
          npm ci --ignore-scripts

      - name: Run [[ .Name ]] Review
        uses: ./.github/actions/ai-pr-reviewer
        with:
          github-token: ${{ secrets.GITHUB_TOKEN }}
          provider: "[[ .Provider ]]"
          model: "[[ .Model ]]"
          temperature: "[[ .Temperature ]]"
          [[ .TokenParam ]]: "[[ .MaxTokens ]]"
          include-tests: "true"
          include-style: "true"

      - name: Save Results
        run: |
          echo "Model: [[ .Name ]]" > test-results-[[ .Name ]].txt
          echo "Timestamp: $(date)" >> test-results-[[ .Name ]].txt
          echo "Configuration:" >> test-results-[[ .Name ]].txt
          echo "  Provider: [[ .Provider ]]" >> test-results-[[ .Name ]].txt
          echo "  Model: [[ .Model ]]" >> test-results-[[ .Name ]].txt
          echo "  Temperature: [[ .Temperature ]]" >> test-results-[[ .Name ]].txt
`

var workflowTmpl = template.Must(template.New("workflow").Delims("[[", "]]").Parse(workflowTemplate))

type templateData struct {
	Name        string
	JobName     string
	Provider    string
	Model       string
	Temperature string
	TokenParam  string
	MaxTokens   int
}

// BranchName returns the test branch name for a model run started at now.
func BranchName(model string, now time.Time) string {
	return fmt.Sprintf("test-%s-%s", model, now.Format(branchTimeFormat))
}

// Filename returns the workflow file name for a model.
func Filename(model string) string {
	return fmt.Sprintf("test-%s.yml", model)
}

// MarkerLine is the fixture comment that gives each test branch a diff for
// the reviewer to comment on.
func MarkerLine(model string, now time.Time) string {
	return fmt.Sprintf("// Test run for %s at %s", model, now.Format(time.RFC3339))
}

// AppendMarker appends the marker line to the fixture file at path.
func AppendMarker(path, model string, now time.Time) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("opening fixture: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "\n%s\n", MarkerLine(model, now)); err != nil {
		return fmt.Errorf("appending marker: %w", err)
	}
	return nil
}

// Generate renders the Actions workflow that reviews cfg's test branches.
func Generate(cfg models.ModelConfig) ([]byte, error) {
	data := templateData{
		Name:        cfg.Name,
		JobName:     jobName(cfg.Name),
		Provider:    cfg.Provider,
		Model:       cfg.Model,
		Temperature: formatTemperature(cfg.Temperature),
		TokenParam:  cfg.TokenParameter(),
		MaxTokens:   cfg.MaxTokens,
	}
	var buf bytes.Buffer
	if err := workflowTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering workflow for %s: %w", cfg.Name, err)
	}
	return buf.Bytes(), nil
}

// SwitchModel rewrites the reviewer inputs in an existing workflow so the
// next run uses cfg. Lines keep their indentation; everything else in the
// file is left untouched.
func SwitchModel(content []byte, cfg models.ModelConfig) []byte {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		switch {
		case strings.HasPrefix(trimmed, "provider:"):
			lines[i] = fmt.Sprintf(`%sprovider: "%s"`, indent, cfg.Provider)
		case strings.HasPrefix(trimmed, "model:"):
			lines[i] = fmt.Sprintf(`%smodel: "%s"`, indent, cfg.Model)
		case strings.HasPrefix(trimmed, "temperature:"):
			lines[i] = fmt.Sprintf(`%stemperature: "%s"`, indent, formatTemperature(cfg.Temperature))
		case strings.HasPrefix(trimmed, "max-tokens:"), strings.HasPrefix(trimmed, "max-completion-tokens:"):
			lines[i] = fmt.Sprintf(`%s%s: "%d"`, indent, cfg.TokenParameter(), cfg.MaxTokens)
		}
	}
	return []byte(strings.Join(lines, "\n"))
}

// jobName flattens a model name into a job id Actions accepts.
func jobName(model string) string {
	return strings.NewReplacer(".", "-", "_", "-").Replace(model)
}

// formatTemperature keeps one decimal on whole numbers so generated YAML
// matches the reviewer action's expected input format.
func formatTemperature(t float64) string {
	s := strconv.FormatFloat(t, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
