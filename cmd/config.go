package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configForce bool

// configDirFunc returns the config directory path, replaceable in tests.
var configDirFunc = defaultConfigDir

func defaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "reviewbench"), nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or manage configuration",
	Long: `Show or manage reviewbench configuration.

Running bare 'reviewbench config' is the same as 'reviewbench config show'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config file with commented defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configInitRun()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration with sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configEditRun()
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

// configTemplate is the template for generating config.yaml with comments.
const configTemplate = `# reviewbench configuration
# See: reviewbench config show (for effective values and sources)

# Report directory (default: benchmark_results)
# output_dir: {{ .OutputDir }}

# Optional YAML file overriding the built-in model registry
# models_file: ""

# GitHub
github:
  # Benchmark fixture repository as owner/name
  repo: "{{ .GitHubRepo }}"

  # API token; prefer the GITHUB_TOKEN environment variable
  # token: ""

# Scoring
scoring:
  # Variant: weighted or presence (default: weighted)
  variant: "{{ .ScoringVariant }}"

# Reports
report:
  # Format: all, text, html, json (default: all)
  format: "{{ .ReportFormat }}"

  # Embed the Chart.js comparison section in the HTML report (default: true)
  embed_chart: {{ .ReportEmbedChart }}

# Matrix provisioning
matrix:
  # Branch the test branches are cut from (default: main)
  base_branch: "{{ .MatrixBaseBranch }}"

  # Fixture file that receives the trigger marker
  fixture_path: "{{ .MatrixFixturePath }}"

  # Directory holding the generated workflows
  workflow_dir: "{{ .MatrixWorkflowDir }}"

  # Workflow rewritten by 'reviewbench model use'
  review_workflow: "{{ .MatrixReviewWorkflow }}"
`

type configTemplateData struct {
	OutputDir            string
	GitHubRepo           string
	ScoringVariant       string
	ReportFormat         string
	ReportEmbedChart     bool
	MatrixBaseBranch     string
	MatrixFixturePath    string
	MatrixWorkflowDir    string
	MatrixReviewWorkflow string
}

func configFilePath() (string, error) {
	dir, err := configDirFunc()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func configInitRun() error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	// Check if file already exists
	if _, err := os.Stat(cfgPath); err == nil {
		if !configForce {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", cfgPath)
		}
		ui.Warning("Overwriting existing config file")
	}

	// Build template data from current viper values
	data := configTemplateData{
		OutputDir:            viper.GetString("output_dir"),
		GitHubRepo:           viper.GetString("github.repo"),
		ScoringVariant:       viper.GetString("scoring.variant"),
		ReportFormat:         viper.GetString("report.format"),
		ReportEmbedChart:     viper.GetBool("report.embed_chart"),
		MatrixBaseBranch:     viper.GetString("matrix.base_branch"),
		MatrixFixturePath:    viper.GetString("matrix.fixture_path"),
		MatrixWorkflowDir:    viper.GetString("matrix.workflow_dir"),
		MatrixReviewWorkflow: viper.GetString("matrix.review_workflow"),
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("template execute error: %w", err)
	}

	if dryRun {
		ui.DryRunMsg("Would create config file: %s", cfgPath)
		fmt.Fprintln(ui.Out)
		fmt.Fprint(ui.Out, buf.String())
		return nil
	}

	// Create config directory
	dir := filepath.Dir(cfgPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(cfgPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	ui.Success("Config file created: %s", cfgPath)
	fmt.Fprintln(ui.Out)
	fmt.Fprint(ui.Out, buf.String())
	return nil
}

// configKeyInfo describes a config key for display purposes.
type configKeyInfo struct {
	Key    string
	EnvVar string
}

var configKeys = []configKeyInfo{
	{Key: "github.repo", EnvVar: "REVIEWBENCH_GITHUB_REPO"},
	{Key: "output_dir", EnvVar: "REVIEWBENCH_OUTPUT_DIR"},
	{Key: "models_file", EnvVar: "REVIEWBENCH_MODELS_FILE"},
	{Key: "scoring.variant", EnvVar: "REVIEWBENCH_SCORING_VARIANT"},
	{Key: "report.format", EnvVar: "REVIEWBENCH_REPORT_FORMAT"},
	{Key: "report.embed_chart", EnvVar: "REVIEWBENCH_REPORT_EMBED_CHART"},
	{Key: "matrix.base_branch", EnvVar: "REVIEWBENCH_MATRIX_BASE_BRANCH"},
	{Key: "matrix.fixture_path", EnvVar: "REVIEWBENCH_MATRIX_FIXTURE_PATH"},
	{Key: "matrix.workflow_dir", EnvVar: "REVIEWBENCH_MATRIX_WORKFLOW_DIR"},
	{Key: "matrix.review_workflow", EnvVar: "REVIEWBENCH_MATRIX_REVIEW_WORKFLOW"},
}

func configShowRun() error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	// Check if config file exists
	if _, err := os.Stat(cfgPath); err == nil {
		ui.Info("Config file: %s", cfgPath)
	} else {
		ui.Info("Config file: (none)")
	}
	fmt.Fprintln(ui.Out)

	// Read config file values to determine file source
	fileValues := readConfigFileValues(cfgPath)

	for _, k := range configKeys {
		val := viper.Get(k.Key)
		source := detectSource(k.Key, k.EnvVar, fileValues)
		fmt.Fprintf(ui.Out, "  %-24s %v  %s\n", k.Key, val, source)
	}

	return nil
}

// readConfigFileValues reads the raw YAML file and returns a flat map of keys present in it.
func readConfigFileValues(path string) map[string]bool {
	result := make(map[string]bool)

	data, err := os.ReadFile(path)
	if err != nil {
		return result
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return result
	}

	// Flatten nested keys with dot notation
	flattenKeys("", parsed, result)
	return result
}

// flattenKeys recursively flattens a nested map to dot-notation keys.
func flattenKeys(prefix string, m map[string]any, result map[string]bool) {
	for key, val := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := val.(map[string]any); ok {
			flattenKeys(fullKey, nested, result)
		} else {
			result[fullKey] = true
		}
	}
}

// detectSource determines where a config value is coming from.
func detectSource(key, envVar string, fileValues map[string]bool) string {
	if _, ok := os.LookupEnv(envVar); ok {
		return fmt.Sprintf("(env: %s)", envVar)
	}
	if fileValues[key] {
		return "(file)"
	}
	return "(default)"
}

func configEditRun() error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		return fmt.Errorf("$EDITOR is not set, set it to your preferred editor (e.g. export EDITOR=vim)")
	}

	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s (run 'reviewbench config init' first)", cfgPath)
	}

	if dryRun {
		ui.DryRunMsg("Would open %s in %s", cfgPath, editor)
		return nil
	}

	editCmd := exec.Command(editor, cfgPath)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	return editCmd.Run()
}
