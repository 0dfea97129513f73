package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reviewbench/reviewbench/internal/git"
	"github.com/reviewbench/reviewbench/internal/models"
	"github.com/reviewbench/reviewbench/internal/output"
	"github.com/reviewbench/reviewbench/internal/preflight"
	"github.com/reviewbench/reviewbench/internal/workflow"
)

var (
	matrixModels string
	matrixOutput string
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Provision and track per-model test branches",
	Long: `Run the full model test matrix: each reviewer model gets its own
branch with a freshly triggered fixture change and a dedicated workflow,
pushed to origin so the reviews run in CI.`,
}

var matrixRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Push a test branch and workflow for each model",
	RunE: func(cmd *cobra.Command, args []string) error {
		return matrixRunRun()
	},
}

var matrixStatusCmd = &cobra.Command{
	Use:   "status <branch>",
	Short: "Show workflow runs for a test branch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return matrixStatusRun(args[0])
	},
}

func init() {
	matrixRunCmd.Flags().StringVar(&matrixModels, "models", "", "Comma-separated model names (default: all)")
	matrixRunCmd.Flags().StringVarP(&matrixOutput, "output", "o", "", "Report directory (default from config)")
	matrixCmd.AddCommand(matrixRunCmd)
	matrixCmd.AddCommand(matrixStatusCmd)
	rootCmd.AddCommand(matrixCmd)
}

// selectModels picks the models to provision: all of them, or the
// comma-separated names given on the command line.
func selectModels(reg *models.Registry, csv string) ([]models.ModelConfig, error) {
	if strings.TrimSpace(csv) == "" {
		return reg.Models(), nil
	}

	var cfgs []models.ModelConfig
	for _, name := range strings.Split(csv, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cfg, ok := reg.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown model %q (available: %s)", name, strings.Join(reg.Names(), ", "))
		}
		cfgs = append(cfgs, cfg)
	}
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("no models selected")
	}
	return cfgs, nil
}

func matrixRunRun() error {
	reg, err := getRegistry()
	if err != nil {
		return err
	}
	cfgs, err := selectModels(reg, matrixModels)
	if err != nil {
		return err
	}

	path := "."
	base := viper.GetString("matrix.base_branch")
	fixture := viper.GetString("matrix.fixture_path")
	workflowDir := viper.GetString("matrix.workflow_dir")

	gc := git.NewClient()
	checker := preflight.NewChecker(gc)
	checks := checker.Run(path, fixture, workflowDir)
	printChecks(checks)
	if !preflight.AllPassed(checks) {
		return fmt.Errorf("pre-flight checks failed")
	}

	if dryRun {
		now := time.Now()
		for _, cfg := range cfgs {
			ui.DryRunMsg("Would branch %s from %s, mark %s, and push %s",
				workflow.BranchName(cfg.Name, now), base, fixture,
				filepath.Join(workflowDir, workflow.Filename(cfg.Name)))
		}
		return nil
	}

	ui.Info("Provisioning %d model test branches from %s", len(cfgs), base)
	runner := &workflow.Runner{
		Git:         gc,
		RepoPath:    path,
		BaseBranch:  base,
		FixturePath: fixture,
		WorkflowDir: workflowDir,
	}
	provs := runner.ProvisionAll(cfgs)

	printProvisionings(provs)

	dir := outputDir(matrixOutput)
	files, err := writeMatrixReport(dir, provs, base)
	if err != nil {
		return err
	}
	for _, f := range files {
		ui.Success("Wrote %s", f)
	}

	pushed := 0
	for _, p := range provs {
		if p.Status == workflow.StatusPushed {
			pushed++
		}
	}
	if pushed < len(provs) {
		ui.Warning("%d of %d models failed to provision", len(provs)-pushed, len(provs))
	}
	ui.Success("Provisioned %d/%d models", pushed, len(provs))
	return nil
}

func printChecks(checks []preflight.Check) {
	for _, c := range checks {
		icon := output.Red("✗")
		if c.Passed {
			icon = output.Green("✓")
		}
		fmt.Fprintf(ui.Out, "  %s %-20s %s\n", icon, c.Name, c.Detail)
	}
	fmt.Fprintln(ui.Out)
}

func printProvisionings(provs []workflow.Provisioning) {
	table := ui.Table([]string{"Model", "Status", "Branch", "Workflow"})
	for _, p := range provs {
		branch := p.Branch
		if branch == "" {
			branch = "-"
		}
		wf := p.Workflow
		if wf == "" {
			wf = "-"
		}
		table.Append([]string{
			output.Cyan(p.Model),
			output.StatusColor(string(p.Status)),
			branch,
			wf,
		})
	}
	table.Render()

	for _, p := range provs {
		if p.Error != "" {
			ui.Warning("%s: %s", p.Model, p.Error)
		}
	}
}

// writeMatrixReport writes the text summary and the JSON results of a
// matrix run into dir.
func writeMatrixReport(dir string, provs []workflow.Provisioning, base string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	txtPath := filepath.Join(dir, "matrix_report.txt")
	if err := os.WriteFile(txtPath, renderMatrixReport(provs, base, time.Now()), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", txtPath, err)
	}

	jsonPath := filepath.Join(dir, "matrix_results.json")
	data, err := json.MarshalIndent(provs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding matrix results: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", jsonPath, err)
	}

	return []string{txtPath, jsonPath}, nil
}

func renderMatrixReport(provs []workflow.Provisioning, base string, now time.Time) []byte {
	var b strings.Builder

	fmt.Fprintln(&b, "Model Test Matrix Report")
	fmt.Fprintln(&b, strings.Repeat("=", 50))
	fmt.Fprintf(&b, "Generated:   %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Base Branch: %s\n", base)
	fmt.Fprintf(&b, "Models:      %d\n", len(provs))
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "%-22s %-8s %s\n", "MODEL", "STATUS", "BRANCH")
	fmt.Fprintln(&b, strings.Repeat("-", 50))

	pushed := 0
	for _, p := range provs {
		branch := p.Branch
		if branch == "" {
			branch = "-"
		}
		fmt.Fprintf(&b, "%-22s %-8s %s\n", p.Model, p.Status, branch)
		if p.Error != "" {
			fmt.Fprintf(&b, "  error: %s\n", p.Error)
		}
		if p.Status == workflow.StatusPushed {
			pushed++
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Provisioned %d/%d models.\n", pushed, len(provs))

	return []byte(b.String())
}

func matrixStatusRun(branch string) error {
	client, err := newGitHubClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	runs, err := client.WorkflowRuns(ctx, branch)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		ui.Info("No workflow runs found for branch %s", branch)
		return nil
	}

	table := ui.Table([]string{"Workflow", "Status", "Conclusion", "Started", "Elapsed", "URL"})
	for _, r := range runs {
		conclusion := r.GetConclusion()
		if conclusion == "" {
			conclusion = "-"
		}
		elapsed := "-"
		if !r.GetRunStartedAt().IsZero() && r.GetStatus() == "completed" {
			elapsed = r.GetUpdatedAt().Sub(r.GetRunStartedAt().Time).Round(time.Second).String()
		}
		table.Append([]string{
			r.GetName(),
			output.StatusColor(r.GetStatus()),
			output.StatusColor(conclusion),
			r.GetCreatedAt().Format("2006-01-02 15:04"),
			elapsed,
			r.GetHTMLURL(),
		})
	}
	table.Render()
	return nil
}
