package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reviewbench/reviewbench/internal/git"
	"github.com/reviewbench/reviewbench/internal/output"
	"github.com/reviewbench/reviewbench/internal/workflow"
)

var modelNoPush bool

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "List reviewer models and switch the active one",
}

var modelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured reviewer models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return modelListRun()
	},
}

var modelUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Point the reviewer workflow at a model",
	Long: `Rewrite the reviewer workflow so subsequent pull requests are reviewed
by the given model. Only the provider, model, temperature, and token
limit lines change; the rest of the workflow is preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return modelUseRun(args[0])
	},
}

func init() {
	modelUseCmd.Flags().BoolVar(&modelNoPush, "no-push", false, "Commit the switch locally without pushing")
	modelCmd.AddCommand(modelListCmd)
	modelCmd.AddCommand(modelUseCmd)
	rootCmd.AddCommand(modelCmd)
}

func modelListRun() error {
	reg, err := getRegistry()
	if err != nil {
		return err
	}

	table := ui.Table([]string{"Name", "Provider", "Model", "Temp", "Max Tokens", "Reviewers"})
	for _, m := range reg.Models() {
		reviewers := strings.Join(m.Reviewers, ", ")
		if reviewers == "" {
			reviewers = "-"
		}
		table.Append([]string{
			output.Cyan(m.Name),
			m.Provider,
			m.Model,
			fmt.Sprintf("%.1f", m.Temperature),
			fmt.Sprintf("%d", m.MaxTokens),
			reviewers,
		})
	}
	table.Render()
	return nil
}

func modelUseRun(name string) error {
	reg, err := getRegistry()
	if err != nil {
		return err
	}
	cfg, ok := reg.Get(name)
	if !ok {
		return fmt.Errorf("unknown model %q (available: %s)", name, strings.Join(reg.Names(), ", "))
	}

	path := "."
	base := viper.GetString("matrix.base_branch")
	wfPath := filepath.Join(viper.GetString("matrix.workflow_dir"), viper.GetString("matrix.review_workflow"))

	if dryRun {
		ui.DryRunMsg("Would check out %s and rewrite %s for %s (%s %s)",
			base, wfPath, cfg.Name, cfg.Provider, cfg.Model)
		if !modelNoPush {
			ui.DryRunMsg("Would commit and push the switch to origin")
		} else {
			ui.DryRunMsg("Would commit the switch locally")
		}
		return nil
	}

	gc := git.NewClient()
	if err := gc.Checkout(path, base); err != nil {
		return err
	}
	if err := gc.Pull(path); err != nil {
		ui.Warning("pull %s: %v", base, err)
	}

	content, err := os.ReadFile(wfPath)
	if err != nil {
		return fmt.Errorf("reviewer workflow not found: %w", err)
	}

	updated := workflow.SwitchModel(content, cfg)
	if err := os.WriteFile(wfPath, updated, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", wfPath, err)
	}

	dirty, err := gc.IsDirty(path)
	if err != nil {
		return err
	}
	if !dirty {
		ui.Info("Workflow already uses %s; nothing to commit.", cfg.Name)
		return nil
	}

	if err := gc.Add(path, wfPath); err != nil {
		return err
	}
	if err := gc.Commit(path, fmt.Sprintf("chore: switch reviewer to %s", cfg.Name)); err != nil {
		return err
	}
	ui.Success("Reviewer switched to %s (%s %s)", cfg.Name, cfg.Provider, cfg.Model)

	if modelNoPush {
		ui.Info("Skipping push (--no-push); push %s when ready.", base)
		return nil
	}
	if err := gc.Push(path, base); err != nil {
		return err
	}
	ui.Success("Pushed %s", base)
	return nil
}
