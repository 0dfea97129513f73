package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reviewbench/reviewbench/internal/bench"
	"github.com/reviewbench/reviewbench/internal/catalog"
	"github.com/reviewbench/reviewbench/internal/models"
	"github.com/reviewbench/reviewbench/internal/output"
	"github.com/reviewbench/reviewbench/internal/report"
	"github.com/reviewbench/reviewbench/internal/score"
)

var (
	analyzeOutput  string
	analyzeFormat  string
	analyzeScoring string
	analyzeNoChart bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <pr-number>",
	Short: "Score AI reviewer comments on the benchmark PR",
	Long: `Fetch the review comments posted on a pull request, score each AI
model against the known-issue catalog, and write comparison reports.

Without a GitHub token the fetch degrades to an empty result, so the
report files are still produced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[0])
		if err != nil || number <= 0 {
			return fmt.Errorf("invalid PR number %q (want a positive integer)", args[0])
		}
		return analyzeRun(number)
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Report directory (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "Report format: all, text, html, json (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeScoring, "scoring", "", "Scoring variant: weighted, presence (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoChart, "no-chart", false, "Skip the comparison chart PNG")
	rootCmd.AddCommand(analyzeCmd)
}

func analyzeRun(number int) error {
	formatStr := analyzeFormat
	if formatStr == "" {
		formatStr = viper.GetString("report.format")
	}
	format, err := report.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	scoringStr := analyzeScoring
	if scoringStr == "" {
		scoringStr = viper.GetString("scoring.variant")
	}
	variant, err := score.ParseVariant(scoringStr)
	if err != nil {
		return err
	}

	reg, err := getRegistry()
	if err != nil {
		return err
	}

	cat := catalog.Default()
	fetcher, repo := newFetcher()
	dir := outputDir(analyzeOutput)

	renderers := report.RenderersFor(format, cat, report.Options{
		EmbedChart: viper.GetBool("report.embed_chart"),
	})

	pipeline := &bench.Pipeline{
		Source:     fetcher,
		Scorer:     score.NewScorer(cat, newResolver(reg), variant),
		Catalog:    cat,
		Renderers:  renderers,
		Repository: repo,
		Version:    buildVersion,
		Variant:    variant,
	}
	if !analyzeNoChart {
		pipeline.Chart = &report.ChartRenderer{}
	}

	if dryRun {
		ui.DryRunMsg("Would analyze PR #%d and score %d known issues", number, cat.Total())
		for _, r := range renderers {
			ui.DryRunMsg("Would write %s", filepath.Join(dir, r.Filename()))
		}
		if pipeline.Chart != nil {
			ui.DryRunMsg("Would write %s", filepath.Join(dir, pipeline.Chart.Filename()))
		}
		return nil
	}

	if repo != "" {
		ui.Info("Analyzing PR #%d in %s", number, repo)
	} else {
		ui.Info("Analyzing PR #%d", number)
	}
	ui.VerboseLog("scoring variant %s, %d known issues", variant, cat.Total())

	res, err := pipeline.Run(context.Background(), number, dir)
	if err != nil {
		return err
	}
	rep := res.Report

	for _, w := range rep.Warnings {
		ui.Warning("%s", w)
	}

	if len(rep.Results) == 0 {
		ui.Info("No AI model reviews detected on this PR.")
	} else {
		printResults(rep)
	}

	for _, f := range res.Files {
		ui.Success("Wrote %s", f)
	}
	return nil
}

func printResults(rep *models.RunReport) {
	table := ui.Table([]string{"Model", "Overall", "Security", "Performance", "Quality", "Comments"})
	for _, r := range rep.Results {
		table.Append([]string{
			output.Cyan(r.Model),
			output.ScoreColor(r.DetectionRate),
			output.ScoreColor(r.CategoryScore(models.CategorySecurity).Score),
			output.ScoreColor(r.CategoryScore(models.CategoryPerformance).Score),
			output.ScoreColor(r.CategoryScore(models.CategoryQuality).Score),
			fmt.Sprintf("%d", r.TotalComments),
		})
	}
	table.Render()

	fmt.Fprintln(ui.Out)
	fmt.Fprintf(ui.Out, "  %-18s %s\n", "Best Overall:", output.Cyan(rep.Summary.BestOverall))
	fmt.Fprintf(ui.Out, "  %-18s %s\n", "Best Security:", output.Cyan(rep.Summary.BestSecurity))
	fmt.Fprintf(ui.Out, "  %-18s %s\n", "Best Performance:", output.Cyan(rep.Summary.BestPerformance))
	fmt.Fprintf(ui.Out, "  %-18s %s\n", "Best Quality:", output.Cyan(rep.Summary.BestQuality))
	fmt.Fprintln(ui.Out)
}
