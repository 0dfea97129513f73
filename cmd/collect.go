package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/reviewbench/reviewbench/internal/fetch"
	"github.com/reviewbench/reviewbench/internal/output"
	"github.com/reviewbench/reviewbench/internal/report"
	"github.com/reviewbench/reviewbench/internal/survey"
)

var collectOutput string

var collectCmd = &cobra.Command{
	Use:   "collect <pr> [<pr>...]",
	Short: "Survey reviewer model behavior across pull requests",
	Long: `Collect review comments from several pull requests, attribute each PR
to a reviewer model by its title, and summarize per-model behavior:
comment volume, security and quality focus, and coverage of the known
vulnerability patterns.

PRs that cannot be fetched are skipped with a warning; the survey covers
whatever was reachable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		numbers, err := parsePRArgs(args)
		if err != nil {
			return err
		}
		return collectRun(numbers)
	},
}

func init() {
	collectCmd.Flags().StringVarP(&collectOutput, "output", "o", "", "Survey directory (default from config)")
	rootCmd.AddCommand(collectCmd)
}

// parsePRArgs converts the positional arguments to PR numbers.
func parsePRArgs(args []string) ([]int, error) {
	numbers := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid PR number %q (want a positive integer)", a)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

func collectRun(numbers []int) error {
	reg, err := getRegistry()
	if err != nil {
		return err
	}

	client, err := newGitHubClient()
	if err != nil {
		return err
	}

	dir := outputDir(collectOutput)

	if dryRun {
		ui.DryRunMsg("Would survey %d PRs from %s/%s", len(numbers), client.Owner, client.Repo)
		for _, name := range []string{"model_survey.csv", "model_survey.json", "model_survey.png"} {
			ui.DryRunMsg("Would write %s", filepath.Join(dir, name))
		}
		return nil
	}

	ctx := context.Background()
	fetcher := fetch.New(client)

	var prs []survey.PR
	for _, n := range numbers {
		meta, err := client.PullRequest(ctx, n)
		if err != nil {
			ui.Warning("PR #%d: %v", n, err)
			continue
		}
		title := meta.GetTitle()

		res := fetcher.FetchAll(ctx, n)
		for _, w := range res.Warnings {
			ui.Warning("PR #%d: %s", n, w)
		}

		model, ok := reg.MatchTitle(title)
		if !ok {
			model = "unknown"
		}
		ui.VerboseLog("PR #%d %q attributed to %s (%d comments)", n, title, model, len(res.Comments))

		prs = append(prs, survey.PR{
			Number:   n,
			Title:    title,
			Model:    model,
			Comments: res.Comments,
		})
	}

	stats := survey.Collect(prs)
	if len(stats) == 0 {
		ui.Info("No review activity collected.")
	} else {
		printSurvey(stats)
	}

	files, err := writeSurvey(dir, stats)
	if err != nil {
		return err
	}
	for _, f := range files {
		ui.Success("Wrote %s", f)
	}
	return nil
}

func printSurvey(stats []survey.ModelStats) {
	table := ui.Table([]string{"Model", "PRs", "Comments", "Security", "Quality", "Detailed", "Avg Len", "Coverage"})
	for _, s := range stats {
		table.Append([]string{
			output.Cyan(s.Model),
			fmt.Sprintf("%d", s.PRs),
			fmt.Sprintf("%d", s.TotalComments),
			fmt.Sprintf("%d", s.SecurityComments),
			fmt.Sprintf("%d", s.QualityComments),
			fmt.Sprintf("%d", s.DetailedComments),
			fmt.Sprintf("%.1f", s.AvgCommentLength),
			output.ScoreColor(s.DetectionRate),
		})
	}
	table.Render()
	fmt.Fprintf(ui.Out, "\n  Coverage is the share of the %d tracked vulnerability patterns mentioned.\n\n", survey.PatternCount())
}

// writeSurvey writes the CSV and JSON survey files plus the coverage chart.
// The chart is best-effort; the data files are not.
func writeSurvey(dir string, stats []survey.ModelStats) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var files []string

	csvPath := filepath.Join(dir, "model_survey.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", csvPath, err)
	}
	err = writeSurveyCSV(f, stats)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", csvPath, err)
	}
	files = append(files, csvPath)

	jsonPath := filepath.Join(dir, "model_survey.json")
	if stats == nil {
		stats = []survey.ModelStats{}
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding survey: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", jsonPath, err)
	}
	files = append(files, jsonPath)

	bars := make([]report.Bar, 0, len(stats))
	for _, s := range stats {
		bars = append(bars, report.Bar{Label: s.Model, Value: s.DetectionRate})
	}
	png, err := report.RenderBarChart("Vulnerability Pattern Coverage", bars)
	if err != nil {
		ui.Warning("chart: %v", err)
		return files, nil
	}
	pngPath := filepath.Join(dir, "model_survey.png")
	if err := os.WriteFile(pngPath, png, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", pngPath, err)
	}
	files = append(files, pngPath)

	return files, nil
}

func writeSurveyCSV(out io.Writer, stats []survey.ModelStats) error {
	w := csv.NewWriter(out)
	w.Write([]string{"Model", "PRs", "Comments", "Security", "Quality", "Detailed", "AvgLength", "SecurityMentions", "PatternsHit", "DetectionRate"})
	for _, s := range stats {
		w.Write([]string{
			s.Model,
			strconv.Itoa(s.PRs),
			strconv.Itoa(s.TotalComments),
			strconv.Itoa(s.SecurityComments),
			strconv.Itoa(s.QualityComments),
			strconv.Itoa(s.DetailedComments),
			fmt.Sprintf("%.1f", s.AvgCommentLength),
			strconv.Itoa(s.SecurityMentions),
			strconv.Itoa(s.PatternsHit),
			fmt.Sprintf("%.1f", s.DetectionRate),
		})
	}
	w.Flush()
	return w.Error()
}
