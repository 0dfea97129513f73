package bench

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewbench/reviewbench/internal/catalog"
	"github.com/reviewbench/reviewbench/internal/fetch"
	"github.com/reviewbench/reviewbench/internal/models"
	"github.com/reviewbench/reviewbench/internal/report"
	"github.com/reviewbench/reviewbench/internal/score"
)

type stubSource struct {
	result *fetch.Result
}

func (s *stubSource) Fetch(ctx context.Context, number int) *fetch.Result {
	return s.result
}

type failingRenderer struct{}

func (failingRenderer) Filename() string { return "boom.txt" }
func (failingRenderer) Render(*models.RunReport) ([]byte, error) {
	return nil, errors.New("render exploded")
}

func testPipeline(src CommentSource, renderers []report.Renderer, chart report.Renderer) *Pipeline {
	cat := catalog.Default()
	return &Pipeline{
		Source:     src,
		Scorer:     score.NewScorer(cat, score.NewMarkerResolver(), score.VariantWeighted),
		Catalog:    cat,
		Renderers:  renderers,
		Chart:      chart,
		Repository: "acme/webapp",
		Version:    "test",
		Variant:    score.VariantWeighted,
	}
}

func botComments() *fetch.Result {
	return &fetch.Result{
		Comments: []models.Comment{
			{Author: "ai-reviewer[bot]", Body: "SQL injection in this query and a hardcoded secret below"},
			{Author: "ai-reviewer[bot]", Body: "race condition when the balance updates"},
		},
		Warnings: []string{"reviews: rate limited"},
	}
}

func TestPipeline_Run(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "results")
	cat := catalog.Default()
	p := testPipeline(
		&stubSource{result: botComments()},
		report.RenderersFor(report.FormatAll, cat, report.Options{EmbedChart: true}),
		&report.ChartRenderer{},
	)

	run, err := p.Run(context.Background(), 42, outDir)
	require.NoError(t, err)

	require.Len(t, run.Files, 4)
	for _, f := range run.Files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.FileExists(t, filepath.Join(outDir, "benchmark_report.txt"))
	assert.FileExists(t, filepath.Join(outDir, "benchmark_report.html"))
	assert.FileExists(t, filepath.Join(outDir, "results.json"))
	assert.FileExists(t, filepath.Join(outDir, "comparison_chart.png"))

	rep := run.Report
	assert.Len(t, rep.RunID, 26)
	assert.Equal(t, 42, rep.PRNumber)
	assert.Equal(t, "acme/webapp", rep.Repository)
	assert.Equal(t, 27, rep.TotalIssues)
	assert.Contains(t, rep.Warnings, "reviews: rate limited")
	require.Len(t, rep.Results, 1)
	assert.Equal(t, "ai-reviewer[bot]", rep.Results[0].Model)
	assert.Equal(t, "ai-reviewer[bot]", rep.Summary.BestOverall)
}

func TestPipeline_EmptyFetchStillReports(t *testing.T) {
	outDir := t.TempDir()
	cat := catalog.Default()
	p := testPipeline(
		&stubSource{result: &fetch.Result{Warnings: []string{"no GitHub credential configured; skipping fetch"}}},
		report.RenderersFor(report.FormatText, cat, report.Options{}),
		nil,
	)

	run, err := p.Run(context.Background(), 7, outDir)
	require.NoError(t, err)
	require.Len(t, run.Files, 1)

	data, err := os.ReadFile(run.Files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "No AI model reviews detected in this PR.")
}

func TestPipeline_ChartFailureIsWarning(t *testing.T) {
	outDir := t.TempDir()
	cat := catalog.Default()
	p := testPipeline(
		&stubSource{result: &fetch.Result{}},
		report.RenderersFor(report.FormatJSON, cat, report.Options{}),
		&report.ChartRenderer{},
	)

	run, err := p.Run(context.Background(), 7, outDir)
	require.NoError(t, err)
	require.Len(t, run.Files, 1)
	assert.NoFileExists(t, filepath.Join(outDir, "comparison_chart.png"))

	found := false
	for _, w := range run.Report.Warnings {
		if strings.HasPrefix(w, "chart:") && strings.Contains(w, "no model results to chart") {
			found = true
		}
	}
	assert.True(t, found, "expected a chart warning, got %v", run.Report.Warnings)
}

func TestPipeline_RendererFailureIsFatal(t *testing.T) {
	p := testPipeline(&stubSource{result: &fetch.Result{}}, []report.Renderer{failingRenderer{}}, nil)

	_, err := p.Run(context.Background(), 7, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom.txt")
}

func TestPipeline_UnwritableOutputDirIsFatal(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "results")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cat := catalog.Default()
	p := testPipeline(
		&stubSource{result: &fetch.Result{}},
		report.RenderersFor(report.FormatText, cat, report.Options{}),
		nil,
	)

	// The output path sits below a regular file, so MkdirAll must fail.
	_, err := p.Run(context.Background(), 7, filepath.Join(blocker, "nested"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output directory")
}
