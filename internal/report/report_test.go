package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewbench/reviewbench/internal/catalog"
	"github.com/reviewbench/reviewbench/internal/models"
)

func sampleReport() *models.RunReport {
	return &models.RunReport{
		RunID:       "01JDXAMPLE0000000000000000",
		PRNumber:    42,
		Repository:  "acme/webapp",
		GeneratedAt: time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
		Version:     "1.2.3",
		Variant:     "weighted",
		Breakdown: map[models.Category]int{
			models.CategorySecurity:    15,
			models.CategoryPerformance: 5,
			models.CategoryQuality:     7,
		},
		TotalIssues: 27,
		Results: []models.ModelResult{
			{
				Model:         "gpt-4o-reviewer[bot]",
				TotalComments: 12,
				Categories: []models.CategoryScore{
					{Category: models.CategorySecurity, Detected: 8, Score: 53.3},
					{Category: models.CategoryPerformance, Detected: 2, Score: 40.0},
					{Category: models.CategoryQuality, Detected: 3, Score: 42.9},
				},
				TotalDetected: 13,
				DetectionRate: 48.1,
			},
			{
				Model:         "claude-reviewer[bot]",
				TotalComments: 9,
				Categories: []models.CategoryScore{
					{Category: models.CategorySecurity, Detected: 12, Score: 80.0},
					{Category: models.CategoryPerformance, Detected: 1, Score: 20.0},
					{Category: models.CategoryQuality, Detected: 2, Score: 28.6},
				},
				TotalDetected: 15,
				DetectionRate: 55.6,
			},
		},
		Summary: models.Summary{
			BestOverall:     "claude-reviewer[bot]",
			BestSecurity:    "claude-reviewer[bot]",
			BestPerformance: "gpt-4o-reviewer[bot]",
			BestQuality:     "gpt-4o-reviewer[bot]",
		},
		Warnings: []string{"issue comments: rate limited"},
	}
}

func emptyReport() *models.RunReport {
	rep := sampleReport()
	rep.Results = nil
	rep.Summary = models.Summary{}
	return rep
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"all", FormatAll, false},
		{"text", FormatText, false},
		{"HTML", FormatHTML, false},
		{"json", FormatJSON, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderersFor(t *testing.T) {
	cat := catalog.Default()

	all := RenderersFor(FormatAll, cat, Options{})
	require.Len(t, all, 3)
	names := make([]string, len(all))
	for i, r := range all {
		names[i] = r.Filename()
	}
	assert.Equal(t, []string{"benchmark_report.txt", "benchmark_report.html", "results.json"}, names)

	text := RenderersFor(FormatText, cat, Options{})
	require.Len(t, text, 1)
	assert.Equal(t, "benchmark_report.txt", text[0].Filename())

	html := RenderersFor(FormatHTML, cat, Options{EmbedChart: true})
	require.Len(t, html, 1)
	assert.Equal(t, "benchmark_report.html", html[0].Filename())

	js := RenderersFor(FormatJSON, cat, Options{})
	require.Len(t, js, 1)
	assert.Equal(t, "results.json", js[0].Filename())
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "gpt-4o-reviewer", shortName("gpt-4o-reviewer[bot]"))
	assert.Equal(t, "AI", shortName("github-actions[bot]"))
	assert.Len(t, shortName("an-extremely-long-reviewer-account-name"), 24)
}
