package report

import (
	"fmt"
	"strings"

	"github.com/reviewbench/reviewbench/internal/catalog"
	"github.com/reviewbench/reviewbench/internal/models"
)

// breakdownPreview caps how many issues each category lists in the text
// report before eliding the rest.
const breakdownPreview = 5

// TextRenderer writes the plain-text summary report.
type TextRenderer struct {
	catalog *catalog.Catalog
}

// NewTextRenderer builds a text renderer listing known issues from cat.
func NewTextRenderer(cat *catalog.Catalog) *TextRenderer {
	return &TextRenderer{catalog: cat}
}

func (r *TextRenderer) Filename() string { return "benchmark_report.txt" }

func (r *TextRenderer) Render(rep *models.RunReport) ([]byte, error) {
	var b strings.Builder
	rule := strings.Repeat("=", 50)
	thin := strings.Repeat("-", 50)

	fmt.Fprintln(&b, "AI MODEL BENCHMARK ANALYSIS REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "PR Number:          #%d\n", rep.PRNumber)
	if rep.Repository != "" {
		fmt.Fprintf(&b, "Repository:         %s\n", rep.Repository)
	}
	fmt.Fprintf(&b, "Generated:          %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Scoring Variant:    %s\n", rep.Variant)
	fmt.Fprintf(&b, "Total Known Issues: %d\n", rep.TotalIssues)
	fmt.Fprintln(&b)

	if len(rep.Results) == 0 {
		fmt.Fprintln(&b, "No AI model reviews detected in this PR.")
		r.writeBreakdown(&b, thin)
		return []byte(b.String()), nil
	}

	fmt.Fprintln(&b, "PERFORMANCE SUMMARY")
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "%-25s %-10s %-10s %-8s %-8s %s\n", "Model", "Overall", "Security", "Perf", "Quality", "Comments")
	fmt.Fprintln(&b, thin)
	for i := range rep.Results {
		res := &rep.Results[i]
		fmt.Fprintf(&b, "%-25s %-10s %-10s %-8s %-8s %d\n",
			shortName(res.Model),
			pct(res.DetectionRate),
			pct(res.CategoryScore(models.CategorySecurity).Score),
			pct(res.CategoryScore(models.CategoryPerformance).Score),
			pct(res.CategoryScore(models.CategoryQuality).Score),
			res.TotalComments,
		)
	}
	fmt.Fprintln(&b)

	for i := range rep.Results {
		res := &rep.Results[i]
		fmt.Fprintf(&b, "DETAILED ANALYSIS: %s\n", res.Model)
		fmt.Fprintln(&b, thin)
		fmt.Fprintf(&b, "Overall Detection Rate:    %s\n", pct(res.DetectionRate))
		for _, cat := range models.Categories() {
			cs := res.CategoryScore(cat)
			label := fmt.Sprintf("%s Issues Found:", titleCase(string(cat)))
			fmt.Fprintf(&b, "%-26s %d (Score: %s)\n", label, cs.Detected, pct(cs.Score))
		}
		fmt.Fprintf(&b, "Total Comments:            %d\n", res.TotalComments)
		fmt.Fprintf(&b, "Performance Rating:        %s\n", models.RatingFor(res.DetectionRate))
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, "TOP PERFORMERS")
	fmt.Fprintln(&b, thin)
	r.writeBest(&b, rep, "Best Overall:", rep.Summary.BestOverall, overallScore)
	r.writeBest(&b, rep, "Best Security:", rep.Summary.BestSecurity, categoryScore(models.CategorySecurity))
	r.writeBest(&b, rep, "Best Performance:", rep.Summary.BestPerformance, categoryScore(models.CategoryPerformance))
	r.writeBest(&b, rep, "Best Quality:", rep.Summary.BestQuality, categoryScore(models.CategoryQuality))
	fmt.Fprintln(&b)

	r.writeBreakdown(&b, thin)
	return []byte(b.String()), nil
}

func (r *TextRenderer) writeBest(b *strings.Builder, rep *models.RunReport, label, model string, score func(*models.ModelResult) float64) {
	if model == "" {
		return
	}
	for i := range rep.Results {
		if rep.Results[i].Model == model {
			fmt.Fprintf(b, "%-18s %s (%s)\n", label, model, pct(score(&rep.Results[i])))
			return
		}
	}
}

func (r *TextRenderer) writeBreakdown(b *strings.Builder, thin string) {
	if r.catalog == nil {
		return
	}
	fmt.Fprintln(b, "KNOWN ISSUES BREAKDOWN")
	fmt.Fprintln(b, thin)
	for _, cat := range models.Categories() {
		issues := r.catalog.Issues(cat)
		fmt.Fprintf(b, "%s (%d issues):\n", strings.ToUpper(string(cat)), len(issues))
		for i, issue := range issues {
			if i == breakdownPreview {
				fmt.Fprintf(b, "  ... and %d more\n", len(issues)-breakdownPreview)
				break
			}
			fmt.Fprintf(b, "  Line %d: %s (%s)\n", issue.Line, issue.Description, issue.Severity)
		}
		fmt.Fprintln(b)
	}
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func overallScore(r *models.ModelResult) float64 {
	return r.DetectionRate
}

func categoryScore(cat models.Category) func(*models.ModelResult) float64 {
	return func(r *models.ModelResult) float64 {
		return r.CategoryScore(cat).Score
	}
}
