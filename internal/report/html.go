package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/reviewbench/reviewbench/internal/models"
)

//go:embed templates/report.html.tmpl
var htmlTemplate string

// chartPalette cycles through dataset colors in the comparison chart.
var chartPalette = []string{"#e74c3c", "#3498db", "#2ecc71", "#f39c12", "#9b59b6"}

// HTMLRenderer writes the standalone HTML report. With EmbedChart on it
// includes an interactive radar chart backed by the Chart.js CDN; with it
// off the page degrades to static markup only.
type HTMLRenderer struct {
	opts Options
	tmpl *template.Template
}

// NewHTMLRenderer builds an HTML renderer with opts.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{
		opts: opts,
		tmpl: template.Must(template.New("report").Parse(htmlTemplate)),
	}
}

func (r *HTMLRenderer) Filename() string { return "benchmark_report.html" }

type htmlModel struct {
	Name        string
	Rate        string
	RateClass   string
	Detected    int
	Total       int
	Security    string
	Performance string
	Quality     string
	Comments    int
}

type htmlData struct {
	PRNumber   int
	Repository string
	Generated  string
	Variant    string
	TotalKnown int
	Models     []htmlModel
	Summary    models.Summary
	Warnings   []string
	EmbedChart bool
	ChartData  template.JS
}

type chartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderWidth     int       `json:"borderWidth"`
}

func (r *HTMLRenderer) Render(rep *models.RunReport) ([]byte, error) {
	data := htmlData{
		PRNumber:   rep.PRNumber,
		Repository: rep.Repository,
		Generated:  rep.GeneratedAt.Format("2006-01-02 15:04:05"),
		Variant:    rep.Variant,
		TotalKnown: rep.TotalIssues,
		Summary:    rep.Summary,
		Warnings:   rep.Warnings,
		EmbedChart: r.opts.EmbedChart && len(rep.Results) > 0,
	}

	datasets := make([]chartDataset, 0, len(rep.Results))
	for i := range rep.Results {
		res := &rep.Results[i]
		data.Models = append(data.Models, htmlModel{
			Name:        res.Model,
			Rate:        pct(res.DetectionRate),
			RateClass:   rateClass(res.DetectionRate),
			Detected:    res.TotalDetected,
			Total:       rep.TotalIssues,
			Security:    pct(res.CategoryScore(models.CategorySecurity).Score),
			Performance: pct(res.CategoryScore(models.CategoryPerformance).Score),
			Quality:     pct(res.CategoryScore(models.CategoryQuality).Score),
			Comments:    res.TotalComments,
		})
		color := chartPalette[i%len(chartPalette)]
		datasets = append(datasets, chartDataset{
			Label: res.Model,
			Data: []float64{
				round1(res.DetectionRate),
				round1(res.CategoryScore(models.CategorySecurity).Score),
				round1(res.CategoryScore(models.CategoryPerformance).Score),
				round1(res.CategoryScore(models.CategoryQuality).Score),
			},
			BorderColor:     color,
			BackgroundColor: color + "33",
			BorderWidth:     2,
		})
	}

	if data.EmbedChart {
		raw, err := json.Marshal(datasets)
		if err != nil {
			return nil, fmt.Errorf("marshaling chart datasets: %w", err)
		}
		data.ChartData = template.JS(raw)
	}

	var b strings.Builder
	if err := r.tmpl.Execute(&b, data); err != nil {
		return nil, fmt.Errorf("rendering html report: %w", err)
	}
	return []byte(b.String()), nil
}

func rateClass(rate float64) string {
	switch models.RatingFor(rate) {
	case models.RatingExcellent:
		return "excellent"
	case models.RatingGood:
		return "good"
	default:
		return "poor"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
