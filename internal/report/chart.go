package report

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/reviewbench/reviewbench/internal/models"
)

// ErrNoChartData means there were no scored models to plot.
var ErrNoChartData = errors.New("no model results to chart")

// Bar is one labeled value in a comparison chart.
type Bar struct {
	Label string
	Value float64
}

// RenderBarChart renders a PNG bar chart of percentage values. The Y axis
// is pinned to 0-100 so charts from different runs compare directly.
func RenderBarChart(title string, bars []Bar) ([]byte, error) {
	if len(bars) == 0 {
		return nil, ErrNoChartData
	}

	values := make([]chart.Value, len(bars))
	for i, b := range bars {
		values[i] = chart.Value{Label: b.Label, Value: b.Value}
	}

	bc := chart.BarChart{
		Title:  title,
		Width:  1024,
		Height: 512,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		BarWidth: 60,
		Bars:     values,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf.Bytes(), nil
}

// ChartRenderer writes the per-model detection rate comparison as a PNG.
// Chart output is best-effort: runs treat its failure as a warning, not
// a fatal error.
type ChartRenderer struct{}

func (r *ChartRenderer) Filename() string { return "comparison_chart.png" }

func (r *ChartRenderer) Render(rep *models.RunReport) ([]byte, error) {
	bars := make([]Bar, 0, len(rep.Results))
	for i := range rep.Results {
		res := &rep.Results[i]
		bars = append(bars, Bar{Label: shortName(res.Model), Value: res.DetectionRate})
	}
	return RenderBarChart("Overall Detection Rate (%)", bars)
}
