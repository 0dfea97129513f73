package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderBarChart(t *testing.T) {
	out, err := RenderBarChart("Overall Detection Rate (%)", []Bar{
		{Label: "gpt-4o", Value: 48.1},
		{Label: "claude", Value: 55.6},
	})
	require.NoError(t, err)
	require.Greater(t, len(out), len(pngMagic))
	assert.Equal(t, pngMagic, out[:len(pngMagic)])
}

func TestRenderBarChart_NoData(t *testing.T) {
	_, err := RenderBarChart("empty", nil)
	assert.ErrorIs(t, err, ErrNoChartData)
}

func TestChartRenderer(t *testing.T) {
	r := &ChartRenderer{}
	assert.Equal(t, "comparison_chart.png", r.Filename())

	out, err := r.Render(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, pngMagic, out[:len(pngMagic)])
}

func TestChartRenderer_NoResults(t *testing.T) {
	r := &ChartRenderer{}
	_, err := r.Render(emptyReport())
	assert.ErrorIs(t, err, ErrNoChartData)
}
