package heatmap

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/view"
)

func TestRenderTerminal_Yearly(t *testing.T) {
	cfg, err := view.Yearly(2025, defaultDisplay(), series.Constant(3))
	require.NoError(t, err)

	out, err := RenderTerminal(cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "2025")
	assert.Contains(t, out, "Mon")
	assert.Contains(t, out, "less")
	assert.Contains(t, out, "more")
	// 365 day blocks plus one per legend bucket
	assert.Equal(t, 365+5, strings.Count(out, termCell))
}

func TestRenderTerminal_HiddenLegend(t *testing.T) {
	d := defaultDisplay()
	d.LegendVisible = false
	cfg, err := view.Month(2025, time.February, d, series.Constant(3))
	require.NoError(t, err)

	out, err := RenderTerminal(cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "February 2025")
	assert.NotContains(t, out, "less")
	assert.Equal(t, 28, strings.Count(out, termCell))
}

func TestRenderTerminal_Weekly(t *testing.T) {
	cfg, err := view.Weekly(2025, defaultDisplay(), series.Constant(0))
	require.NoError(t, err)

	out, err := RenderTerminal(cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "Jan 1 - Jan 7")
	assert.Equal(t, 7+5, strings.Count(out, termCell))
	assert.NotContains(t, out, "Mon", "weekly view uses single-letter headers")
}

func TestRenderTerminal_Empty(t *testing.T) {
	out, err := RenderTerminal(view.ViewConfig{})
	require.NoError(t, err)
	assert.Empty(t, out)
}
