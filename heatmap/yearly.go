// yearly.go
// Generates a GitHub-like yearly contribution heatmap as an SVG string.
package heatmap

import (
	"github.com/stsysd/calheat/view"
)

// GenerateYearlyHeatmapSVG returns an SVG string representing the yearly heatmap.
// It returns an empty string for a view without days.
func GenerateYearlyHeatmapSVG(cfg view.ViewConfig, opts *Options) (string, error) {
	return renderSVG(cfg, opts, yearlyHeader, true)
}

// yearlyHeader places a short month name above the week holding the 1st.
func yearlyHeader(g grid, cfg view.ViewConfig, opts *Options) []label {
	var labels []label
	lastCol := -1
	for _, c := range g.cells {
		if c.day.Date.Day() != 1 || c.col == lastCol {
			continue
		}
		labels = append(labels, label{
			x:    g.x(c.col),
			y:    g.top - opts.CellPadding - 4,
			text: MonthName(cfg.Locale, c.day.Date.Month(), true),
		})
		lastCol = c.col
	}
	return labels
}
