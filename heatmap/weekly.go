package heatmap

import (
	"github.com/stsysd/calheat/view"
)

// GenerateWeeklyHeatmapSVG returns an SVG string for the seven-day view.
// Layout: a single row of cells, each headed by its weekday label. The row
// starts on the first day of the period, which is not necessarily a Monday.
func GenerateWeeklyHeatmapSVG(cfg view.ViewConfig, opts *Options) (string, error) {
	return renderSVG(cfg, opts, weeklyHeader, false)
}

func weeklyHeader(g grid, cfg view.ViewConfig, opts *Options) []label {
	weekdays := cfg.Labels().Weekdays
	labels := make([]label, 0, len(g.cells))
	for _, c := range g.cells {
		row := weekdayRow(c.day.Date)
		if row >= len(weekdays) {
			continue
		}
		labels = append(labels, label{
			x:      g.x(c.col) + g.size/2,
			y:      g.top - opts.CellPadding - 4,
			text:   weekdays[row],
			anchor: "middle",
		})
	}
	return labels
}
