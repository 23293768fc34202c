// monthly.go
// Generates a single-month calendar heatmap as an SVG string.
package heatmap

import (
	"fmt"

	"github.com/stsysd/calheat/view"
)

// GenerateMonthlyHeatmapSVG returns an SVG string for one month view, headed
// by the localized month name and year.
func GenerateMonthlyHeatmapSVG(cfg view.ViewConfig, opts *Options) (string, error) {
	return renderSVG(cfg, opts, monthlyHeader, true)
}

func monthlyHeader(g grid, cfg view.ViewConfig, opts *Options) []label {
	start := cfg.Start()
	return []label{{
		x:    g.left,
		y:    g.top - opts.CellPadding - 4,
		text: fmt.Sprintf("%s %d", MonthName(cfg.Locale, start.Month(), false), start.Year()),
	}}
}
