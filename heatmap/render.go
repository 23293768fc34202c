package heatmap

import (
	"fmt"

	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/view"
)

// GenerateSVG dispatches on the period kind of cfg.
func GenerateSVG(cfg view.ViewConfig, opts *Options) (string, error) {
	switch cfg.Period.Kind {
	case series.Yearly:
		return GenerateYearlyHeatmapSVG(cfg, opts)
	case series.Monthly:
		return GenerateMonthlyHeatmapSVG(cfg, opts)
	case series.Weekly:
		return GenerateWeeklyHeatmapSVG(cfg, opts)
	default:
		return "", fmt.Errorf("unsupported period kind %s", cfg.Period.Kind)
	}
}
