package heatmap

import (
	"time"

	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/view"
)

// Options configures rendering parameters that are not part of the view
// configuration. Cell size, palette, legend and locale come from the ViewConfig.
type Options struct {
	CellPadding int    // padding between cells (px)
	FontSize    int    // font size for labels (px)
	FontFamily  string // font family for labels
	Title       string // optional title rendered above the grid
}

// DefaultOptions returns the options used when nil is passed.
func DefaultOptions() *Options {
	return &Options{
		CellPadding: 2,
		FontSize:    10,
		FontFamily:  "sans-serif",
	}
}

// placedDay is a day positioned on the grid.
type placedDay struct {
	col, row int
	day      series.DayRecord
}

// weekdayRow maps a date onto a Monday-first row index.
func weekdayRow(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// place positions every day of cfg. Yearly and monthly views use one column
// per week with Monday on the first row; the weekly view is a single row.
func place(cfg view.ViewConfig) (cells []placedDay, cols, rows int) {
	if len(cfg.Days) == 0 {
		return nil, 0, 0
	}

	cells = make([]placedDay, 0, len(cfg.Days))
	if cfg.Period.Kind == series.Weekly {
		for i, d := range cfg.Days {
			cells = append(cells, placedDay{col: i, row: 0, day: d})
		}
		return cells, len(cfg.Days), 1
	}

	// align first column to Monday
	start := cfg.Days[0].Date
	firstMonday := start.AddDate(0, 0, -weekdayRow(start))
	for _, d := range cfg.Days {
		days := int(d.Date.Sub(firstMonday).Hours() / 24)
		col := days / 7
		cells = append(cells, placedDay{col: col, row: weekdayRow(d.Date), day: d})
		if col+1 > cols {
			cols = col + 1
		}
	}
	return cells, cols, 7
}
