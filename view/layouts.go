package view

import (
	"fmt"
	"time"

	"github.com/stsysd/calheat/model"
	"github.com/stsysd/calheat/palette"
	"github.com/stsysd/calheat/series"
)

// DefaultCellSize is the cell edge length used by every layout.
const DefaultCellSize = 15

// Display carries the selector-driven settings shared by all layouts.
type Display struct {
	Palette       palette.Palette
	LegendVisible bool
	Locale        string
	CellSize      int
	OnClick       func(series.DayRecord)
}

// resolved fills unset fields. An empty palette means "not chosen" and falls
// back to the built-in coloring rather than failing assembly.
func (d Display) resolved() Display {
	if len(d.Palette) == 0 {
		d.Palette = palette.Default()
	}
	if d.Locale == "" {
		d.Locale = model.DefaultLocale
	}
	if d.CellSize <= 0 {
		d.CellSize = DefaultCellSize
	}
	return d
}

func build(p series.Period, d Display, src series.CountSource, opts ...Option) (ViewConfig, error) {
	days := series.Collect(series.Generate(p, src))
	cfg, err := Assemble(p, days, d.Palette, d.LegendVisible, d.Locale, d.CellSize, opts...)
	if err != nil {
		return ViewConfig{}, fmt.Errorf("assemble %s view: %w", p.Kind, err)
	}
	return cfg, nil
}

// Yearly builds the full-year view with tooltips, labels and click handling.
func Yearly(year int, d Display, src series.CountSource) (ViewConfig, error) {
	d = d.resolved()
	opts := []Option{
		WithLegendDirection(LegendRight),
		WithTooltip(Tooltip{Display: true, Unit: "contribution", DateFormat: "MMMM d"}),
		WithI18n(DefaultI18n()),
	}
	if d.OnClick != nil {
		opts = append(opts, WithClickHandler(d.OnClick))
	}
	return build(series.YearlyPeriod(year), d, src, opts...)
}

// Month builds a single month view with round cells.
func Month(year int, month time.Month, d Display, src series.CountSource) (ViewConfig, error) {
	d = d.resolved()
	return build(series.MonthlyPeriod(year, month), d, src,
		WithLegendDirection(LegendRight),
		WithDayStyle(DayStyle{BorderRadius: "50%"}),
	)
}

// Monthly builds the twelve month views of year.
func Monthly(year int, d Display, src series.CountSource) ([]ViewConfig, error) {
	configs := make([]ViewConfig, 0, 12)
	for _, p := range series.MonthlyPeriods(year) {
		cfg, err := Month(year, p.Anchor.Month(), d, src)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// Weekly builds the seven-day view starting Jan 1 of year.
func Weekly(year int, d Display, src series.CountSource) (ViewConfig, error) {
	d = d.resolved()
	return build(series.WeeklyPeriod(year), d, src,
		WithLegendDirection(LegendLeft),
		WithTooltipPlacement("bottom"),
	)
}

// Set is the full output of one selection: one yearly, twelve monthly and
// one weekly view.
type Set struct {
	Yearly  ViewConfig   `json:"yearly"`
	Monthly []ViewConfig `json:"monthly"`
	Weekly  ViewConfig   `json:"weekly"`
}

// BuildSet regenerates every view for year.
func BuildSet(year int, d Display, src series.CountSource) (Set, error) {
	yearly, err := Yearly(year, d, src)
	if err != nil {
		return Set{}, err
	}
	monthly, err := Monthly(year, d, src)
	if err != nil {
		return Set{}, err
	}
	weekly, err := Weekly(year, d, src)
	if err != nil {
		return Set{}, err
	}
	return Set{Yearly: yearly, Monthly: monthly, Weekly: weekly}, nil
}
