// Package view assembles the immutable configuration handed to heatmap renderers.
package view

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/stsysd/calheat/model"
	"github.com/stsysd/calheat/palette"
	"github.com/stsysd/calheat/series"
)

// LegendDirection places the legend relative to the grid.
type LegendDirection string

const (
	LegendLeft  LegendDirection = "LEFT"
	LegendRight LegendDirection = "RIGHT"
)

// Legend controls legend rendering.
type Legend struct {
	Display   bool            `json:"display"`
	Direction LegendDirection `json:"direction"`
}

// Tooltip configures per-cell tooltips.
type Tooltip struct {
	Display    bool   `json:"display"`
	Unit       string `json:"unit"`
	DateFormat string `json:"dateFormat"`
}

// I18n is the label set passed through to renderers untranslated.
type I18n struct {
	Weekdays []string `json:"weekdays"`
	On       string   `json:"on"`
	Less     string   `json:"less"`
	More     string   `json:"more"`
	NoData   string   `json:"noData"`
	Min      string   `json:"min"`
	Max      string   `json:"max"`
}

// DefaultI18n returns the English label set.
func DefaultI18n() I18n {
	return I18n{
		Weekdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		On:       "on",
		Less:     "less",
		More:     "more",
		NoData:   "No",
		Min:      "min",
		Max:      "max",
	}
}

// DayStyle overrides the cell shape.
type DayStyle struct {
	BorderRadius string `json:"borderRadius"`
}

// Presentation holds renderer hints that do not affect the data.
type Presentation struct {
	LegendDirection  LegendDirection
	Tooltip          *Tooltip
	TooltipPlacement string
	I18n             *I18n
	DayStyle         *DayStyle
	OnClick          func(series.DayRecord)
}

// Option customizes the presentation of an assembled ViewConfig.
type Option func(*Presentation)

func WithLegendDirection(d LegendDirection) Option {
	return func(p *Presentation) { p.LegendDirection = d }
}

func WithTooltip(t Tooltip) Option {
	return func(p *Presentation) { p.Tooltip = &t }
}

func WithTooltipPlacement(placement string) Option {
	return func(p *Presentation) { p.TooltipPlacement = placement }
}

func WithI18n(labels I18n) Option {
	return func(p *Presentation) {
		labels.Weekdays = append([]string(nil), labels.Weekdays...)
		p.I18n = &labels
	}
}

func WithDayStyle(s DayStyle) Option {
	return func(p *Presentation) { p.DayStyle = &s }
}

// WithClickHandler registers the callback invoked by Click.
func WithClickHandler(fn func(series.DayRecord)) Option {
	return func(p *Presentation) { p.OnClick = fn }
}

// ViewConfig is everything a renderer needs for one heatmap.
// Assemble copies its inputs, so a ViewConfig never shares slices with the
// caller or with another ViewConfig.
type ViewConfig struct {
	Period        series.Period
	Days          []series.DayRecord
	Palette       palette.Palette
	LegendVisible bool
	Locale        string
	CellSize      int
	Presentation  Presentation
}

// Assemble builds a ViewConfig. It fails with a *model.ConfigurationError
// when days or pal is empty; nothing else is validated.
func Assemble(period series.Period, days []series.DayRecord, pal palette.Palette, legendVisible bool, locale string, cellSize int, opts ...Option) (ViewConfig, error) {
	if len(days) == 0 {
		return ViewConfig{}, model.NewConfigurationError(model.ErrEmptyDays)
	}
	if len(pal) == 0 {
		return ViewConfig{}, model.NewConfigurationError(model.ErrEmptyPalette)
	}

	pres := Presentation{LegendDirection: LegendRight}
	for _, opt := range opts {
		opt(&pres)
	}

	return ViewConfig{
		Period:        period,
		Days:          append([]series.DayRecord(nil), days...),
		Palette:       pal.Clone(),
		LegendVisible: legendVisible,
		Locale:        locale,
		CellSize:      cellSize,
		Presentation:  pres,
	}, nil
}

// Labels returns the configured label set or the English default.
func (c ViewConfig) Labels() I18n {
	if c.Presentation.I18n != nil {
		return *c.Presentation.I18n
	}
	return DefaultI18n()
}

// Clickable reports whether a click handler is registered.
func (c ViewConfig) Clickable() bool {
	return c.Presentation.OnClick != nil
}

// Click forwards a day click to the registered handler, if any.
func (c ViewConfig) Click(day series.DayRecord) {
	if c.Presentation.OnClick != nil {
		c.Presentation.OnClick(day)
	}
}

// Start returns the first date of the view.
func (c ViewConfig) Start() time.Time {
	start, _ := c.Period.Bounds()
	return start
}

type tippyProps struct {
	Placement string `json:"placement"`
}

type widgetOptions struct {
	Type               string          `json:"type"`
	StartDate          string          `json:"startDate"`
	CellSize           int             `json:"cellSize"`
	HideEmptyDays      bool            `json:"hideEmptyDays"`
	Colors             palette.Palette `json:"colors"`
	HeatmapLegend      Legend          `json:"heatmapLegend"`
	Locale             string          `json:"locale"`
	Tooltip            *Tooltip        `json:"tooltip,omitempty"`
	TippyProps         *tippyProps     `json:"tippyProps,omitempty"`
	OverWritedDayStyle *DayStyle       `json:"overWritedDayStyle,omitempty"`
	I18n               *I18n           `json:"i18n,omitempty"`
	Clickable          bool            `json:"clickable,omitempty"`
}

// MarshalJSON writes the widget contract: an options object and the data array.
func (c ViewConfig) MarshalJSON() ([]byte, error) {
	opts := widgetOptions{
		Type:          strings.ToUpper(c.Period.Kind.String()),
		StartDate:     c.Start().Format(time.DateOnly),
		CellSize:      c.CellSize,
		Colors:        c.Palette,
		HeatmapLegend: Legend{Display: c.LegendVisible, Direction: c.Presentation.LegendDirection},
		Locale:        c.Locale,
		Tooltip:       c.Presentation.Tooltip,
		I18n:          c.Presentation.I18n,
		Clickable:     c.Clickable(),
	}
	if c.Presentation.TooltipPlacement != "" {
		opts.TippyProps = &tippyProps{Placement: c.Presentation.TooltipPlacement}
	}
	if c.Presentation.DayStyle != nil {
		opts.OverWritedDayStyle = c.Presentation.DayStyle
	}

	days := c.Days
	if days == nil {
		days = []series.DayRecord{}
	}
	return json.Marshal(struct {
		Options widgetOptions      `json:"options"`
		Data    []series.DayRecord `json:"data"`
	}{opts, days})
}
