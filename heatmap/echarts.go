package heatmap

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/stsysd/calheat/palette"
	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/view"
)

// NewCalendarChart builds an ECharts calendar heatmap for cfg. Every item is
// named after the bucket the classifier picks for it and painted with that
// bucket's fill.
func NewCalendarChart(cfg view.ViewConfig) (*charts.HeatMap, error) {
	if len(cfg.Days) == 0 {
		return nil, fmt.Errorf("view %s has no days", cfg.Period)
	}

	items := make([]opts.HeatMapData, 0, len(cfg.Days))
	for _, d := range cfg.Days {
		bucket, err := palette.Classify(float64(d.Count), cfg.Palette)
		if err != nil {
			return nil, fmt.Errorf("classify %s: %w", d.Date.Format(time.DateOnly), err)
		}
		items = append(items, opts.HeatMapData{
			Name:  bucket.Label,
			Value: [3]interface{}{d.Date.Format(time.DateOnly), d.Count, cfg.Palette.Index(float64(d.Count))},
		})
	}

	labels := cfg.Labels()
	visualMap := opts.VisualMap{
		Type:      "piecewise",
		Show:      opts.Bool(cfg.LegendVisible),
		Dimension: bucketDimension,
		Pieces:    bucketPieces(cfg.Palette),
		Text:      []string{labels.More, labels.Less},
		Orient:    "horizontal",
		Top:       "10",
	}
	if cfg.Presentation.LegendDirection == view.LegendLeft {
		visualMap.Left = "0"
	} else {
		visualMap.Right = "0"
	}

	title := terminalTitle(cfg)
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     calendarWidth(cfg),
			Height:    "240px",
			Theme:     types.ThemeVintage,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithVisualMapOpts(visualMap),
	)

	start, end := cfg.Period.Bounds()
	calendarOpts := &opts.Calendar{
		Top:      "80",
		Left:     "60",
		Right:    "30",
		CellSize: strconv.Itoa(cfg.CellSize),
		ItemStyle: &opts.ItemStyle{
			BorderWidth: 0.5,
		},
		Orient: "horizontal",
	}
	calendarOpts.Range = append(calendarOpts.Range, start.Format(time.DateOnly), end.Format(time.DateOnly))

	hm.AddCalendar(calendarOpts).AddSeries(cfg.Period.Kind.String(), items, charts.WithCoordinateSystem("calendar"))
	return hm, nil
}

// bucketDimension is the item dimension holding the classified bucket index.
const bucketDimension = "2"

// bucketPieces maps bucket index i onto the half-open range [i, i+1) so that
// every item takes exactly the fill of the bucket it was classified into.
func bucketPieces(p palette.Palette) []opts.Piece {
	pieces := make([]opts.Piece, len(p))
	for i, b := range p {
		pieces[i] = opts.Piece{
			Gte:   float32(i),
			Lt:    float32(i + 1),
			Color: fillFor(b, i),
		}
	}
	return pieces
}

func calendarWidth(cfg view.ViewConfig) string {
	if cfg.Period.Kind == series.Yearly {
		return "1000px"
	}
	return "400px"
}

// RenderCalendarHTML writes a standalone HTML page with one chart per view.
func RenderCalendarHTML(w io.Writer, configs ...view.ViewConfig) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	for _, cfg := range configs {
		hm, err := NewCalendarChart(cfg)
		if err != nil {
			return err
		}
		page.AddCharts(hm)
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering calendar page: %w", err)
	}
	return nil
}

// RenderSetHTML writes the yearly, monthly and weekly views of set on one page.
func RenderSetHTML(w io.Writer, set view.Set) error {
	configs := make([]view.ViewConfig, 0, len(set.Monthly)+2)
	configs = append(configs, set.Yearly)
	configs = append(configs, set.Monthly...)
	configs = append(configs, set.Weekly)
	return RenderCalendarHTML(w, configs...)
}
