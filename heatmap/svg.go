package heatmap

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/stsysd/calheat/palette"
	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/view"
)

// grid is the pixel geometry of the cell area.
type grid struct {
	cells      []placedDay
	cols, rows int
	left, top  int
	step, size int
}

func (g grid) x(col int) int { return g.left + col*g.step }
func (g grid) y(row int) int { return g.top + row*g.step }

type label struct {
	x, y   int
	text   string
	anchor string
}

// headerFunc returns the layout-specific labels (month names, weekday names).
type headerFunc func(g grid, cfg view.ViewConfig, opts *Options) []label

func textWidth(s string, fontSize int) int {
	return utf8.RuneCountInString(s)*fontSize*6/10 + 4
}

// renderSVG draws cfg on a grid produced by place. Colors are resolved per
// cell at render time through the palette classifier.
func renderSVG(cfg view.ViewConfig, opts *Options, header headerFunc, sideLabels bool) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(cfg.Days) == 0 {
		return "", nil
	}

	cells, cols, rows := place(cfg)
	labels := cfg.Labels()
	pad := opts.CellPadding
	size := cfg.CellSize

	// compute dimensions
	titleHeight := 0
	if opts.Title != "" {
		titleHeight = opts.FontSize + 8 // title text + padding
	}
	headerHeight := opts.FontSize + 4
	gutter := 0
	if sideLabels {
		for _, wd := range labels.Weekdays {
			gutter = max(gutter, textWidth(wd, opts.FontSize))
		}
	}
	g := grid{
		cells: cells,
		cols:  cols,
		rows:  rows,
		left:  gutter + pad,
		top:   titleHeight + headerHeight + pad,
		step:  size + pad,
		size:  size,
	}
	gridRight := g.x(cols)
	gridBottom := g.y(rows)

	legendWidth, legendHeight := 0, 0
	if cfg.LegendVisible {
		legendWidth = textWidth(labels.Less, opts.FontSize) + len(cfg.Palette)*g.step + textWidth(labels.More, opts.FontSize) + 2*pad
		legendHeight = size + 2*pad
	}
	width := max(gridRight, legendWidth+pad) + pad
	height := gridBottom + legendHeight + pad

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg" data-type="%s" data-locale="%s">`+"\n",
		width, height, strings.ToUpper(cfg.Period.Kind.String()), html.EscapeString(cfg.Locale)))
	sb.WriteString(fmt.Sprintf(`  <style>.label{font-family:%s;font-size:%dpx;fill:#666}.title{font-family:%s;font-size:%dpx;fill:#333;font-weight:bold}`,
		opts.FontFamily, opts.FontSize, opts.FontFamily, opts.FontSize))
	if cfg.Clickable() {
		sb.WriteString(`rect[data-date]{cursor:pointer}`)
	}
	sb.WriteString("</style>\n")

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="title">%s</text>`+"\n",
			pad, opts.FontSize, html.EscapeString(opts.Title)))
	}

	for _, l := range header(g, cfg, opts) {
		writeLabel(&sb, l)
	}
	if sideLabels {
		// label every other row to keep the gutter readable
		for row := 0; row < rows && row < len(labels.Weekdays); row += 2 {
			writeLabel(&sb, label{
				x:    pad,
				y:    g.y(row) + size - 2,
				text: labels.Weekdays[row],
			})
		}
	}

	rx := cornerRadius(cfg.Presentation.DayStyle, size)
	for _, c := range cells {
		bucket, err := palette.Classify(float64(c.day.Count), cfg.Palette)
		if err != nil {
			return "", fmt.Errorf("classify %s: %w", c.day.Date.Format(time.DateOnly), err)
		}
		level := cfg.Palette.Index(float64(c.day.Count))
		key := c.day.Date.Format(time.DateOnly)

		// 各セルに矩形と、その中にtitle要素（ツールチップ）を追加
		sb.WriteString(fmt.Sprintf(`  <rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s" class="%s" data-date="%s" data-count="%d" data-level="%d">`+"\n",
			g.x(c.col), g.y(c.row), size, size, rx, fillFor(bucket, level), html.EscapeString(bucket.Label), key, c.day.Count, level))
		sb.WriteString(fmt.Sprintf(`    <title>%s</title>`+"\n", html.EscapeString(tooltipText(cfg, c.day))))
		sb.WriteString(`  </rect>` + "\n")
	}

	if cfg.LegendVisible {
		x := width - pad - legendWidth
		if cfg.Presentation.LegendDirection == view.LegendLeft {
			x = g.left
		}
		writeLegend(&sb, cfg, opts, x, gridBottom+pad, g)
	}

	sb.WriteString(`</svg>`)
	return sb.String(), nil
}

func writeLabel(sb *strings.Builder, l label) {
	anchor := ""
	if l.anchor != "" {
		anchor = fmt.Sprintf(` text-anchor="%s"`, l.anchor)
	}
	sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="label"%s>%s</text>`+"\n",
		l.x, l.y, anchor, html.EscapeString(l.text)))
}

func writeLegend(sb *strings.Builder, cfg view.ViewConfig, opts *Options, x, y int, g grid) {
	labels := cfg.Labels()
	textY := y + g.size - 2

	sb.WriteString(fmt.Sprintf(`  <g class="legend" data-direction="%s">`+"\n", cfg.Presentation.LegendDirection))
	sb.WriteString(fmt.Sprintf(`    <text x="%d" y="%d" class="label">%s</text>`+"\n", x, textY, html.EscapeString(labels.Less)))
	x += textWidth(labels.Less, opts.FontSize)
	for i, b := range cfg.Palette {
		sb.WriteString(fmt.Sprintf(`    <rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="%s"><title>%s</title></rect>`+"\n",
			x+i*g.step, y, g.size, g.size, fillFor(b, i), html.EscapeString(b.Label), html.EscapeString(bucketRange(b))))
	}
	x += len(cfg.Palette)*g.step + opts.CellPadding
	sb.WriteString(fmt.Sprintf(`    <text x="%d" y="%d" class="label">%s</text>`+"\n", x, textY, html.EscapeString(labels.More)))
	sb.WriteString("  </g>\n")
}

// fillFor returns the bucket color, falling back to the built-in palette for
// buckets that only carry a class name.
func fillFor(b palette.ColorBucket, level int) string {
	if b.Color != "" {
		return b.Color
	}
	colors := palette.Default().Colors()
	return colors[min(max(level, 0), len(colors)-1)]
}

func bucketRange(b palette.ColorBucket) string {
	bound := func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("[%s, %s)", bound(b.Min), bound(b.Max))
}

// cornerRadius converts a CSS border radius ("50%", "3px") into an rx value.
func cornerRadius(style *view.DayStyle, size int) int {
	if style == nil || style.BorderRadius == "" {
		return 0
	}
	r := strings.TrimSpace(style.BorderRadius)
	var rx int
	switch {
	case strings.HasSuffix(r, "%"):
		pct, err := strconv.ParseFloat(strings.TrimSuffix(r, "%"), 64)
		if err != nil {
			return 0
		}
		rx = int(float64(size) * pct / 100)
	case strings.HasSuffix(r, "px"):
		px, err := strconv.Atoi(strings.TrimSuffix(r, "px"))
		if err != nil {
			return 0
		}
		rx = px
	}
	return min(max(rx, 0), size/2)
}

// tooltipText formats "<count> <unit>s on <date>" when a tooltip is
// configured, and "<date>: <count>" otherwise.
func tooltipText(cfg view.ViewConfig, d series.DayRecord) string {
	tt := cfg.Presentation.Tooltip
	if tt == nil || !tt.Display {
		return fmt.Sprintf("%s: %d", d.Date.Format(time.DateOnly), d.Count)
	}

	labels := cfg.Labels()
	countText := strconv.Itoa(d.Count)
	if d.Count == 0 {
		countText = labels.NoData
	}
	unit := tt.Unit
	if unit != "" && d.Count != 1 {
		unit += "s"
	}
	dateFormat := tt.DateFormat
	if dateFormat == "" {
		dateFormat = "yyyy-MM-dd"
	}

	parts := []string{countText}
	if unit != "" {
		parts = append(parts, unit)
	}
	parts = append(parts, labels.On, formatDate(dateFormat, d.Date, cfg.Locale))
	return strings.Join(parts, " ")
}
