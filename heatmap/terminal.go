package heatmap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stsysd/calheat/palette"
	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/view"
)

const (
	termCell  = "■"
	termBlank = " "
)

var (
	termTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	termLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
)

// RenderTerminal draws cfg as colored blocks for a terminal. Each cell is one
// block followed by a space; rows are weekdays for yearly and monthly views.
func RenderTerminal(cfg view.ViewConfig) (string, error) {
	if len(cfg.Days) == 0 {
		return "", nil
	}
	cells, cols, rows := place(cfg)
	labels := cfg.Labels()
	if len(labels.Weekdays) < 7 {
		labels.Weekdays = view.DefaultI18n().Weekdays
	}

	blocks := make([][]string, rows)
	for r := range blocks {
		blocks[r] = make([]string, cols)
		for c := range blocks[r] {
			blocks[r][c] = termBlank
		}
	}
	for _, c := range cells {
		bucket, err := palette.Classify(float64(c.day.Count), cfg.Palette)
		if err != nil {
			return "", fmt.Errorf("classify %s: %w", c.day.Date.Format("2006-01-02"), err)
		}
		fill := fillFor(bucket, cfg.Palette.Index(float64(c.day.Count)))
		blocks[c.row][c.col] = lipgloss.NewStyle().Foreground(lipgloss.Color(fill)).Render(termCell)
	}

	var sb strings.Builder
	sb.WriteString(termTitleStyle.Render(terminalTitle(cfg)))
	sb.WriteString("\n")

	gutter := 0
	if cfg.Period.Kind != series.Weekly {
		for _, wd := range labels.Weekdays {
			gutter = max(gutter, lipgloss.Width(wd))
		}
		gutter++
	}

	if cfg.Period.Kind == series.Weekly {
		var header []string
		for _, c := range cells {
			wd := labels.Weekdays[weekdayRow(c.day.Date)%len(labels.Weekdays)]
			header = append(header, termLabelStyle.Render(firstRune(wd)))
		}
		sb.WriteString(strings.Join(header, " "))
		sb.WriteString("\n")
	}

	for r := range rows {
		if gutter > 0 {
			name := ""
			if r%2 == 0 && r < len(labels.Weekdays) {
				name = labels.Weekdays[r]
			}
			sb.WriteString(termLabelStyle.Width(gutter).Render(name))
		}
		sb.WriteString(strings.Join(blocks[r], " "))
		sb.WriteString("\n")
	}

	if cfg.LegendVisible {
		legend := make([]string, len(cfg.Palette))
		for i, b := range cfg.Palette {
			legend[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(fillFor(b, i))).Render(termCell)
		}
		line := termLabelStyle.Render(labels.Less) + " " + strings.Join(legend, " ") + " " + termLabelStyle.Render(labels.More)
		if cfg.Presentation.LegendDirection == view.LegendRight {
			width := gutter + max(cols*2-1, 0)
			line = lipgloss.PlaceHorizontal(max(width, lipgloss.Width(line)), lipgloss.Right, line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func terminalTitle(cfg view.ViewConfig) string {
	start := cfg.Start()
	switch cfg.Period.Kind {
	case series.Yearly:
		return fmt.Sprintf("%d", start.Year())
	case series.Monthly:
		return fmt.Sprintf("%s %d", MonthName(cfg.Locale, start.Month(), false), start.Year())
	default:
		end := cfg.Days[len(cfg.Days)-1].Date
		return fmt.Sprintf("%s %d - %s %d", MonthName(cfg.Locale, start.Month(), true), start.Day(),
			MonthName(cfg.Locale, end.Month(), true), end.Day())
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return " "
}
