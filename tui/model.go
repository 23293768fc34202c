// Package tui is an interactive terminal front end over a state.Store.
package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stsysd/calheat/heatmap"
	"github.com/stsysd/calheat/model"
	"github.com/stsysd/calheat/series"
	"github.com/stsysd/calheat/state"
	"github.com/stsysd/calheat/view"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
)

var kindOrder = []series.Kind{series.Yearly, series.Monthly, series.Weekly}

// Model renders the view set of a Store and maps key presses onto selector
// changes. The store pushes every re-derived set back through a subscription.
type Model struct {
	store       *state.Store
	keys        keyMap
	help        help.Model
	views       view.Set
	kind        series.Kind
	month       time.Month
	err         error
	width       int
	unsubscribe func()
}

// New creates a Model showing the yearly view of store.
func New(store *state.Store) *Model {
	m := &Model{
		store: store,
		keys:  defaultKeyMap(),
		help:  help.New(),
		views: store.Views(),
		kind:  series.Yearly,
		month: time.January,
	}
	m.unsubscribe = store.Subscribe(func(set view.Set) {
		m.views = set
	})
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.err = nil
		sel := m.store.Selection()
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.unsubscribe()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.PrevYear):
			if sel.Year > model.FirstYear {
				m.err = m.store.SetYear(sel.Year - 1)
			}
		case key.Matches(msg, m.keys.NextYear):
			if sel.Year < model.FirstYear+model.YearCount-1 {
				m.err = m.store.SetYear(sel.Year + 1)
			}
		case key.Matches(msg, m.keys.Palette):
			m.err = m.store.SetPalette(next(m.store.Options().Palettes, sel.Palette))
		case key.Matches(msg, m.keys.Legend):
			m.err = m.store.SetLegendVisible(!sel.LegendVisible)
		case key.Matches(msg, m.keys.Locale):
			m.err = m.store.SetLocale(next(m.store.Options().Locales, sel.Locale))
		case key.Matches(msg, m.keys.View):
			m.kind = next(kindOrder, m.kind)
		case key.Matches(msg, m.keys.PrevMonth):
			m.month = (m.month+10)%12 + 1
		case key.Matches(msg, m.keys.NextMonth):
			m.month = m.month%12 + 1
		}
	}
	return m, nil
}

// next returns the element after cur in values, wrapping around.
func next[T comparable](values []T, cur T) T {
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}

// Current returns the view on screen.
func (m *Model) Current() view.ViewConfig {
	switch m.kind {
	case series.Monthly:
		if int(m.month) <= len(m.views.Monthly) {
			return m.views.Monthly[m.month-1]
		}
		return view.ViewConfig{}
	case series.Weekly:
		return m.views.Weekly
	default:
		return m.views.Yearly
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sel := m.store.Selection()
	legend := "on"
	if !sel.LegendVisible {
		legend = "off"
	}

	var sb strings.Builder
	sb.WriteString(statusStyle.Render(fmt.Sprintf("calheat %d", sel.Year)))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %s | palette %s | legend %s | %s", m.kind, sel.Palette, legend, sel.Locale)))
	sb.WriteString("\n\n")

	out, err := heatmap.RenderTerminal(m.Current())
	if err != nil {
		sb.WriteString(errorStyle.Render(err.Error()))
	} else {
		sb.WriteString(out)
	}
	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.err.Error()))
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}
