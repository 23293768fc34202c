package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevYear  key.Binding
	NextYear  key.Binding
	Palette   key.Binding
	Legend    key.Binding
	Locale    key.Binding
	View      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevYear:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev year")),
		NextYear:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next year")),
		Palette:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "palette")),
		Legend:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "legend")),
		Locale:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "locale")),
		View:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "view")),
		PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevYear, k.NextYear, k.View, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevYear, k.NextYear, k.PrevMonth, k.NextMonth},
		{k.Palette, k.Legend, k.Locale, k.View},
		{k.Help, k.Quit},
	}
}
