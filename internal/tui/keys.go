package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Refresh     key.Binding
	Filters     key.Binding
	Export      key.Binding
	OrderBy     key.Binding
	Granularity key.Binding
	More        key.Binding
	Less        key.Binding
	Tab1        key.Binding
	Tab2        key.Binding
	Tab3        key.Binding
	Tab4        key.Binding
	Tab5        key.Binding
	Tab6        key.Binding
	Tab7        key.Binding
	Tab8        key.Binding
	Tab9        key.Binding
	Tab0        key.Binding
	Tab         key.Binding
	Help        key.Binding
	Enter       key.Binding
	Back        key.Binding
	Up          key.Binding
	Down        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Filters: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filters"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	OrderBy: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "order by"),
	),
	Granularity: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "granularity"),
	),
	More: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "more rows"),
	),
	Less: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "fewer rows"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "home"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "rankings"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "trends"),
	),
	Tab4: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "categories"),
	),
	Tab5: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "cross-device"),
	),
	Tab6: key.NewBinding(
		key.WithKeys("6"),
		key.WithHelp("6", "work-life"),
	),
	Tab7: key.NewBinding(
		key.WithKeys("7"),
		key.WithHelp("7", "allocation"),
	),
	Tab8: key.NewBinding(
		key.WithKeys("8"),
		key.WithHelp("8", "profile"),
	),
	Tab9: key.NewBinding(
		key.WithKeys("9"),
		key.WithHelp("9", "ecosystem"),
	),
	Tab0: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "devices"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// tabKeys maps each view to the binding that selects it.
var tabKeys = []key.Binding{
	keys.Tab1, keys.Tab2, keys.Tab3, keys.Tab4, keys.Tab5,
	keys.Tab6, keys.Tab7, keys.Tab8, keys.Tab9, keys.Tab0,
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Refresh, k.Filters, k.Export, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Refresh, k.Filters, k.Export},
		{k.OrderBy, k.More, k.Less, k.Granularity},
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5},
		{k.Tab6, k.Tab7, k.Tab8, k.Tab9, k.Tab0},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}
