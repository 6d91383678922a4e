package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Next     key.Binding
	Prev     key.Binding
	Today    key.Binding
	Day      key.Binding
	Week     key.Binding
	Month    key.Binding
	Year     key.Binding
	List     key.Binding
	Field    key.Binding
	Business key.Binding
	Weekends key.Binding
	Cycle    key.Binding
	Pick     key.Binding
	Drop     key.Binding
	Cancel   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Next:     key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next")),
		Prev:     key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Day:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day")),
		Week:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
		Month:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		Year:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year")),
		List:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "list")),
		Field:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "date field")),
		Business: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "business hours")),
		Weekends: key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "weekends")),
		Cycle:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next ticket")),
		Pick:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pick up")),
		Drop:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Field, k.Pick, k.Drop, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Cycle},
		{k.Next, k.Prev, k.Today},
		{k.Day, k.Week, k.Month, k.Year, k.List},
		{k.Field, k.Business, k.Weekends},
		{k.Pick, k.Drop, k.Cancel, k.Help, k.Quit},
	}
}
