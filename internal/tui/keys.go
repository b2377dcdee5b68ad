package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard shortcuts
type keyMap struct {
	Home      key.Binding
	Customers key.Binding
	Events    key.Binding
	Courses   key.Binding
	Analytics key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Back      key.Binding
	Search    key.Binding
	Logout    key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Customers: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "customers"),
		),
		Events: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "events"),
		),
		Courses: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "courses"),
		),
		Analytics: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "analytics"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/expand"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
