package ui

import "github.com/charmbracelet/bubbles/key"

type browseKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	OpenNow  key.Binding
	Price    key.Binding
	Category key.Binding
	More     key.Binding
	Clear    key.Binding
	Detail   key.Binding
	Close    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.OpenNow, k.Price, k.Category, k.More, k.Detail, k.Help, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail, k.Close},
		{k.OpenNow, k.Price, k.Category, k.Clear},
		{k.More, k.Help, k.Quit},
	}
}

var browseKeys = browseKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	OpenNow: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open now"),
	),
	Price: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "price"),
	),
	Category: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "category"),
	),
	More: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "load more"),
	),
	Clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear filters"),
	),
	Detail: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "learn more"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
