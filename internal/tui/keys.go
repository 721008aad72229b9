package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NewGame key.Binding
	Hit     key.Binding
	Stand   key.Binding
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NewGame: key.NewBinding(
			key.WithKeys("n", "enter"),
			key.WithHelp("n", "new game"),
		),
		Hit: key.NewBinding(
			key.WithKeys("h", " "),
			key.WithHelp("h", "hit"),
		),
		Stand: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stand"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll log"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll log"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewGame, k.Hit, k.Stand, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewGame, k.Hit, k.Stand},
		{k.Up, k.Down, k.Quit},
	}
}
