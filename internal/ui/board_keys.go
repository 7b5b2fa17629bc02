package ui

import "github.com/charmbracelet/bubbles/key"

// BoardKeys contains the keyboard shortcuts of the board
type BoardKeys struct {
	CyclePriority key.Binding
	Down          key.Binding
	Help          key.Binding
	Left          key.Binding
	MoveLeft      key.Binding
	MoveRight     key.Binding
	Quit          key.Binding
	Refresh       key.Binding
	Right         key.Binding
	Up            key.Binding
}

// NewBoardKeys creates the default board key bindings
func NewBoardKeys() BoardKeys {
	return BoardKeys{
		CyclePriority: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle priority")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next card")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Left:          key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous column")),
		MoveLeft:      key.NewBinding(key.WithKeys("H", "shift+left", "<"), key.WithHelp("H/<", "move card left")),
		MoveRight:     key.NewBinding(key.WithKeys("L", "shift+right", ">"), key.WithHelp("L/>", "move card right")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Refresh:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Right:         key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous card")),
	}
}

// ShortHelp implements help.KeyMap
func (k BoardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.MoveLeft, k.MoveRight, k.CyclePriority, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k BoardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.MoveLeft, k.MoveRight, k.CyclePriority},
		{k.Refresh, k.Help, k.Quit},
	}
}
