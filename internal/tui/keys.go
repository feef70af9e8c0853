package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Tab    key.Binding
	Shake  key.Binding
	Open   key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
	Escape key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
	Tab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "jar/gallery")),
	Shake:  key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "shake jar")),
	Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open note")),
	Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new note")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Shake, k.Reset, k.Tab, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Shake, k.Reset},
		{k.Tab, k.Left, k.Right, k.Up, k.Down},
		{k.Open, k.Escape},
		{k.Help, k.Quit},
	}
}
