package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Faster key.Binding
	Slower key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Faster: key.NewBinding(
			key.WithKeys("up", "k", "+", "="),
			key.WithHelp("↑/+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("↓/-", "slower"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Faster, k.Slower, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Faster, k.Slower}, {k.Help, k.Quit}}
}
