package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the status view.
type KeyMap struct {
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Reload: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "reload"),
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

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "r reload  ? help  q quit"
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"r", "Reload from the data directory"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
}
