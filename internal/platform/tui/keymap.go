package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Take       key.Binding
	GiveUp     key.Binding
	Restart    key.Binding
	Difficulty key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Take, k.GiveUp, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Take, k.GiveUp},
		{k.Restart, k.Difficulty},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
// Digits are never bound; they go to the amount input.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Take: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("0-9 enter", "take pebbles"),
		),
		GiveUp: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "give up turn"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch difficulty and restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc", "q"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}
