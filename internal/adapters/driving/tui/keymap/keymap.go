// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings of the rank progress view.
type KeyMap struct {
	// Cancel stops the running search; results so far are kept.
	Cancel key.Binding

	// Quit exits once the search has finished.
	Quit key.Binding

	// Interrupt cancels a running search and exits when it stops.
	Interrupt key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("esc", "c"),
			key.WithHelp("esc/c", "cancel search"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "enter"),
			key.WithHelp("q", "quit"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel and quit"),
		),
	}
}

// RunningHelp returns the bindings shown while a search runs.
func (k *KeyMap) RunningHelp() []key.Binding {
	return []key.Binding{k.Cancel, k.Interrupt}
}

// DoneHelp returns the bindings shown after the search stops.
func (k *KeyMap) DoneHelp() []key.Binding {
	return []key.Binding{k.Quit}
}
