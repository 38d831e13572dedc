package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the [key.Binding]s of every view. Each view renders only its own subset.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	publish key.Binding
	confirm key.Binding
	cancel  key.Binding
	review  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		publish: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create playlist")),
		confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "publish")),
		cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "back to songs")),
		review:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "review songs")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) songListHelp() []key.Binding {
	return []key.Binding{k.publish, k.up, k.down, k.quit}
}

func (k keyMap) confirmHelp() []key.Binding {
	return []key.Binding{k.confirm, k.cancel, k.quit}
}

func (k keyMap) resultHelp() []key.Binding {
	return []key.Binding{k.review, k.quit}
}
