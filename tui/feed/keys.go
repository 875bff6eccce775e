package feed

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit         key.Binding
	Refresh      key.Binding
	Up           key.Binding
	Down         key.Binding
	Heart        key.Binding
	Ripple       key.Binding // c: ripple on the selected drop
	Delete       key.Binding // d: delete own drop
	DeleteRipple key.Binding // x: delete own newest ripple on the selected drop
	Submit       key.Binding
	Cancel       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Heart: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "heart"),
		),
		Ripple: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "ripple"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete drop"),
		),
		DeleteRipple: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete ripple"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
