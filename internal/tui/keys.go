package tui

import "github.com/charmbracelet/bubbles/key"

type Keymap struct {
	Submit     key.Binding
	SwitchPane key.Binding
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Copy       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Back       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func DefaultKeymap() Keymap {
	return Keymap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		SwitchPane: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch pane")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Confirm:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		Cancel:     key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
	}
}
