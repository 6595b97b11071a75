package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Increment key.Binding
	Create    key.Binding
	Up        key.Binding
	Down      key.Binding
	Remove    key.Binding
	Help      key.Binding
	Quit      key.Binding
	Submit    key.Binding
	Cancel    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Increment: key.NewBinding(key.WithKeys("+", " "), key.WithHelp("+/space", "click count")),
		Create:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "create")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Remove:    key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d/x", "eliminar")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add task")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// shortHelp lists the bindings shown in the footer.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Increment, k.Create, k.Remove, k.Help, k.Quit}
}

// fullHelp lists every binding active outside the create prompt.
func (k keyMap) fullHelp() []key.Binding {
	return []key.Binding{k.Increment, k.Create, k.Up, k.Down, k.Remove, k.Help, k.Quit}
}

// promptHelp lists the bindings active while the create prompt is open.
func (k keyMap) promptHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}
