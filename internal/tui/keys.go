package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings shared by pages with form-like navigation.
type keyMap struct {
	back      key.Binding
	submit    key.Binding
	nextField key.Binding
	prevField key.Binding
	shorter   key.Binding
	longer    key.Binding
	special   key.Binding
	copy      key.Binding
}

var keys = keyMap{
	back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	nextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	prevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	shorter:   key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←", "shorter")),
	longer:    key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→", "longer")),
	special:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "special symbols")),
	copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
}
