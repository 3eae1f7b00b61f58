package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newTextInput(placeholder string, charLimit int, masked bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = charLimit
	in.Width = 40
	if masked {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
	}
	return in
}

// inputGroup is an ordered set of text inputs with one focused at a time.
type inputGroup struct {
	inputs []textinput.Model
	focus  int
}

func newInputGroup(inputs ...textinput.Model) inputGroup {
	g := inputGroup{inputs: inputs}
	if len(g.inputs) > 0 {
		g.inputs[0].Focus()
	}
	return g
}

func (g *inputGroup) next() {
	g.inputs[g.focus].Blur()
	g.focus = (g.focus + 1) % len(g.inputs)
	g.inputs[g.focus].Focus()
}

func (g *inputGroup) prev() {
	g.inputs[g.focus].Blur()
	g.focus = (g.focus - 1 + len(g.inputs)) % len(g.inputs)
	g.inputs[g.focus].Focus()
}

// update forwards msg to the focused input.
func (g *inputGroup) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	g.inputs[g.focus], cmd = g.inputs[g.focus].Update(msg)
	return cmd
}

func (g *inputGroup) value(i int) string {
	return g.inputs[i].Value()
}

func (g *inputGroup) set(i int, v string) {
	g.inputs[i].SetValue(v)
}

// reset clears every input and focuses the first one.
func (g *inputGroup) reset() {
	for i := range g.inputs {
		g.inputs[i].SetValue("")
		g.inputs[i].Blur()
	}
	g.focus = 0
	g.inputs[0].Focus()
}
