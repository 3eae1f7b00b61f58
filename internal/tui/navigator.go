package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramNavigator delivers messages from service goroutines to the running
// Bubble Tea program. It implements service.Navigator and may be created
// before the program exists; messages sent while no program is attached are
// dropped.
type ProgramNavigator struct {
	program atomic.Pointer[tea.Program]
}

func NewProgramNavigator() *ProgramNavigator {
	return &ProgramNavigator{}
}

// NavigateToEntry shows the entry page with the session expired notice. It
// does not wait for the program to pick the message up.
func (n *ProgramNavigator) NavigateToEntry() {
	n.Post(NavigateTo{Page: pageEntry, Payload: sessionExpiredNotice{}})
}

// Post is Send without waiting. Callers that may be waited on from Update,
// like background workers, must use Post.
func (n *ProgramNavigator) Post(msg tea.Msg) {
	go n.Send(msg)
}

// Send forwards msg to the attached program. It must not be called from
// Update or View.
func (n *ProgramNavigator) Send(msg tea.Msg) {
	if p := n.program.Load(); p != nil {
		p.Send(msg)
	}
}

func (n *ProgramNavigator) attach(p *tea.Program) {
	n.program.Store(p)
}
