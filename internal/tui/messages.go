package tui

import (
	"github.com/MKhiriev/go-secret-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Page names a screen registered in the [RootModel].
type Page string

const (
	pageEntry     Page = "entry"
	pageLogin     Page = "login"
	pageRegister  Page = "register"
	pageDashboard Page = "dashboard"
	pageGenerator Page = "generator"
)

// NavigateTo asks the RootModel to switch pages. Payload, if set, is
// delivered to the new page right after its Init.
type NavigateTo struct {
	Page    Page
	Payload tea.Msg
}

// sessionExpiredNotice is delivered to the entry page after the backend
// rejected the session credential.
type sessionExpiredNotice struct{}

type authDoneMsg struct {
	err error
}

type listLoadedMsg struct {
	err error
}

type retryingMsg struct {
	notice models.RetryNotice
}

type secretSavedMsg struct {
	created bool
	err     error
}

type secretDeletedMsg struct {
	err error
}

type generatedMsg struct {
	password string
	err      error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
