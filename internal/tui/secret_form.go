package tui

import (
	"strings"

	"github.com/MKhiriev/go-secret-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldTitle = iota
	fieldUsername
	fieldPassword
	fieldEmail
	fieldWebsite
	fieldNote
)

var secretFieldLabels = []string{"Title", "Username", "Password", "Email", "Website", "Note"}

// secretForm edits the mutable fields of a secret. It is embedded in the
// dashboard and does not talk to the backend itself.
type secretForm struct {
	form       inputGroup
	editID     models.SecretID
	submitting bool
	generating bool
	errMsg     string
}

func newSecretForm() *secretForm {
	return &secretForm{
		form: newInputGroup(
			newTextInput("title", 128, false),
			newTextInput("username", 128, false),
			newTextInput("password", 256, false),
			newTextInput("email", 254, false),
			newTextInput("website", 256, false),
			newTextInput("note", 1024, false),
		),
	}
}

// startCreate clears the form for a new secret.
func (f *secretForm) startCreate() {
	f.form.reset()
	f.editID = ""
	f.submitting = false
	f.generating = false
	f.errMsg = ""
}

// startEdit fills the form from secret.
func (f *secretForm) startEdit(secret models.Secret) {
	f.startCreate()
	f.editID = secret.ID
	f.form.set(fieldTitle, secret.Title)
	f.form.set(fieldUsername, secret.Username)
	f.form.set(fieldPassword, secret.Password)
	f.form.set(fieldEmail, secret.Email)
	f.form.set(fieldWebsite, secret.Website)
	f.form.set(fieldNote, secret.Note)
}

func (f *secretForm) editing() bool {
	return f.editID != ""
}

func (f *secretForm) fields() models.SecretFields {
	return models.SecretFields{
		Title:    strings.TrimSpace(f.form.value(fieldTitle)),
		Username: f.form.value(fieldUsername),
		Password: f.form.value(fieldPassword),
		Email:    strings.TrimSpace(f.form.value(fieldEmail)),
		Website:  strings.TrimSpace(f.form.value(fieldWebsite)),
		Note:     f.form.value(fieldNote),
	}
}

func (f *secretForm) setPassword(password string) {
	f.form.set(fieldPassword, password)
}

func (f *secretForm) update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.nextField):
			f.form.next()
			return nil
		case key.Matches(keyMsg, keys.prevField):
			f.form.prev()
			return nil
		}
	}
	return f.form.update(msg)
}

func (f *secretForm) view() string {
	var b strings.Builder
	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼────────────────────────────────────────────\n")
	for i, label := range secretFieldLabels {
		b.WriteString(padRight(label, 10))
		b.WriteString("│ [")
		b.WriteString(f.form.inputs[i].View())
		b.WriteString("]\n")
	}

	switch {
	case f.submitting:
		b.WriteString("\n[Saving...]\n")
	case f.generating:
		b.WriteString("\n[Generating password...]\n")
	default:
		b.WriteString("\n[Save]\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		renderBanners(&b, f.errMsg, "", "")
	}

	return strings.TrimRight(b.String(), "\n")
}
