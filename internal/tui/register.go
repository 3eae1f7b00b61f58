package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-secret-keeper/internal/service"
	"github.com/MKhiriev/go-secret-keeper/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RegisterModel is the Bubble Tea model for the registration screen. It
// renders name, email, password and confirmation inputs. A successful
// registration logs the user in and opens the dashboard.
type RegisterModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	form       inputGroup
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *RegisterModel {
	return &RegisterModel{
		ctx:  ctx,
		auth: auth,
		form: newInputGroup(
			newTextInput("name", 64, false),
			newTextInput("email", 254, false),
			newTextInput("password", 256, true),
			newTextInput("repeat password", 256, true),
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authDoneMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = errorText(result.err)
			return m, nil
		}
		m.errMsg = ""
		m.form.reset()
		return m, func() tea.Msg { return NavigateTo{Page: pageDashboard} }
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.back):
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: pageEntry} }
		case key.Matches(keyMsg, keys.nextField):
			m.form.next()
			return m, nil
		case key.Matches(keyMsg, keys.prevField):
			m.form.prev()
			return m, nil
		case key.Matches(keyMsg, keys.submit):
			if m.submitting {
				return m, nil
			}

			reg := models.Registration{
				Name:            strings.TrimSpace(m.form.value(0)),
				Email:           strings.TrimSpace(m.form.value(1)),
				Password:        m.form.value(2),
				ConfirmPassword: m.form.value(3),
			}
			if reg.Name == "" || reg.Email == "" || reg.Password == "" {
				m.errMsg = "Name, email and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(reg)
		}
	}

	return m, m.form.update(msg)
}

func (m *RegisterModel) View() string {
	labels := []string{"Name", "Email", "Password", "Repeat"}

	var b strings.Builder
	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼────────────────────────────────────────────\n")
	for i, label := range labels {
		b.WriteString(padRight(label, 10))
		b.WriteString("│ [")
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Registering...]\n")
	} else {
		b.WriteString("\n[Register]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		renderBanners(&b, m.errMsg, "", "")
	}

	return renderPage("REGISTER", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

// cmdRegister sends the registration. A password mismatch is reported by
// the auth service without a network call.
func (m *RegisterModel) cmdRegister(reg models.Registration) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		return authDoneMsg{err: auth.Register(ctx, reg)}
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
