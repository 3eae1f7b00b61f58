// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-secret-keeper/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// GeneratorModel asks the backend for random passwords and copies them to
// the clipboard. Requests are throttled by the password generator service.
type GeneratorModel struct {
	ctx       context.Context
	generator service.PasswordGenerator

	length         int
	includeSpecial bool
	password       string
	busy           bool
	status         string
	errMsg         string
}

func NewGeneratorModel(ctx context.Context, generator service.PasswordGenerator) *GeneratorModel {
	return &GeneratorModel{
		ctx:            ctx,
		generator:      generator,
		length:         service.DefaultPasswordLength,
		includeSpecial: true,
	}
}

func (m *GeneratorModel) Init() tea.Cmd {
	m.status = ""
	m.errMsg = ""
	return nil
}

func (m *GeneratorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.password = msg.password
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "Password copied to clipboard"
		return m, clearStatusAfter(statusTTL)
	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.back):
		return m, func() tea.Msg { return NavigateTo{Page: pageDashboard} }
	case key.Matches(keyMsg, keys.shorter):
		m.length = service.ClampPasswordLength(m.length - 1)
	case key.Matches(keyMsg, keys.longer):
		m.length = service.ClampPasswordLength(m.length + 1)
	case key.Matches(keyMsg, keys.special):
		m.includeSpecial = !m.includeSpecial
	case key.Matches(keyMsg, keys.submit):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.cmdGenerate()
	case key.Matches(keyMsg, keys.copy):
		if m.password == "" {
			return m, nil
		}
		return m, cmdCopy(m.password)
	}

	return m, nil
}

func (m *GeneratorModel) View() string {
	var b strings.Builder
	renderBanners(&b, m.errMsg, "", m.status)

	special := "no"
	if m.includeSpecial {
		special = "yes"
	}

	b.WriteString(fmt.Sprintf("Length    │ %d (%d-%d)\n", m.length, service.MinPasswordLength, service.MaxPasswordLength))
	b.WriteString(fmt.Sprintf("Special   │ %s\n", special))

	switch {
	case m.busy:
		b.WriteString("Password  │ generating...\n")
	case m.password != "":
		b.WriteString("Password  │ ")
		b.WriteString(selectStyle.Render(m.password))
		b.WriteString("\n")
	default:
		b.WriteString("Password  │ -\n")
	}

	return renderPage("PASSWORD GENERATOR", strings.TrimRight(b.String(), "\n"), "←/→: length │ s: special symbols │ enter: generate │ c: copy │ esc: back")
}

func (m *GeneratorModel) cmdGenerate() tea.Cmd {
	ctx, generator := m.ctx, m.generator
	length, special := m.length, m.includeSpecial

	return func() tea.Msg {
		password, err := generator.Generate(ctx, length, special)
		return generatedMsg{password: password, err: err}
	}
}
