package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-secret-keeper/internal/app"
	"github.com/MKhiriev/go-secret-keeper/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	password string
	err      error

	gotLength  int
	gotSpecial bool
}

func (s *stubGenerator) Generate(_ context.Context, length int, includeSpecial bool) (string, error) {
	s.gotLength, s.gotSpecial = length, includeSpecial
	return s.password, s.err
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestGeneratorModel_Generate(t *testing.T) {
	gen := &stubGenerator{password: "Abc!23xyz"}
	m := NewGeneratorModel(context.Background(), gen)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(runeKey("s"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	m.Update(cmd())

	assert.Equal(t, service.DefaultPasswordLength+1, gen.gotLength)
	assert.False(t, gen.gotSpecial)
	assert.Equal(t, "Abc!23xyz", m.password)
	assert.Contains(t, m.View(), "Abc!23xyz")
}

func TestGeneratorModel_LengthClamped(t *testing.T) {
	m := NewGeneratorModel(context.Background(), &stubGenerator{})

	for range 100 {
		m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
	assert.Equal(t, service.MinPasswordLength, m.length)

	for range 100 {
		m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, service.MaxPasswordLength, m.length)
}

func TestGeneratorModel_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "busy", err: service.ErrGeneratorBusy, want: app.MsgGeneratorBusy},
		{name: "rate limited", err: &service.RejectedError{Message: app.MsgGeneratorRateLimited, Err: service.ErrRateLimited}, want: app.MsgGeneratorRateLimited},
		{name: "other", err: errors.New("x"), want: app.MsgUnexpectedError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewGeneratorModel(context.Background(), &stubGenerator{err: tt.err})

			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			m.Update(cmd())

			assert.Equal(t, tt.want, m.errMsg)
			assert.False(t, m.busy)
		})
	}
}

func TestGeneratorModel_Copy(t *testing.T) {
	var copied string
	restore := clipboardWrite
	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWrite = restore })

	m := NewGeneratorModel(context.Background(), &stubGenerator{})
	_, cmd := m.Update(runeKey("c"))
	assert.Nil(t, cmd, "nothing to copy yet")

	m.Update(generatedMsg{password: "p4ss"})
	_, cmd = m.Update(runeKey("c"))
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, "p4ss", copied)
	assert.Equal(t, "Password copied to clipboard", m.status)
}

func TestGeneratorModel_EscReturnsToDashboard(t *testing.T) {
	m := NewGeneratorModel(context.Background(), &stubGenerator{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageDashboard}, cmd())
}
