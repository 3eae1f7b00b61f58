package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/app"
	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/internal/service"
	"github.com/MKhiriev/go-secret-keeper/internal/workers"
	"github.com/MKhiriev/go-secret-keeper/models"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type dashboardMode int

const (
	modeList dashboardMode = iota
	modeDetail
	modeForm
	modeConfirmDelete
)

// poster delivers a message to the running program without waiting.
type poster interface {
	Post(msg tea.Msg)
}

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// DashboardModel lists the user's secrets and hosts the create, edit and
// delete flows. Every visit gets a fresh synchronizer and background
// refresh; both are released by Leave.
type DashboardModel struct {
	ctx             context.Context
	services        *service.ClientServices
	poster          poster
	refreshInterval time.Duration
	logger          *logger.Logger

	sync    service.SecretsSynchronizer
	workers *workers.Workers

	secrets  []models.Secret
	idx      int
	mode     dashboardMode
	reveal   bool
	loading  bool
	retrying string
	status   string
	errMsg   string
	form     *secretForm
}

func NewDashboardModel(ctx context.Context, services *service.ClientServices, poster poster, refreshInterval time.Duration, log *logger.Logger) *DashboardModel {
	return &DashboardModel{
		ctx:             ctx,
		services:        services,
		poster:          poster,
		refreshInterval: refreshInterval,
		logger:          log,
		form:            newSecretForm(),
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	m.Leave()

	m.sync = m.services.NewSynchronizer(service.WithRetryHook(func(n models.RetryNotice) {
		m.poster.Post(retryingMsg{notice: n})
	}))
	m.workers = workers.NewWorkers(workers.NewRefreshWorker(m.sync, m.refreshInterval, func(err error) {
		m.poster.Post(listLoadedMsg{err: err})
	}, m.logger))
	m.workers.Start(m.ctx)

	m.secrets = nil
	m.idx = 0
	m.mode = modeList
	m.reveal = false
	m.loading = true
	m.retrying = ""
	m.status = ""
	m.errMsg = ""

	return m.cmdRefresh()
}

// Leave stops the background refresh and discards pending responses.
func (m *DashboardModel) Leave() {
	if m.workers != nil {
		m.workers.Stop()
		m.workers = nil
	}
	if m.sync != nil {
		m.sync.Close()
		m.sync = nil
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		m.loading = false
		m.retrying = ""
		switch {
		case msg.err == nil:
			m.errMsg = ""
			m.reload()
		case errors.Is(msg.err, service.ErrRefreshSuppressed):
			// the running fetch reports its own result
		case errors.Is(msg.err, service.ErrAuthExpired), errors.Is(msg.err, context.Canceled):
		default:
			m.errMsg = errorText(msg.err)
		}
		return m, nil
	case retryingMsg:
		m.retrying = fmt.Sprintf("%s (%d/%d, in %s)",
			app.MsgRateLimitedRetrying, msg.notice.Attempt, msg.notice.MaxAttempts, msg.notice.Delay.Round(time.Millisecond))
		return m, nil
	case secretSavedMsg:
		m.form.submitting = false
		if msg.err != nil && !errors.Is(msg.err, service.ErrCreatedNotRefreshed) {
			m.form.errMsg = errorText(msg.err)
			return m, nil
		}
		m.mode = modeList
		m.errMsg = ""
		m.retrying = ""
		if msg.err != nil {
			// the record exists on the backend; only the list is stale
			m.errMsg = errorText(msg.err)
		}
		m.reload()
		if msg.created {
			m.status = "Secret created"
			m.idx = max(len(m.secrets)-1, 0)
		} else {
			m.status = "Secret updated"
		}
		return m, clearStatusAfter(statusTTL)
	case secretDeletedMsg:
		m.mode = modeList
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = "Secret deleted"
		m.reload()
		return m, clearStatusAfter(statusTTL)
	case generatedMsg:
		m.form.generating = false
		if msg.err != nil {
			m.form.errMsg = errorText(msg.err)
			return m, nil
		}
		m.form.errMsg = ""
		m.form.setPassword(msg.password)
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
		if m.mode == modeForm {
			return m, m.form.update(msg)
		}
		return m, nil
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(keyMsg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(keyMsg)
	case modeDetail:
		return m.updateDetail(keyMsg)
	}
	return m.updateList(keyMsg)
}

func (m *DashboardModel) updateList(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "q":
		m.Leave()
		return m, tea.Quit
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.secrets)-1 {
			m.idx++
		}
	case "enter":
		if _, ok := m.current(); !ok {
			return m, nil
		}
		m.reveal = false
		m.mode = modeDetail
	case "n":
		m.form.startCreate()
		m.mode = modeForm
	case "e":
		return m.startEdit()
	case "d":
		if _, ok := m.current(); ok {
			m.mode = modeConfirmDelete
		}
	case "c":
		return m.copyPassword()
	case "r":
		m.loading = true
		m.errMsg = ""
		return m, m.cmdRefresh()
	case "g":
		return m, func() tea.Msg { return NavigateTo{Page: pageGenerator} }
	case "L":
		m.Leave()
		m.services.Auth.Logout(m.ctx)
		return m, func() tea.Msg { return NavigateTo{Page: pageEntry} }
	}

	return m, nil
}

func (m *DashboardModel) updateDetail(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.reveal = false
		m.mode = modeList
	case "p":
		m.reveal = !m.reveal
	case "c":
		return m.copyPassword()
	case "e":
		return m.startEdit()
	case "d":
		m.mode = modeConfirmDelete
	}
	return m, nil
}

func (m *DashboardModel) updateConfirmDelete(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "y":
		secret, ok := m.current()
		if !ok {
			m.mode = modeList
			return m, nil
		}
		return m, m.cmdDelete(secret.ID)
	case "n", "esc":
		m.mode = modeList
	}
	return m, nil
}

func (m *DashboardModel) updateForm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.mode = modeList
		return m, nil
	case "ctrl+g":
		if m.form.generating {
			return m, nil
		}
		m.form.generating = true
		return m, m.cmdGenerate()
	case "enter":
		if m.form.submitting {
			return m, nil
		}
		m.form.errMsg = ""
		m.form.submitting = true
		if m.form.editing() {
			return m, m.cmdUpdate(m.form.editID, m.form.fields())
		}
		return m, m.cmdCreate(m.form.fields())
	}

	return m, m.form.update(keyMsg)
}

func (m *DashboardModel) startEdit() (tea.Model, tea.Cmd) {
	secret, ok := m.current()
	if !ok {
		return m, nil
	}
	m.form.startEdit(secret)
	m.reveal = false
	m.mode = modeForm
	return m, nil
}

func (m *DashboardModel) copyPassword() (tea.Model, tea.Cmd) {
	secret, ok := m.current()
	if !ok || secret.Password == "" {
		m.status = "Nothing to copy"
		return m, clearStatusAfter(statusTTL)
	}
	return m, cmdCopy(secret.Password)
}

func (m *DashboardModel) reload() {
	if m.sync == nil {
		return
	}
	m.secrets = m.sync.Secrets()
	if m.idx >= len(m.secrets) {
		m.idx = len(m.secrets) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *DashboardModel) current() (models.Secret, bool) {
	if m.idx < 0 || m.idx >= len(m.secrets) {
		return models.Secret{}, false
	}
	return m.secrets[m.idx], true
}

func (m *DashboardModel) View() string {
	switch m.mode {
	case modeForm:
		title := "NEW SECRET"
		if m.form.editing() {
			title = "EDIT SECRET"
		}
		return renderPage(title, m.form.view(), "esc: back │ tab: next field │ ctrl+g: generate password │ enter: save")
	case modeDetail:
		return m.viewDetail()
	case modeConfirmDelete:
		secret, _ := m.current()
		return renderPage("DELETE SECRET", fmt.Sprintf("Delete %q?", secret.Title), "y: delete │ n: cancel")
	}

	var b strings.Builder
	renderBanners(&b, m.errMsg, m.retrying, m.status)

	hotKeys := "n: new │ enter: open │ e: edit │ d: delete │ c: copy │ r: refresh │ g: generator │ L: log out │ q: quit"

	if m.loading && len(m.secrets) == 0 {
		b.WriteString("Loading secrets...\n")
		return renderPage("SECRETS", strings.TrimRight(b.String(), "\n"), hotKeys)
	}

	if b.Len() > 0 {
		b.WriteString("\n")
	}
	if len(m.secrets) == 0 {
		b.WriteString("No secrets yet\n")
		return renderPage("SECRETS", strings.TrimRight(b.String(), "\n"), hotKeys)
	}

	b.WriteString("#    │ Title                    │ Username         │ Website\n")
	b.WriteString("─────┼──────────────────────────┼──────────────────┼────────────────\n")
	for i, secret := range m.secrets {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %-3d│ %-24s │ %-16s │ %s",
			cursor,
			i+1,
			fitText(secret.Title, 24),
			fitText(valueOrDash(secret.Username), 16),
			fitText(valueOrDash(secret.Website), 32),
		)
		if i == m.idx {
			line = selectStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return renderPage("SECRETS", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *DashboardModel) viewDetail() string {
	secret, ok := m.current()
	if !ok {
		return renderPage("SECRET", "Secret not found", "esc: back")
	}

	var b strings.Builder
	renderBanners(&b, m.errMsg, "", m.status)
	rows := [][2]string{
		{"Title", valueOrDash(secret.Title)},
		{"Username", valueOrDash(secret.Username)},
		{"Password", maskSecret(secret.Password, m.reveal)},
		{"Email", valueOrDash(secret.Email)},
		{"Website", valueOrDash(secret.Website)},
		{"Note", valueOrDash(secret.Note)},
	}
	for _, row := range rows {
		b.WriteString(padRight(row[0], 10))
		b.WriteString("│ ")
		b.WriteString(row[1])
		b.WriteString("\n")
	}

	return renderPage("SECRET", strings.TrimRight(b.String(), "\n"), "esc: back │ p: show/hide password │ c: copy │ e: edit │ d: delete")
}

func (m *DashboardModel) cmdRefresh() tea.Cmd {
	ctx, sync := m.ctx, m.sync
	return func() tea.Msg {
		return listLoadedMsg{err: sync.RefreshList(ctx)}
	}
}

func (m *DashboardModel) cmdCreate(fields models.SecretFields) tea.Cmd {
	ctx, sync := m.ctx, m.sync
	return func() tea.Msg {
		return secretSavedMsg{created: true, err: sync.CreateSecret(ctx, fields)}
	}
}

func (m *DashboardModel) cmdUpdate(id models.SecretID, fields models.SecretFields) tea.Cmd {
	ctx, sync := m.ctx, m.sync
	return func() tea.Msg {
		_, err := sync.UpdateSecret(ctx, id, fields)
		return secretSavedMsg{err: err}
	}
}

func (m *DashboardModel) cmdDelete(id models.SecretID) tea.Cmd {
	ctx, sync := m.ctx, m.sync
	return func() tea.Msg {
		return secretDeletedMsg{err: sync.DeleteSecret(ctx, id)}
	}
}

func (m *DashboardModel) cmdGenerate() tea.Cmd {
	ctx, generator := m.ctx, m.services.Generator
	return func() tea.Msg {
		password, err := generator.Generate(ctx, service.DefaultPasswordLength, true)
		return generatedMsg{password: password, err: err}
	}
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboardWrite(text)}
	}
}
