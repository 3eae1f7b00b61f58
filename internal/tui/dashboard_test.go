package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/adapter"
	"github.com/MKhiriev/go-secret-keeper/internal/app"
	"github.com/MKhiriev/go-secret-keeper/internal/config"
	"github.com/MKhiriev/go-secret-keeper/internal/fakebackend"
	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/internal/service"
	"github.com/MKhiriev/go-secret-keeper/internal/store"
	"github.com/MKhiriev/go-secret-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmail = "owner@example.com"

// postRecorder collects messages posted by background callbacks.
type postRecorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (p *postRecorder) Post(msg tea.Msg) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
}

type dashboardFixture struct {
	backend     *fakebackend.Backend
	sessions    store.SessionStore
	services    *service.ClientServices
	navigations atomic.Int32
	model       *DashboardModel
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()

	backend := fakebackend.New(logger.Nop())
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	f := &dashboardFixture{backend: backend, sessions: store.NewMemorySessionStore()}

	token, err := backend.IssueToken(testEmail)
	require.NoError(t, err)
	require.NoError(t, f.sessions.Set(context.Background(), token))

	cfg := &config.ClientConfig{
		Adapter: config.Adapter{HTTPAddress: srv.URL, RequestTimeout: 5 * time.Second},
		Sync: config.Sync{
			MinFetchInterval:     time.Millisecond,
			RetryBaseDelay:       time.Millisecond,
			MaxRetries:           3,
			CreateSettleDelay:    time.Millisecond,
			CreateRetryBaseDelay: time.Millisecond,
		},
		Generator: config.Generator{Cooldown: time.Millisecond, RateLimitCooldown: time.Millisecond},
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, f.sessions, models.NewAppBuildInfo("test", "", ""), logger.Nop())
	require.NoError(t, err)

	nav := service.NavigatorFunc(func() { f.navigations.Add(1) })
	f.services = service.NewClientServices(cfg, &store.ClientStorages{Sessions: f.sessions}, serverAdapter, nav, logger.Nop())

	f.model = NewDashboardModel(context.Background(), f.services, &postRecorder{}, time.Hour, logger.Nop())
	t.Cleanup(f.model.Leave)

	return f
}

// run executes cmd synchronously and feeds its message back to the model.
func (f *dashboardFixture) run(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	_, next := f.model.Update(cmd())
	return next
}

func (f *dashboardFixture) press(key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+g":
		msg = tea.KeyMsg{Type: tea.KeyCtrlG}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := f.model.Update(msg)
	return cmd
}

// ── Init / list ──────────────────────────────────────────────────────────────

func TestDashboard_InitLoadsList(t *testing.T) {
	f := newDashboardFixture(t)
	f.backend.Seed(testEmail,
		models.Secret{ID: "s1", Title: "Bank", Username: "alice"},
		models.Secret{ID: "s2", Title: "Mail"},
	)

	cmd := f.model.Init()
	assert.Contains(t, f.model.View(), "Loading secrets...")

	f.run(t, cmd)

	require.Len(t, f.model.secrets, 2)
	view := f.model.View()
	assert.Contains(t, view, "Bank")
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "Mail")
}

func TestDashboard_EmptyList(t *testing.T) {
	f := newDashboardFixture(t)

	f.run(t, f.model.Init())

	assert.Contains(t, f.model.View(), "No secrets yet")
}

func TestDashboard_ListError(t *testing.T) {
	f := newDashboardFixture(t)
	f.backend.FailNext(fakebackend.RouteList, fakebackend.Failure{Status: http.StatusInternalServerError, Message: "storage down"})

	f.run(t, f.model.Init())

	assert.Equal(t, "storage down", f.model.errMsg)
	assert.Contains(t, f.model.View(), "storage down")
}

func TestDashboard_RejectedTokenExpiresSession(t *testing.T) {
	f := newDashboardFixture(t)
	f.backend.FailNext(fakebackend.RouteList, fakebackend.Failure{Status: http.StatusUnauthorized, Message: "token expired"})

	f.run(t, f.model.Init())

	assert.Empty(t, f.model.errMsg)
	assert.EqualValues(t, 1, f.navigations.Load())
	assert.False(t, f.services.Guard.IsValid(context.Background()))
}

func TestDashboard_RetryingBanner(t *testing.T) {
	f := newDashboardFixture(t)

	f.model.Update(retryingMsg{notice: models.RetryNotice{Attempt: 2, MaxAttempts: 3, Delay: 4 * time.Second}})

	assert.Contains(t, f.model.View(), app.MsgRateLimitedRetrying)
	assert.Contains(t, f.model.View(), "(2/3, in 4s)")

	f.model.Update(listLoadedMsg{})
	assert.Empty(t, f.model.retrying)
}

// ── Create / update / delete ─────────────────────────────────────────────────

func TestDashboard_CreateSecret(t *testing.T) {
	f := newDashboardFixture(t)
	f.run(t, f.model.Init())

	f.press("n")
	require.Equal(t, modeForm, f.model.mode)
	f.press("Bank")

	next := f.run(t, f.press("enter"))

	assert.NotNil(t, next)
	assert.Equal(t, modeList, f.model.mode)
	assert.Equal(t, "Secret created", f.model.status)
	require.Len(t, f.model.secrets, 1)
	assert.Equal(t, "Bank", f.model.secrets[0].Title)
	assert.Len(t, f.backend.Secrets(testEmail), 1)
}

func TestDashboard_CreateAcceptedButListRateLimited(t *testing.T) {
	f := newDashboardFixture(t)
	f.run(t, f.model.Init())

	for range 4 {
		f.backend.FailNext(fakebackend.RouteList, fakebackend.Failure{Status: http.StatusTooManyRequests})
	}

	f.press("n")
	f.press("Bank")
	f.run(t, f.press("enter"))

	assert.Equal(t, modeList, f.model.mode)
	assert.Equal(t, "Secret created", f.model.status)
	assert.Equal(t, app.MsgRateLimited, f.model.errMsg)
	assert.Empty(t, f.model.form.errMsg)
	assert.Len(t, f.backend.Secrets(testEmail), 1)

	// a second enter must not submit the form again
	f.press("enter")
	assert.Equal(t, 1, f.backend.Calls(fakebackend.RouteCreate))
	assert.Len(t, f.backend.Secrets(testEmail), 1)

	time.Sleep(10 * time.Millisecond) // past MinFetchInterval
	f.run(t, f.press("r"))
	assert.Empty(t, f.model.errMsg)
	require.Len(t, f.model.secrets, 1)
	assert.Equal(t, "Bank", f.model.secrets[0].Title)
}

func TestDashboard_CreateRequiresTitle(t *testing.T) {
	f := newDashboardFixture(t)
	f.run(t, f.model.Init())

	f.press("n")
	f.run(t, f.press("enter"))

	assert.Equal(t, modeForm, f.model.mode)
	assert.Equal(t, app.MsgTitleRequired, f.model.form.errMsg)
	assert.Zero(t, f.backend.Calls(fakebackend.RouteCreate))
}

func TestDashboard_EditSecret(t *testing.T) {
	f := newDashboardFixture(t)
	f.backend.Seed(testEmail, models.Secret{ID: "s1", Title: "Bank"})
	f.run(t, f.model.Init())

	f.press("e")
	require.True(t, f.model.form.editing())
	f.press(" EU")

	f.run(t, f.press("enter"))

	assert.Equal(t, "Secret updated", f.model.status)
	require.Len(t, f.model.secrets, 1)
	assert.Equal(t, "Bank EU", f.model.secrets[0].Title)
}

func TestDashboard_DeleteSecret(t *testing.T) {
	f := newDashboardFixture(t)
	f.backend.Seed(testEmail,
		models.Secret{ID: "s1", Title: "Bank"},
		models.Secret{ID: "s2", Title: "Mail"},
	)
	f.run(t, f.model.Init())

	f.press("d")
	require.Equal(t, modeConfirmDelete, f.model.mode)
	assert.Contains(t, f.model.View(), `Delete "Bank"?`)

	f.run(t, f.press("y"))

	assert.Equal(t, "Secret deleted", f.model.status)
	require.Len(t, f.model.secrets, 1)
	assert.Equal(t, models.SecretID("s2"), f.model.secrets[0].ID)
}

func TestDashboard_DeleteCancelled(t *testing.T) {
	f := newDashboardFixture(t)
	f.backend.Seed(testEmail, models.Secret{ID: "s1", Title: "Bank"})
	f.run(t, f.model.Init())

	f.press("d")
	assert.Nil(t, f.press("n"))

	assert.Equal(t, modeList, f.model.mode)
	assert.Zero(t, f.backend.Calls(fakebackend.RouteDelete))
}

// ── Generator / clipboard ────────────────────────────────────────────────────

func TestDashboard_GeneratePasswordIntoForm(t *testing.T) {
	f := newDashboardFixture(t)
	f.run(t, f.model.Init())

	f.press("n")
	f.run(t, f.press("ctrl+g"))

	assert.Empty(t, f.model.form.errMsg)
	assert.Len(t, f.model.form.fields().Password, service.DefaultPasswordLength)
}

func TestDashboard_CopyPassword(t *testing.T) {
	var copied string
	restore := clipboardWrite
	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWrite = restore })

	f := newDashboardFixture(t)
	f.backend.Seed(testEmail, models.Secret{ID: "s1", Title: "Bank", Password: "hunter2"})
	f.run(t, f.model.Init())

	f.run(t, f.press("c"))

	assert.Equal(t, "hunter2", copied)
	assert.Equal(t, "Password copied to clipboard", f.model.status)
}

func TestDashboard_DetailMasksPassword(t *testing.T) {
	f := newDashboardFixture(t)
	f.backend.Seed(testEmail, models.Secret{ID: "s1", Title: "Bank", Password: "hunter2"})
	f.run(t, f.model.Init())

	f.press("enter")
	require.Equal(t, modeDetail, f.model.mode)
	assert.NotContains(t, f.model.View(), "hunter2")

	f.press("p")
	assert.Contains(t, f.model.View(), "hunter2")
}

// ── Leave / logout ───────────────────────────────────────────────────────────

func TestDashboard_LeaveDiscardsLateResponses(t *testing.T) {
	f := newDashboardFixture(t)
	f.backend.Seed(testEmail, models.Secret{ID: "s1", Title: "Bank"})
	cmd := f.model.Init()
	synchronizer := f.model.sync

	f.model.Leave()

	msg := cmd()
	assert.ErrorIs(t, msg.(listLoadedMsg).err, context.Canceled)
	assert.Empty(t, synchronizer.Secrets())
}

func TestDashboard_Logout(t *testing.T) {
	f := newDashboardFixture(t)
	f.run(t, f.model.Init())

	cmd := f.press("L")

	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageEntry}, cmd())
	assert.False(t, f.services.Guard.IsValid(context.Background()))
	assert.Nil(t, f.model.sync)
	assert.Zero(t, f.navigations.Load())
}
