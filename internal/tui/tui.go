package tui

import (
	"context"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/internal/service"
	"github.com/MKhiriev/go-secret-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// TUI is the terminal front end of the client.
type TUI struct {
	services        *service.ClientServices
	navigator       *ProgramNavigator
	refreshInterval time.Duration
	buildInfo       models.AppBuildInfo
	logger          *logger.Logger
}

// New creates the TUI. navigator must be the one the services' session
// guard was built with, so that session expiry reaches the program.
func New(services *service.ClientServices, navigator *ProgramNavigator, refreshInterval time.Duration, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		services:        services,
		navigator:       navigator,
		refreshInterval: refreshInterval,
		buildInfo:       buildInfo,
		logger:          log,
	}
}

// Run shows the TUI until the user quits. A stored session that is still
// valid opens the dashboard directly.
func (t *TUI) Run(ctx context.Context) error {
	t.services.Guard.Check(ctx)

	root := NewRootModel(ctx, t.services.Guard, t.pages(ctx), []Page{pageDashboard, pageGenerator}, pageDashboard, t.buildInfo)

	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))
	t.navigator.attach(program)
	defer t.navigator.attach(nil)

	finalModel, err := program.Run()
	if result, ok := finalModel.(RootModel); ok {
		result.leave()
		if err == nil && result.quitByUser {
			return ErrUserQuit
		}
	}
	return err
}

func (t *TUI) pages(ctx context.Context) map[Page]tea.Model {
	return map[Page]tea.Model{
		pageEntry:     NewEntryModel(),
		pageLogin:     NewLoginModel(ctx, t.services.Auth),
		pageRegister:  NewRegisterModel(ctx, t.services.Auth),
		pageDashboard: NewDashboardModel(ctx, t.services, t.navigator, t.refreshInterval, t.logger),
		pageGenerator: NewGeneratorModel(ctx, t.services.Generator),
	}
}
